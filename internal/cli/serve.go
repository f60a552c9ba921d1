package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"go-linkedin-job-scraper/internal/app"
	"go-linkedin-job-scraper/internal/shutdown"
	"go-linkedin-job-scraper/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scraping form and results table over HTTP",
	Long: `Start the web UI. The page has three inputs (title, location, count)
and a "Start Scraping" button; results are shown as a table once the
scraper finishes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	runner := app.NewRunnerFromConfig(cfg, log)
	srv := web.New(cfg.Addr, runner, log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			cancel()
		}
		close(errCh)
	}()

	// scrapes can take minutes, give them a moment to finish
	shutdown.Graceful(ctx, []os.Signal{os.Interrupt, syscall.SIGTERM}, srv, 30*time.Second, log)

	return <-errCh
}
