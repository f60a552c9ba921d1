package cli

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-linkedin-job-scraper/internal/app"
	"go-linkedin-job-scraper/internal/render"

	"github.com/spf13/cobra"
)

var (
	scrapeTitle    string
	scrapeLocation string
	scrapeCount    string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape and print the results as a table",
	Example: `  jobscraper scrape --title "Software Engineer" --location Remote --count 5
  jobscraper scrape -t "Data Engineer" -l Berlin`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeTitle, "title", "t", "", "job title to search for")
	scrapeCmd.Flags().StringVarP(&scrapeLocation, "location", "l", "", "location to search in")
	scrapeCmd.Flags().StringVarP(&scrapeCount, "count", "n", strconv.Itoa(app.DefaultCount), "number of jobs to collect")
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunnerFromConfig(cfg, log)
	in := app.Input{
		Title:    scrapeTitle,
		Location: scrapeLocation,
		Count:    scrapeCount,
	}
	out := cmd.OutOrStdout()

	var (
		res    *app.Result
		runErr error
	)
	run := func(ctx context.Context) {
		res, runErr = runner.Run(ctx, in)
	}

	// invalid input aborts immediately, nothing to wait for
	if in.Validate() != nil {
		run(ctx)
	} else if err := withSpinner(ctx, out, app.ScrapingMessage(in), run); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	return render.Result(out, res)
}
