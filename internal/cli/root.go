// Package cli provides the command-line interface for jobscraper.
package cli

import (
	"fmt"

	"go-linkedin-job-scraper/internal/config"
	"go-linkedin-job-scraper/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	configPath string

	cfg *config.Config
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jobscraper",
	Short: "Scrape LinkedIn job listings with a headless browser",
	Long: `jobscraper searches LinkedIn for a job title in a location, collects
the listings with a headless Chromium and shows them as a table.

Run "jobscraper serve" for the web form or "jobscraper scrape" for a
one-shot run in the terminal.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = logging.New(cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
}
