package app

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go-linkedin-job-scraper/internal/browser"
	"go-linkedin-job-scraper/internal/config"
	"go-linkedin-job-scraper/internal/driver"
	"go-linkedin-job-scraper/internal/logging"
	"go-linkedin-job-scraper/internal/scraper"
)

// BrowserOptions resolves the browser executable and maps the config onto
// launch options.
func BrowserOptions(cfg *config.Config) (browser.Options, error) {
	wd, err := os.Getwd()
	if err != nil {
		return browser.Options{}, fmt.Errorf("get working directory: %w", err)
	}
	exe, err := driver.Resolve(cfg.Driver.Path, wd, runtime.GOOS, cfg.Driver.UseBundled)
	if err != nil {
		return browser.Options{}, err
	}

	return browser.Options{
		ExecutablePath:      exe,
		Headless:            cfg.Browser.Headless,
		WindowWidth:         cfg.Browser.WindowWidth,
		WindowHeight:        cfg.Browser.WindowHeight,
		RemoteDebuggingPort: cfg.Browser.RemoteDebuggingPort,
		LockPath:            cfg.Browser.LockPath,
		SlowMo:              cfg.Scraper.SlowMo,
		PageLoadTimeout:     cfg.Scraper.PageLoadTimeout,
		ScreenshotDir:       cfg.Browser.ScreenshotDir,
	}, nil
}

// NewScraperFactory returns a factory creating Playwright backed sessions.
func NewScraperFactory(cfg *config.Config, log *logging.Logger) ScraperFactory {
	return func() (Scraper, error) {
		opts, err := BrowserOptions(cfg)
		if err != nil {
			return nil, err
		}
		if opts.ExecutablePath == "" {
			log.Warn("browser executable not found, using the Playwright managed Chromium",
				"expected", driver.Locate(".", runtime.GOOS))
		}

		launch := func(ctx context.Context) (scraper.Browser, error) {
			return browser.NewPlaywright(ctx, opts, log)
		}
		return scraper.New(scraper.Config{MaxWorkers: cfg.Scraper.MaxWorkers}, launch, log), nil
	}
}

// NewRunnerFromConfig wires a Runner to real browser sessions.
func NewRunnerFromConfig(cfg *config.Config, log *logging.Logger) *Runner {
	return NewRunner(Options{
		DefaultCount: cfg.Scraper.DefaultCount,
		Timeout:      cfg.Scraper.ScrapeTimeout,
		Filters:      cfg.Filters,
	}, NewScraperFactory(cfg, log), log)
}
