// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate config

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-linkedin-job-scraper/internal/linkedin"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	Addr     string `yaml:"addr" env:"SCRAPER_ADDR"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Driver  DriverConfig     `yaml:"driver"`
	Browser BrowserConfig    `yaml:"browser"`
	Scraper ScraperConfig    `yaml:"scraper"`
	Filters linkedin.Filters `yaml:"filters"`
}

type DriverConfig struct {
	// Path overrides the default browser executable next to the working directory.
	Path string `yaml:"path" env:"CHROME_PATH"`
	// UseBundled falls back to the Playwright managed Chromium when Path is missing.
	UseBundled bool `yaml:"use_bundled"`
}

type BrowserConfig struct {
	Headless            bool   `yaml:"headless" env:"SCRAPER_HEADLESS"`
	WindowWidth         int    `yaml:"window_width"`
	WindowHeight        int    `yaml:"window_height"`
	RemoteDebuggingPort int    `yaml:"remote_debugging_port"`
	LockPath            string `yaml:"lock_path"`
	// ScreenshotDir receives a full-page capture of every failed page load.
	// Empty disables captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

type ScraperConfig struct {
	MaxWorkers      int           `yaml:"max_workers"`
	SlowMo          time.Duration `yaml:"slow_mo"`
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	// ScrapeTimeout bounds the wait on the completion gate.
	ScrapeTimeout time.Duration `yaml:"scrape_timeout" env:"SCRAPE_TIMEOUT"`
	DefaultCount  int           `yaml:"default_count"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Addr:     ":8501",
		LogLevel: "info",
		Driver: DriverConfig{
			UseBundled: true,
		},
		Browser: BrowserConfig{
			Headless:            true,
			WindowWidth:         1920,
			WindowHeight:        1080,
			RemoteDebuggingPort: 9222,
			LockPath:            filepath.Join(os.TempDir(), "jobscraper-debug-port.lock"),
		},
		Scraper: ScraperConfig{
			MaxWorkers:      1,
			SlowMo:          500 * time.Millisecond,
			PageLoadTimeout: 40 * time.Second,
			ScrapeTimeout:   10 * time.Minute,
			DefaultCount:    10,
		},
		Filters: linkedin.DefaultFilters(),
	}
}

// Load reads .env, the YAML file at path and environment overrides.
// A missing YAML file is not an error; the defaults are used instead.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SCRAPER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.Driver.Path = v
	}
	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SCRAPE_TIMEOUT: %w", err)
		}
		c.Scraper.ScrapeTimeout = d
	}
	if v := os.Getenv("SCRAPER_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SCRAPER_HEADLESS: %w", err)
		}
		c.Browser.Headless = b
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "addr is required")
	}
	if c.Scraper.MaxWorkers < 1 {
		problems = append(problems, "scraper.max_workers must be >= 1")
	}
	if c.Scraper.SlowMo < 0 {
		problems = append(problems, "scraper.slow_mo must not be negative")
	}
	if c.Scraper.PageLoadTimeout <= 0 {
		problems = append(problems, "scraper.page_load_timeout must be positive")
	}
	if c.Scraper.ScrapeTimeout <= 0 {
		problems = append(problems, "scraper.scrape_timeout must be positive")
	}
	if c.Scraper.DefaultCount < 1 {
		problems = append(problems, "scraper.default_count must be >= 1")
	}
	if c.Browser.WindowWidth <= 0 || c.Browser.WindowHeight <= 0 {
		problems = append(problems, "browser window size must be positive")
	}
	if err := c.Filters.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
