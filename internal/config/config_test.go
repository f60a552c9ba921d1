package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-linkedin-job-scraper/internal/linkedin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Scraper.MaxWorkers)
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.SlowMo)
	assert.Equal(t, 40*time.Second, cfg.Scraper.PageLoadTimeout)
	assert.Equal(t, 10, cfg.Scraper.DefaultCount)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 9222, cfg.Browser.RemoteDebuggingPort)
	assert.Equal(t, linkedin.DefaultFilters(), cfg.Filters)
}

func TestLoad_YAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
scraper:
  slow_mo: 1s
  scrape_timeout: 2m
filters:
  time: r604800
  type: [C]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, time.Second, cfg.Scraper.SlowMo)
	assert.Equal(t, 2*time.Minute, cfg.Scraper.ScrapeTimeout)
	assert.Equal(t, 40*time.Second, cfg.Scraper.PageLoadTimeout, "untouched fields keep defaults")
	assert.Equal(t, linkedin.TimeWeek, cfg.Filters.Time)
	assert.Equal(t, []linkedin.JobType{linkedin.TypeContract}, cfg.Filters.Type)
	assert.Equal(t, linkedin.RelevanceRecent, cfg.Filters.Relevance)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCRAPER_ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHROME_PATH", "/opt/chrome")
	t.Setenv("SCRAPE_TIMEOUT", "90s")
	t.Setenv("SCRAPER_HEADLESS", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/chrome", cfg.Driver.Path)
	assert.Equal(t, 90*time.Second, cfg.Scraper.ScrapeTimeout)
	assert.False(t, cfg.Browser.Headless)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("SCRAPE_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "SCRAPE_TIMEOUT")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scraper: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Scraper.MaxWorkers = 0
	cfg.Scraper.ScrapeTimeout = 0
	cfg.Filters.BaseSalary = "42"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_workers")
	assert.Contains(t, err.Error(), "scrape_timeout")
	assert.Contains(t, err.Error(), "base_salary")
}
