// Scraper session: run LinkedIn queries in a browser and emit lifecycle events

package scraper

import (
	"context"
)

// Fetcher returns the rendered HTML of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Browser is a Fetcher backed by a process that must be released.
type Browser interface {
	Fetcher
	Close() error
}

// LaunchFunc starts the browser used for one session.
type LaunchFunc func(ctx context.Context) (Browser, error)

// Data is emitted once per scraped listing.
type Data struct {
	Query     string
	Location  string
	JobID     string
	Link      string
	ApplyLink string
	Title     string
	Company   string
	Place     string
	Date      string
	DateText  string
	Insights  []string
}

// Metrics summarize one query after it finished.
type Metrics struct {
	Query     string
	Processed int
	Failed    int
	Missed    int
	Skipped   int
}
