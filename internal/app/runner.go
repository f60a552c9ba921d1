package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-linkedin-job-scraper/internal/collector"
	"go-linkedin-job-scraper/internal/job"
	"go-linkedin-job-scraper/internal/linkedin"
	"go-linkedin-job-scraper/internal/logging"
	"go-linkedin-job-scraper/internal/scraper"

	"github.com/google/uuid"
)

// Scraper is one scraping session as seen by the runner.
type Scraper interface {
	collector.Source
	Start(ctx context.Context, queries ...linkedin.Query) error
}

// ScraperFactory builds a fresh session for every run.
type ScraperFactory func() (Scraper, error)

type Options struct {
	DefaultCount int
	Timeout      time.Duration
	Filters      linkedin.Filters
}

// Result is everything the renderer needs for one run.
type Result struct {
	RunID    string       `json:"run_id"`
	Title    string       `json:"title"`
	Location string       `json:"location"`
	Count    int          `json:"count"`
	Records  []job.Record `json:"records"`
	Notices  []Notice     `json:"notices"`
	// Aborted is set when no scraper was constructed.
	Aborted  bool `json:"aborted"`
	TimedOut bool `json:"timed_out"`
}

type Runner struct {
	opts       Options
	newScraper ScraperFactory
	log        *logging.Logger
}

func NewRunner(opts Options, newScraper ScraperFactory, log *logging.Logger) *Runner {
	if opts.DefaultCount < 1 {
		opts.DefaultCount = DefaultCount
	}
	return &Runner{opts: opts, newScraper: newScraper, log: log}
}

// Run validates in, scrapes and waits for completion or the timeout. The
// returned error is only set when the scraper could not be started; every
// other problem ends up in Result.Notices.
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString(),
		Title:    in.Title,
		Location: in.Location,
	}
	log := r.log.With("run_id", res.RunID)

	if err := in.Validate(); err != nil {
		res.Aborted = true
		res.Notices = append(res.Notices, Notice{Level: LevelWarning, Message: UserMessage(err)})
		log.Info("run aborted", "reason", err)
		return res, nil
	}

	count, err := ParseCount(in.Count, r.opts.DefaultCount)
	if err != nil {
		res.Notices = append(res.Notices, errorNotice(err))
		log.Warn("invalid job count, using default", "input", in.Count, "default", count)
	}
	res.Count = count

	s, err := r.newScraper()
	if err != nil {
		return res, fmt.Errorf("create scraper: %w", err)
	}

	col := collector.New(log)
	col.Attach(s)
	col.Gate().Reset()

	q := linkedin.NewQuery(in.Title, in.Location, count, r.opts.Filters)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	title, location := q.Term, q.Options.Locations[0]
	log.Info("scraping started",
		"title", title,
		"location", location,
		"count", count,
		"url", q.SearchURL(location, 0),
	)
	started := time.Now()
	if err := s.Start(runCtx, q); err != nil {
		return res, fmt.Errorf("start scraper: %w", err)
	}

	waitErr := col.Gate().Wait(ctx, r.opts.Timeout)
	switch {
	case waitErr == nil:
	case errors.Is(waitErr, collector.ErrTimeout):
		res.TimedOut = true
		res.Notices = append(res.Notices, errorNotice(fmt.Errorf("%w after %s, showing partial results", waitErr, r.opts.Timeout)))
		log.Warn("scrape timed out", "timeout", r.opts.Timeout)
	default:
		res.Notices = append(res.Notices, errorNotice(waitErr))
		log.Warn("scrape wait interrupted", "err", waitErr)
	}

	for _, e := range col.Errors() {
		res.Notices = append(res.Notices, errorNotice(e))
	}

	if skipped := skippedPromoted(col.Metrics()); skipped > 0 {
		res.Notices = append(res.Notices, Notice{
			Level:   LevelInfo,
			Message: fmt.Sprintf("Skipped %d promoted jobs.", skipped),
		})
	}

	records := col.Records()
	if len(records) > count {
		records = records[:count]
	}
	res.Records = records

	if len(records) == 0 {
		res.Notices = append(res.Notices, Notice{Level: LevelWarning, Message: "No jobs found. Try changing the title or location."})
	} else {
		res.Notices = append(res.Notices, Notice{
			Level:   LevelSuccess,
			Message: fmt.Sprintf("Found %d jobs for '%s' in '%s'!", len(records), title, location),
		})
	}

	log.Info("scraping finished", "records", len(records), "elapsed", time.Since(started).Round(time.Millisecond))
	return res, nil
}

func skippedPromoted(ms []scraper.Metrics) int {
	n := 0
	for _, m := range ms {
		n += m.Skipped
	}
	return n
}
