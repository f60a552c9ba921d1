package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-linkedin-job-scraper/internal/linkedin"
	"go-linkedin-job-scraper/internal/logging"

	"golang.org/x/sync/errgroup"
)

var ErrAlreadyStarted = errors.New("session already started")

type Config struct {
	MaxWorkers int
	// MaxPages caps the result pages read per location; 0 derives it from the limit.
	MaxPages int
}

// Session drives one scraping run. Handlers must be registered before Start.
// Handlers are never called concurrently with each other.
type Session struct {
	cfg    Config
	launch LaunchFunc
	log    *logging.Logger

	mu        sync.Mutex
	onData    []func(Data)
	onError   []func(error)
	onMetrics []func(Metrics)
	onEnd     []func()

	emitMu  sync.Mutex
	started bool
	endOnce sync.Once
	done    chan struct{}
}

func New(cfg Config, launch LaunchFunc, log *logging.Logger) *Session {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	return &Session{
		cfg:    cfg,
		launch: launch,
		log:    log,
		done:   make(chan struct{}),
	}
}

func (s *Session) OnData(fn func(Data)) {
	s.mu.Lock()
	s.onData = append(s.onData, fn)
	s.mu.Unlock()
}

func (s *Session) OnError(fn func(error)) {
	s.mu.Lock()
	s.onError = append(s.onError, fn)
	s.mu.Unlock()
}

func (s *Session) OnMetrics(fn func(Metrics)) {
	s.mu.Lock()
	s.onMetrics = append(s.onMetrics, fn)
	s.mu.Unlock()
}

func (s *Session) OnEnd(fn func()) {
	s.mu.Lock()
	s.onEnd = append(s.onEnd, fn)
	s.mu.Unlock()
}

// Done is closed after the end event was delivered.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start validates the queries and scrapes them in the background. It returns
// immediately; the end event is emitted exactly once when every query has
// finished, failed or was cancelled through ctx.
func (s *Session) Start(ctx context.Context, queries ...linkedin.Query) error {
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("invalid query %q: %w", q.Term, err)
		}
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	go s.run(ctx, queries)
	return nil
}

func (s *Session) run(ctx context.Context, queries []linkedin.Query) {
	defer s.emitEnd()

	started := time.Now()
	b, err := s.launch(ctx)
	if err != nil {
		s.emitError(fmt.Errorf("launch browser: %w", err))
		return
	}
	defer func() {
		if err := b.Close(); err != nil {
			s.log.Warn("failed to close browser", "err", err)
		}
	}()

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.MaxWorkers)

	for _, q := range queries {
		g.Go(func() error {
			m := Metrics{Query: q.Term}
			for _, loc := range q.Options.Locations {
				if ctx.Err() != nil {
					break
				}
				lm := s.scrapeLocation(ctx, b, q, loc)
				m.Processed += lm.Processed
				m.Failed += lm.Failed
				m.Missed += lm.Missed
				m.Skipped += lm.Skipped
			}
			s.emitMetrics(m)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.emitError(fmt.Errorf("scrape cancelled: %w", err))
	}
	s.log.Info("session finished", "queries", len(queries), "elapsed", time.Since(started).Round(time.Millisecond))
}

func (s *Session) scrapeLocation(ctx context.Context, b Fetcher, q linkedin.Query, loc string) Metrics {
	var m Metrics
	limit := q.Options.Limit
	maxPages := s.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = limit/linkedin.PageSize + 2
	}

	emitted := 0
	seen := make(map[string]bool)

	for page := 0; page < maxPages && emitted < limit; page++ {
		if ctx.Err() != nil {
			break
		}

		listURL := q.ListURL(loc, page*linkedin.PageSize)
		s.log.Debug("fetching result page", "query", q.Term, "location", loc, "page", page)
		html, err := b.Fetch(ctx, listURL)
		if err != nil {
			s.emitError(fmt.Errorf("fetch results for %q in %q (page %d): %w", q.Term, loc, page, err))
			m.Failed++
			break
		}

		cards, err := linkedin.ParseCards(html)
		if err != nil {
			s.emitError(err)
			m.Failed++
			break
		}

		fresh := 0
		for _, c := range cards {
			if emitted >= limit || ctx.Err() != nil {
				break
			}
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			fresh++

			if q.Options.SkipPromotedJobs && c.Promoted {
				m.Skipped++
				continue
			}

			d := Data{
				Query:     q.Term,
				Location:  loc,
				JobID:     c.ID,
				Link:      c.Link,
				ApplyLink: c.Link,
				Title:     c.Title,
				Company:   c.Company,
				Place:     c.Place,
				Date:      c.Date,
				DateText:  c.DateText,
				Insights:  append([]string(nil), c.Insights...),
			}

			if q.Options.ApplyLink {
				if err := s.enrich(ctx, b, &d); err != nil {
					s.emitError(err)
					m.Failed++
				}
			}

			s.emitData(d)
			emitted++
			m.Processed++
		}

		if fresh == 0 {
			break
		}
	}

	if emitted < limit {
		m.Missed = limit - emitted
	}
	return m
}

// enrich adds the apply link and the job criteria from the detail view.
// On failure d keeps the card values.
func (s *Session) enrich(ctx context.Context, b Fetcher, d *Data) error {
	html, err := b.Fetch(ctx, linkedin.JobURL(d.JobID))
	if err != nil {
		return fmt.Errorf("fetch job %s: %w", d.JobID, err)
	}
	detail, err := linkedin.ParseDetail(html)
	if err != nil {
		return fmt.Errorf("job %s: %w", d.JobID, err)
	}
	if detail.ApplyLink != "" {
		d.ApplyLink = detail.ApplyLink
	}
	d.Insights = append(d.Insights, detail.Insights...)
	return nil
}

func (s *Session) emitData(d Data) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	for _, fn := range s.handlers().data {
		fn(d)
	}
}

func (s *Session) emitError(err error) {
	s.log.Warn("scrape error", "err", err)
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	for _, fn := range s.handlers().err {
		fn(err)
	}
}

func (s *Session) emitMetrics(m Metrics) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	for _, fn := range s.handlers().metrics {
		fn(m)
	}
}

func (s *Session) emitEnd() {
	s.endOnce.Do(func() {
		s.emitMu.Lock()
		for _, fn := range s.handlers().end {
			fn()
		}
		s.emitMu.Unlock()
		close(s.done)
	})
}

type handlerSet struct {
	data    []func(Data)
	err     []func(error)
	metrics []func(Metrics)
	end     []func()
}

func (s *Session) handlers() handlerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return handlerSet{
		data:    s.onData,
		err:     s.onError,
		metrics: s.onMetrics,
		end:     s.onEnd,
	}
}
