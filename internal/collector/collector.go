package collector

import (
	"sync"

	"go-linkedin-job-scraper/internal/job"
	"go-linkedin-job-scraper/internal/logging"
	"go-linkedin-job-scraper/internal/scraper"
)

// Source is the part of a scraper session the collector listens to.
type Source interface {
	OnData(func(scraper.Data))
	OnError(func(error))
	OnMetrics(func(scraper.Metrics))
	OnEnd(func())
}

// Collector accumulates the records of exactly one run.
type Collector struct {
	mu      sync.Mutex
	records []job.Record
	errs    []error
	metrics []scraper.Metrics
	dropped int

	gate *Gate
	log  *logging.Logger
}

func New(log *logging.Logger) *Collector {
	return &Collector{
		gate: NewGate(),
		log:  log,
	}
}

// Attach registers the collector's handlers on src.
func (c *Collector) Attach(src Source) {
	src.OnData(c.OnData)
	src.OnError(c.OnError)
	src.OnMetrics(c.OnMetrics)
	src.OnEnd(c.OnEnd)
}

// OnData appends the normalized record. Data arriving after the end event is dropped.
func (c *Collector) OnData(d scraper.Data) {
	if c.gate.IsSet() {
		c.mu.Lock()
		c.dropped++
		c.mu.Unlock()
		c.log.Debug("dropping data received after end", "job_id", d.JobID)
		return
	}

	link := d.ApplyLink
	if link == "" {
		link = d.Link
	}
	r := job.Normalize(job.Raw{
		Title:    d.Title,
		Company:  d.Company,
		Place:    d.Place,
		DateText: d.DateText,
		Link:     link,
		Insights: d.Insights,
	})

	c.mu.Lock()
	c.records = append(c.records, r)
	c.mu.Unlock()
}

func (c *Collector) OnError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
	c.log.Warn("scraper reported an error", "err", err)
}

func (c *Collector) OnMetrics(m scraper.Metrics) {
	c.mu.Lock()
	c.metrics = append(c.metrics, m)
	c.mu.Unlock()
	c.log.Info("query metrics",
		"query", m.Query,
		"processed", m.Processed,
		"failed", m.Failed,
		"missed", m.Missed,
		"skipped", m.Skipped,
	)
}

func (c *Collector) OnEnd() {
	c.gate.Set()
}

func (c *Collector) Gate() *Gate {
	return c.gate
}

// Records returns a copy of the records collected so far.
func (c *Collector) Records() []job.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]job.Record(nil), c.records...)
}

func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

func (c *Collector) Metrics() []scraper.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]scraper.Metrics(nil), c.metrics...)
}

// Dropped counts data events that arrived after the end event.
func (c *Collector) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
