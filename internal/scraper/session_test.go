package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go-linkedin-job-scraper/internal/linkedin"
	"go-linkedin-job-scraper/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowser serves result pages keyed by the start offset and detail pages
// keyed by job id.
type fakeBrowser struct {
	mu      sync.Mutex
	pages   map[int]string
	details map[string]string
	failURL string
	fetched []string
	closed  bool
}

func (f *fakeBrowser) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)

	if f.failURL != "" && strings.Contains(url, f.failURL) {
		return "", errors.New("navigation timeout")
	}
	if strings.Contains(url, "/jobPosting/") {
		id := url[strings.LastIndex(url, "/")+1:]
		return f.details[id], nil
	}
	for start, html := range f.pages {
		if start == 0 && !strings.Contains(url, "start=") {
			return html, nil
		}
		if strings.Contains(url, fmt.Sprintf("start=%d", start)) && start != 0 {
			return html, nil
		}
	}
	return "", nil
}

func (f *fakeBrowser) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func card(id int, promoted bool) string {
	class := "base-card job-search-card"
	if promoted {
		class += " job-search-card--promoted"
	}
	return fmt.Sprintf(`<li><div class="%s" data-entity-urn="urn:li:jobPosting:%d">
<a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/job-%d?refId=x"></a>
<h3 class="base-search-card__title">Engineer %d</h3>
<h4 class="base-search-card__subtitle">Company %d</h4>
<span class="job-search-card__location">Remote</span>
<time datetime="2026-10-01">1 week ago</time>
</div></li>`, class, id, id, id, id)
}

func page(ids ...int) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(card(id, false))
	}
	return b.String()
}

func launcherFor(b Browser) LaunchFunc {
	return func(context.Context) (Browser, error) { return b, nil }
}

type recorder struct {
	mu      sync.Mutex
	data    []Data
	errs    []error
	metrics []Metrics
	ends    int
}

func record(s *Session) *recorder {
	r := &recorder{}
	s.OnData(func(d Data) { r.mu.Lock(); r.data = append(r.data, d); r.mu.Unlock() })
	s.OnError(func(err error) { r.mu.Lock(); r.errs = append(r.errs, err); r.mu.Unlock() })
	s.OnMetrics(func(m Metrics) { r.mu.Lock(); r.metrics = append(r.metrics, m); r.mu.Unlock() })
	s.OnEnd(func() { r.mu.Lock(); r.ends++; r.mu.Unlock() })
	return r
}

func query(limit int) linkedin.Query {
	return linkedin.NewQuery("Software Engineer", "Remote", limit, linkedin.DefaultFilters())
}

// runToEnd starts s and waits for its end event.
func runToEnd(t *testing.T, s *Session, queries ...linkedin.Query) {
	t.Helper()
	require.NoError(t, s.Start(context.Background(), queries...))
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
	}
}

func TestSession_RespectsLimit(t *testing.T) {
	b := &fakeBrowser{pages: map[int]string{
		0:  page(1, 2, 3, 4, 5, 6, 7, 8),
		25: page(9, 10),
	}}
	s := New(Config{MaxWorkers: 1}, launcherFor(b), logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(5))

	assert.Len(t, r.data, 5)
	assert.Equal(t, 1, r.ends)
	assert.Empty(t, r.errs)
	require.Len(t, r.metrics, 1)
	assert.Equal(t, 5, r.metrics[0].Processed)
	assert.Zero(t, r.metrics[0].Missed)
	assert.True(t, b.closed)

	first := r.data[0]
	assert.Equal(t, "1", first.JobID)
	assert.Equal(t, "Engineer 1", first.Title)
	assert.Equal(t, "Company 1", first.Company)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/job-1", first.Link)
	assert.Equal(t, "Remote", first.Location)
}

func TestSession_PaginatesUntilExhausted(t *testing.T) {
	b := &fakeBrowser{pages: map[int]string{
		0:  page(1, 2),
		25: page(3),
	}}
	s := New(Config{MaxWorkers: 1, MaxPages: 5}, launcherFor(b), logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(10))

	assert.Len(t, r.data, 3)
	require.Len(t, r.metrics, 1)
	assert.Equal(t, 7, r.metrics[0].Missed)
}

func TestSession_SkipsPromoted(t *testing.T) {
	b := &fakeBrowser{pages: map[int]string{
		0: card(1, true) + card(2, false),
	}}
	s := New(Config{}, launcherFor(b), logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(10))

	require.Len(t, r.data, 1)
	assert.Equal(t, "2", r.data[0].JobID)
	assert.Equal(t, 1, r.metrics[0].Skipped)
}

func TestSession_EnrichesFromDetail(t *testing.T) {
	b := &fakeBrowser{
		pages: map[int]string{0: page(1)},
		details: map[string]string{
			"1": `<code id="applyUrl"><!--"https://jobs.example.com/apply/1"--></code>
<li class="description__job-criteria-item"><h3 class="description__job-criteria-subheader">Employment type</h3>
<span class="description__job-criteria-text">Full-time</span></li>`,
		},
	}
	s := New(Config{}, launcherFor(b), logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(1))

	require.Len(t, r.data, 1)
	assert.Equal(t, "https://jobs.example.com/apply/1", r.data[0].ApplyLink)
	assert.Equal(t, []string{"Employment type: Full-time"}, r.data[0].Insights)
}

func TestSession_DetailErrorIsNotFatal(t *testing.T) {
	b := &fakeBrowser{
		pages:   map[int]string{0: page(1, 2)},
		failURL: "/jobPosting/1",
	}
	s := New(Config{}, launcherFor(b), logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(2))

	assert.Len(t, r.data, 2, "scraping continues after an error event")
	require.Len(t, r.errs, 1)
	assert.Contains(t, r.errs[0].Error(), "navigation timeout")
	assert.Equal(t, r.data[0].Link, r.data[0].ApplyLink)
	assert.Equal(t, 1, r.metrics[0].Failed)
}

func TestSession_LaunchFailureStillEnds(t *testing.T) {
	launch := func(context.Context) (Browser, error) { return nil, errors.New("no chrome") }
	s := New(Config{}, launch, logging.NewNop())
	r := record(s)

	runToEnd(t, s, query(3))

	assert.Empty(t, r.data)
	require.Len(t, r.errs, 1)
	assert.Contains(t, r.errs[0].Error(), "no chrome")
	assert.Equal(t, 1, r.ends)
}

func TestSession_InvalidQuery(t *testing.T) {
	s := New(Config{}, launcherFor(&fakeBrowser{}), logging.NewNop())
	r := record(s)

	err := s.Start(context.Background(), linkedin.NewQuery("", "Remote", 3, linkedin.DefaultFilters()))
	assert.ErrorIs(t, err, linkedin.ErrEmptyQuery)
	assert.Zero(t, r.ends)
}

func TestSession_StartTwice(t *testing.T) {
	s := New(Config{}, launcherFor(&fakeBrowser{}), logging.NewNop())
	require.NoError(t, s.Start(context.Background(), query(1)))
	assert.ErrorIs(t, s.Start(context.Background(), query(1)), ErrAlreadyStarted)
	<-s.Done()
}

func TestSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &fakeBrowser{pages: map[int]string{0: page(1, 2, 3)}}
	s := New(Config{}, launcherFor(b), logging.NewNop())
	r := record(s)

	require.NoError(t, s.Start(ctx, query(3)))
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("end event not emitted after cancel")
	}

	assert.Empty(t, r.data)
	assert.Equal(t, 1, r.ends)
	require.NotEmpty(t, r.errs)
	assert.ErrorIs(t, r.errs[len(r.errs)-1], context.Canceled)
}
