package linkedin

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	baseURL      = "https://www.linkedin.com"
	searchPath   = "/jobs/search/"
	guestListAPI = "/jobs-guest/jobs/api/seeMoreJobPostings/search"
	guestJobAPI  = "/jobs-guest/jobs/api/jobPosting/"

	// PageSize is the number of cards LinkedIn serves per result page.
	PageSize = 25
)

var ErrEmptyQuery = errors.New("query needs a search term and at least one location")

type QueryOptions struct {
	Locations        []string
	ApplyLink        bool
	SkipPromotedJobs bool
	Limit            int
	Filters          Filters
}

// Query is built once per run and never mutated afterwards.
type Query struct {
	Term    string
	Options QueryOptions
}

func NewQuery(term, location string, limit int, filters Filters) Query {
	return Query{
		Term: strings.TrimSpace(term),
		Options: QueryOptions{
			Locations:        []string{strings.TrimSpace(location)},
			ApplyLink:        true,
			SkipPromotedJobs: true,
			Limit:            limit,
			Filters:          filters,
		},
	}
}

func (q Query) Validate() error {
	if q.Term == "" || len(q.Options.Locations) == 0 {
		return ErrEmptyQuery
	}
	for _, loc := range q.Options.Locations {
		if strings.TrimSpace(loc) == "" {
			return ErrEmptyQuery
		}
	}
	if q.Options.Limit < 1 {
		return errors.New("query limit must be positive")
	}
	return q.Options.Filters.Validate()
}

func (q Query) values(location string, start int) url.Values {
	v := url.Values{}
	v.Set("keywords", q.Term)
	v.Set("location", location)
	q.Options.Filters.apply(v)
	if start > 0 {
		v.Set("start", strconv.Itoa(start))
	}
	return v
}

// SearchURL is the public search page for a location, starting at offset start.
func (q Query) SearchURL(location string, start int) string {
	return baseURL + searchPath + "?" + q.values(location, start).Encode()
}

// ListURL is the guest endpoint that serves one page of result cards.
func (q Query) ListURL(location string, start int) string {
	return baseURL + guestListAPI + "?" + q.values(location, start).Encode()
}

// JobURL is the guest endpoint for the detail view of a single job.
func JobURL(jobID string) string {
	return baseURL + guestJobAPI + jobID
}
