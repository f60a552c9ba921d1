package linkedin

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Card is one listing as it appears on a search result page.
type Card struct {
	ID       string
	Title    string
	Company  string
	Place    string
	Date     string // ISO date from the datetime attribute, may be empty
	DateText string
	Link     string
	Insights []string
	Promoted bool
}

// Detail holds what the job detail view adds to a card.
type Detail struct {
	ApplyLink string
	Insights  []string
}

var (
	reJobURN = regexp.MustCompile(`jobPosting:(\d+)`)
	reJobID  = regexp.MustCompile(`/jobs/view/(?:[^/?]*-)?(\d+)`)
)

// ParseCards extracts the job cards of one result page. Cards without an id
// or a link are skipped; every other missing field is left empty.
func ParseCards(html string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse result page: %w", err)
	}

	var cards []Card
	doc.Find("div.base-card, div.job-search-card").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Find("a.base-card__full-link").First().Attr("href")
		if href == "" {
			href, _ = s.Find("a[href*='/jobs/view/']").First().Attr("href")
		}
		link := canonicalJobURL(href)

		id := ""
		if urn, ok := s.Attr("data-entity-urn"); ok {
			if m := reJobURN.FindStringSubmatch(urn); m != nil {
				id = m[1]
			}
		}
		if id == "" {
			if m := reJobID.FindStringSubmatch(link); m != nil {
				id = m[1]
			}
		}
		if id == "" || link == "" {
			return
		}

		c := Card{
			ID:       id,
			Title:    cleanText(s.Find(".base-search-card__title").First().Text()),
			Company:  cleanText(s.Find(".base-search-card__subtitle").First().Text()),
			Place:    cleanText(s.Find(".job-search-card__location").First().Text()),
			DateText: cleanText(s.Find("time").First().Text()),
			Link:     link,
			Promoted: isPromoted(s),
		}
		c.Date, _ = s.Find("time").First().Attr("datetime")

		s.Find(".job-posting-benefits__text, .result-benefits__text").Each(func(_ int, b *goquery.Selection) {
			if t := cleanText(b.Text()); t != "" {
				c.Insights = append(c.Insights, t)
			}
		})

		cards = append(cards, c)
	})

	// the same card is sometimes matched by both selectors
	return dedupCards(cards), nil
}

// ParseDetail reads the apply link and the job criteria from a job detail view.
func ParseDetail(html string) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Detail{}, fmt.Errorf("parse job detail: %w", err)
	}

	var d Detail

	if raw, err := doc.Find("code#applyUrl").First().Html(); err == nil && raw != "" {
		d.ApplyLink = unwrapApplyURL(raw)
	}
	if d.ApplyLink == "" {
		if href, ok := doc.Find("a.apply-button, a[data-tracking-control-name*='apply-link']").First().Attr("href"); ok {
			d.ApplyLink = unwrapApplyURL(href)
		}
	}

	doc.Find(".description__job-criteria-item").Each(func(_ int, s *goquery.Selection) {
		name := cleanText(s.Find(".description__job-criteria-subheader").Text())
		val := cleanText(s.Find(".description__job-criteria-text").Text())
		switch {
		case name != "" && val != "":
			d.Insights = append(d.Insights, name+": "+val)
		case val != "":
			d.Insights = append(d.Insights, val)
		}
	})

	if t := cleanText(doc.Find(".num-applicants__caption").First().Text()); t != "" {
		d.Insights = append(d.Insights, t)
	}

	return d, nil
}

func isPromoted(s *goquery.Selection) bool {
	if s.HasClass("job-search-card--promoted") {
		return true
	}
	if s.Find(".job-search-card__promoted, .job-card-container__footer-item--promoted").Length() > 0 {
		return true
	}
	promoted := false
	s.Find(".base-search-card__metadata span").EachWithBreak(func(_ int, sp *goquery.Selection) bool {
		if strings.EqualFold(cleanText(sp.Text()), "Promoted") {
			promoted = true
			return false
		}
		return true
	})
	return promoted
}

// canonicalJobURL drops tracking parameters (refId, trackingId, ...) so the
// same job always maps to the same URL.
func canonicalJobURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if !strings.HasPrefix(href, "http") {
		href = baseURL + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// unwrapApplyURL handles the commented JSON string LinkedIn puts in
// code#applyUrl and the externalApply redirect wrapper.
func unwrapApplyURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "<!--")
	s = strings.TrimSuffix(s, "-->")
	s = strings.Trim(strings.TrimSpace(s), `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if inner := u.Query().Get("url"); inner != "" {
		if uu, err := url.Parse(inner); err == nil && uu.Host != "" {
			return uu.String()
		}
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}

func dedupCards(cards []Card) []Card {
	seen := make(map[string]bool, len(cards))
	out := cards[:0]
	for _, c := range cards {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
