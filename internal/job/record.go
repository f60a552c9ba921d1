package job

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Record is one normalized listing. It is never modified after Normalize.
type Record struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Posted   string `json:"posted"`
	Link     string `json:"link"`
	Insights string `json:"insights"`
}

// Columns are the table headers, in display order.
var Columns = []string{"Job Title", "Company", "Location", "Posted", "Apply Link", "Insights"}

// Row returns the fields in Columns order.
func (r Record) Row() []string {
	return []string{r.Title, r.Company, r.Location, r.Posted, r.Link, r.Insights}
}

// Raw is what a scraper hands over for a single listing. Any field may be missing.
type Raw struct {
	Title    string
	Company  string
	Place    string
	DateText string
	Link     string
	Insights []string
}

const insightSep = " · "

func Normalize(raw Raw) Record {
	var insights []string
	for _, in := range raw.Insights {
		if in = clean(in); in != "" {
			insights = append(insights, in)
		}
	}
	return Record{
		Title:    clean(raw.Title),
		Company:  clean(raw.Company),
		Location: clean(raw.Place),
		Posted:   clean(raw.DateText),
		Link:     strings.TrimSpace(raw.Link),
		Insights: strings.Join(insights, insightSep),
	}
}

var controls = runes.Remove(runes.Predicate(func(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}))

// clean composes the text to NFC, strips control characters and collapses whitespace.
func clean(s string) string {
	t := transform.Chain(norm.NFC, controls)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "\u00a0", " ")
	return strings.Join(strings.Fields(out), " ")
}
