package job

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	r := Normalize(Raw{
		Title:    "  Senior Software   Engineer\n",
		Company:  "Café Labs",
		Place:    "Remote\u0007",
		DateText: " 2 days ago ",
		Link:     " https://www.linkedin.com/jobs/view/1 ",
		Insights: []string{"Actively Hiring", "  ", "Seniority level: Mid-Senior level"},
	})

	assert.Equal(t, "Senior Software Engineer", r.Title)
	assert.Equal(t, "Café Labs", r.Company)
	assert.Equal(t, "Remote", r.Location)
	assert.Equal(t, "2 days ago", r.Posted)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1", r.Link)
	assert.Equal(t, "Actively Hiring · Seniority level: Mid-Senior level", r.Insights)
}

func TestNormalize_MissingFields(t *testing.T) {
	var r Record
	assert.NotPanics(t, func() { r = Normalize(Raw{}) })
	assert.Equal(t, Record{}, r)
}

func TestRecordHasSixFields(t *testing.T) {
	assert.Equal(t, 6, reflect.TypeOf(Record{}).NumField())
	assert.Len(t, Columns, 6)
	assert.Len(t, Record{}.Row(), 6)
}

func TestRowOrder(t *testing.T) {
	r := Record{Title: "t", Company: "c", Location: "l", Posted: "p", Link: "k", Insights: "i"}
	assert.Equal(t, []string{"t", "c", "l", "p", "k", "i"}, r.Row())
}
