package linkedin

import (
	"fmt"
	"net/url"
	"strings"
)

type (
	Relevance      string
	TimeRange      string
	JobType        string
	OnSiteOrRemote string
	Experience     string
	BaseSalary     string
)

const (
	RelevanceRelevant Relevance = "R"
	RelevanceRecent   Relevance = "DD"
)

const (
	TimeAny   TimeRange = ""
	TimeDay   TimeRange = "r86400"
	TimeWeek  TimeRange = "r604800"
	TimeMonth TimeRange = "r2592000"
)

const (
	TypeFullTime   JobType = "F"
	TypePartTime   JobType = "P"
	TypeTemporary  JobType = "T"
	TypeContract   JobType = "C"
	TypeInternship JobType = "I"
	TypeVolunteer  JobType = "V"
	TypeOther      JobType = "O"
)

const (
	OnSite OnSiteOrRemote = "1"
	Remote OnSiteOrRemote = "2"
	Hybrid OnSiteOrRemote = "3"
)

const (
	ExperienceInternship Experience = "1"
	ExperienceEntryLevel Experience = "2"
	ExperienceAssociate  Experience = "3"
	ExperienceMidSenior  Experience = "4"
	ExperienceDirector   Experience = "5"
	ExperienceExecutive  Experience = "6"
)

const (
	SalaryAny  BaseSalary = ""
	Salary40K  BaseSalary = "1"
	Salary60K  BaseSalary = "2"
	Salary80K  BaseSalary = "3"
	Salary100K BaseSalary = "4"
	Salary120K BaseSalary = "5"
	Salary140K BaseSalary = "6"
	Salary160K BaseSalary = "7"
	Salary180K BaseSalary = "8"
	Salary200K BaseSalary = "9"
)

// Filters is the fixed filter bundle applied to every query.
type Filters struct {
	Relevance      Relevance        `yaml:"relevance"`
	Time           TimeRange        `yaml:"time"`
	Type           []JobType        `yaml:"type"`
	OnSiteOrRemote []OnSiteOrRemote `yaml:"on_site_or_remote"`
	Experience     []Experience     `yaml:"experience"`
	BaseSalary     BaseSalary       `yaml:"base_salary"`
}

// DefaultFilters: recent, past month, full-time or internship, remote,
// mid-senior level, base salary of at least 100k.
func DefaultFilters() Filters {
	return Filters{
		Relevance:      RelevanceRecent,
		Time:           TimeMonth,
		Type:           []JobType{TypeFullTime, TypeInternship},
		OnSiteOrRemote: []OnSiteOrRemote{Remote},
		Experience:     []Experience{ExperienceMidSenior},
		BaseSalary:     Salary100K,
	}
}

func (f Filters) Validate() error {
	var bad []string

	switch f.Relevance {
	case "", RelevanceRelevant, RelevanceRecent:
	default:
		bad = append(bad, fmt.Sprintf("relevance %q", f.Relevance))
	}
	switch f.Time {
	case TimeAny, TimeDay, TimeWeek, TimeMonth:
	default:
		bad = append(bad, fmt.Sprintf("time %q", f.Time))
	}
	for _, t := range f.Type {
		if !strings.Contains("FPTCIVO", string(t)) || len(t) != 1 {
			bad = append(bad, fmt.Sprintf("type %q", t))
		}
	}
	for _, w := range f.OnSiteOrRemote {
		if w != OnSite && w != Remote && w != Hybrid {
			bad = append(bad, fmt.Sprintf("on_site_or_remote %q", w))
		}
	}
	for _, e := range f.Experience {
		if len(e) != 1 || e < ExperienceInternship || e > ExperienceExecutive {
			bad = append(bad, fmt.Sprintf("experience %q", e))
		}
	}
	if f.BaseSalary != SalaryAny && (len(f.BaseSalary) != 1 || f.BaseSalary < Salary40K || f.BaseSalary > Salary200K) {
		bad = append(bad, fmt.Sprintf("base_salary %q", f.BaseSalary))
	}

	if len(bad) > 0 {
		return fmt.Errorf("unknown filter values: %s", strings.Join(bad, ", "))
	}
	return nil
}

// apply writes the filter bundle into LinkedIn search URL parameters.
func (f Filters) apply(v url.Values) {
	if f.Relevance != "" {
		v.Set("sortBy", string(f.Relevance))
	}
	if f.Time != TimeAny {
		v.Set("f_TPR", string(f.Time))
	}
	if len(f.Type) > 0 {
		v.Set("f_JT", join(f.Type))
	}
	if len(f.OnSiteOrRemote) > 0 {
		v.Set("f_WT", join(f.OnSiteOrRemote))
	}
	if len(f.Experience) > 0 {
		v.Set("f_E", join(f.Experience))
	}
	if f.BaseSalary != SalaryAny {
		v.Set("f_SB2", string(f.BaseSalary))
	}
}

func join[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
