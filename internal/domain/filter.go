package domain

import (
	"strings"

	"iranconnect-web/internal/util"
)

// Filter selects jobs for the listing page. The zero value matches all.
type Filter struct {
	Query    string `json:"q,omitempty"`        // every token must hit title, company or a skill
	Location string `json:"location,omitempty"` // substring of location
	Province string `json:"province,omitempty"` // province slug
	Limit    int    `json:"limit,omitempty"`
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		strings.TrimSpace(f.Location) == "" &&
		strings.TrimSpace(f.Province) == ""
}

// Match reports whether j passes the query, location and province parts of f.
// Limit is ignored here, see Apply.
func (f Filter) Match(j Job) bool {
	if q := util.Tokens(f.Query); len(q) > 0 {
		hay := util.Tokens(j.Title + " " + j.Company)
		for _, s := range j.Skills {
			hay = append(hay, util.Tokens(s)...)
		}
		for _, needle := range q {
			if !anyContains(hay, needle) {
				return false
			}
		}
	}

	if loc := strings.TrimSpace(f.Location); loc != "" && !util.ContainsFolded(j.Location, loc) {
		return false
	}

	if slug := strings.TrimSpace(f.Province); slug != "" {
		p, ok := LookupProvince(slug)
		if !ok || !p.Matches(j.Location) {
			return false
		}
	}
	return true
}

func anyContains(tokens []string, needle string) bool {
	for _, t := range tokens {
		if strings.Contains(t, needle) {
			return true
		}
	}
	return false
}

// Apply filters jobs without reordering them and truncates to f.Limit.
func Apply(jobs []Job, f Filter) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if !f.Match(j) {
			continue
		}
		out = append(out, j)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
