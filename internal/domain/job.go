package domain

import (
	"net/url"
	"strings"

	"iranconnect-web/internal/util"
)

type JobID string

// LogoRefPrefix marks a logo ref that points at the logo cache.
const LogoRefPrefix = "logo:"

// Well-known employment types. The set is open; any non-empty label is valid.
const (
	FullTime   = "تمام وقت"
	PartTime   = "پاره وقت"
	Contract   = "قراردادی"
	Internship = "کارآموزی"
)

// Job is one job posting. It is treated as an immutable value once it has
// been validated and handed to the render layer.
type Job struct {
	ID             JobID    `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Company        string   `json:"company" yaml:"company"`
	Location       string   `json:"location" yaml:"location"`
	EmploymentType string   `json:"type" yaml:"type"`
	Skills         []string `json:"skills" yaml:"skills"`
	Salary         string   `json:"salary" yaml:"salary"`
	Tags           []Tag    `json:"tags" yaml:"tags"`
	Description    string   `json:"description" yaml:"description"` // raw markup, sanitize before rendering
	Requirements   []string `json:"requirements" yaml:"requirements"`
	LogoRef        string   `json:"logo,omitempty" yaml:"logo"`
	ApplyURL       string   `json:"link,omitempty" yaml:"link"`
}

// PrimaryTag returns the tag shown as the prominent badge.
func (j Job) PrimaryTag() (Tag, bool) {
	if len(j.Tags) == 0 {
		return Tag{}, false
	}
	return j.Tags[0], true
}

func (j Job) SecondaryTags() []Tag {
	if len(j.Tags) < 2 {
		return nil
	}
	return j.Tags[1:]
}

// Normalized returns a copy with whitespace cleaned up and empty list
// entries removed. Description markup is left untouched.
func (j Job) Normalized() Job {
	out := j
	out.ID = JobID(strings.TrimSpace(string(j.ID)))
	out.Title = util.CleanText(j.Title)
	out.Company = util.CleanText(j.Company)
	out.Location = util.CleanText(j.Location)
	out.EmploymentType = util.CleanText(j.EmploymentType)
	out.Salary = util.CleanText(j.Salary)
	out.Skills = util.CleanList(j.Skills)
	out.Requirements = util.CleanList(j.Requirements)
	out.LogoRef = strings.TrimSpace(j.LogoRef)
	out.ApplyURL = strings.TrimSpace(j.ApplyURL)
	out.Description = strings.TrimSpace(j.Description)

	if len(j.Tags) > 0 {
		out.Tags = make([]Tag, 0, len(j.Tags))
		for _, t := range j.Tags {
			t.Label = util.CleanText(t.Label)
			if c, err := ParseTagCategory(string(t.Category)); err == nil {
				t.Category = c
			}
			out.Tags = append(out.Tags, t)
		}
	}
	return out
}

// Validate checks the required fields. It returns nil or a
// *MalformedRecordError naming every problem found.
func (j Job) Validate() error {
	e := &MalformedRecordError{ID: j.ID}

	if strings.TrimSpace(string(j.ID)) == "" {
		e.add("id is required")
	}
	if strings.TrimSpace(j.Title) == "" {
		e.add("title is required")
	}
	if strings.TrimSpace(j.Company) == "" {
		e.add("company is required")
	}
	if strings.TrimSpace(j.Location) == "" {
		e.add("location is required")
	}
	if strings.TrimSpace(j.EmploymentType) == "" {
		e.add("type is required")
	}
	for i, t := range j.Tags {
		if strings.TrimSpace(t.Label) == "" {
			e.add("tags[%d].text is required", i)
		}
		if !t.Category.Valid() {
			e.add("tags[%d].type %q is not one of %s", i, t.Category, categoryList())
		}
	}
	if j.ApplyURL != "" && !validApplyURL(j.ApplyURL) {
		e.add("link %q must be an http, https or mailto URL", j.ApplyURL)
	}

	if len(e.Problems) > 0 {
		return e
	}
	return nil
}

func validApplyURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != ""
	}
	return false
}
