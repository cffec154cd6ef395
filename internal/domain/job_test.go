package domain

import (
	"errors"
	"strings"
	"testing"
)

func validJob() Job {
	return Job{
		ID:             "1",
		Title:          "مهندس نرم‌افزار ارشد",
		Company:        "تک‌کورپ",
		Location:       "تورنتو، انتاریو (دورکاری)",
		EmploymentType: FullTime,
		Skills:         []string{"React", "Node.js", "AWS"},
		Salary:         "$120K - $150K CAD",
		Tags:           []Tag{{Label: "جدید", Category: TagNew}},
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	if err := validJob().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	j := Job{ID: "x", Tags: []Tag{{Label: "", Category: "hot"}}, ApplyURL: "javascript:alert(1)"}

	err := j.Validate()
	me, ok := IsMalformed(err)
	if !ok {
		t.Fatalf("Validate() = %v, want *MalformedRecordError", err)
	}
	want := []string{"title", "company", "location", "type is required", "tags[0].text", `tags[0].type "hot"`, "link"}
	if len(me.Problems) != len(want) {
		t.Fatalf("problems = %q, want %d entries", me.Problems, len(want))
	}
	for i, w := range want {
		if !strings.Contains(me.Problems[i], w) {
			t.Errorf("problem[%d] = %q, want it to mention %q", i, me.Problems[i], w)
		}
	}
	if !strings.Contains(err.Error(), "malformed job record x") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidateApplyURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/apply": true,
		"http://example.com":        true,
		"mailto:jobs@example.com":   true,
		"ftp://example.com":         false,
		"https://":                  false,
		"mailto:":                   false,
		"/relative":                 false,
	}
	for raw, ok := range cases {
		j := validJob()
		j.ApplyURL = raw
		err := j.Validate()
		if (err == nil) != ok {
			t.Errorf("ApplyURL %q: Validate() = %v, want ok=%v", raw, err, ok)
		}
	}
}

func TestNormalized(t *testing.T) {
	j := Job{
		ID:           "  7 ",
		Title:        "  مدیر   محصول ",
		Skills:       []string{" Agile ", "", "  "},
		Requirements: []string{"", "five years"},
		Tags:         []Tag{{Label: " ویژه ", Category: " Featured "}},
	}
	n := j.Normalized()

	if n.ID != "7" || n.Title != "مدیر محصول" {
		t.Errorf("got id=%q title=%q", n.ID, n.Title)
	}
	if len(n.Skills) != 1 || n.Skills[0] != "Agile" {
		t.Errorf("skills = %q", n.Skills)
	}
	if len(n.Requirements) != 1 {
		t.Errorf("requirements = %q", n.Requirements)
	}
	if n.Tags[0].Label != "ویژه" || n.Tags[0].Category != TagFeatured {
		t.Errorf("tag = %+v", n.Tags[0])
	}
	if j.Tags[0].Category != " Featured " {
		t.Errorf("Normalized mutated the receiver's tags")
	}
}

func TestPrimaryAndSecondaryTags(t *testing.T) {
	j := validJob()
	j.Tags = nil
	if _, ok := j.PrimaryTag(); ok {
		t.Fatal("PrimaryTag on untagged job reported ok")
	}
	if s := j.SecondaryTags(); s != nil {
		t.Fatalf("SecondaryTags = %v, want nil", s)
	}

	j.Tags = []Tag{{"a", TagNew}, {"b", TagDirect}, {"c", TagReferral}}
	p, ok := j.PrimaryTag()
	if !ok || p.Label != "a" {
		t.Fatalf("PrimaryTag = %+v, %v", p, ok)
	}
	s := j.SecondaryTags()
	if len(s) != 2 || s[0].Label != "b" || s[1].Label != "c" {
		t.Fatalf("SecondaryTags = %+v", s)
	}
}

func TestParseTagCategory(t *testing.T) {
	for _, c := range TagCategories {
		got, err := ParseTagCategory(" " + strings.ToUpper(string(c)) + " ")
		if err != nil || got != c {
			t.Errorf("ParseTagCategory(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseTagCategory("hot"); err == nil {
		t.Error("ParseTagCategory(hot) succeeded")
	}
}

func TestIsMalformedThroughWrap(t *testing.T) {
	j := validJob()
	j.Title = ""
	wrapped := errors.Join(errors.New("loading seed"), j.Validate())
	if _, ok := IsMalformed(wrapped); !ok {
		t.Fatal("IsMalformed did not see through errors.Join")
	}
	if _, ok := IsMalformed(ErrNotFound); ok {
		t.Fatal("ErrNotFound reported as malformed")
	}
}
