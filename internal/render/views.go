package render

import (
	"fmt"
	"html/template"
	"net/url"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/sanitize"
)

// Card is the compact summary of one job used on list views.
type Card struct {
	ID             domain.JobID
	Title          string
	Company        string
	Location       string
	EmploymentType string
	Salary         string
	Skills         []string
	LogoURL        string
	DetailURL      string
	Primary        *Badge
	Secondary      []Badge
}

// DetailURL is where a job's details page lives.
func DetailURL(id domain.JobID) string {
	return "/jobs/" + url.PathEscape(string(id))
}

// NewCard builds the card view for j. It fails only when a tag carries a
// category without a badge style.
func NewCard(a Assets, j domain.Job) (Card, error) {
	c := Card{
		ID:             j.ID,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Salary:         j.Salary,
		Skills:         j.Skills,
		LogoURL:        a.Logo(j.LogoRef),
		DetailURL:      DetailURL(j.ID),
	}

	if t, ok := j.PrimaryTag(); ok {
		b, err := newBadge(t)
		if err != nil {
			return Card{}, fmt.Errorf("job %s: %w", j.ID, err)
		}
		c.Primary = &b
	}
	for _, t := range j.SecondaryTags() {
		b, err := newBadge(t)
		if err != nil {
			return Card{}, fmt.Errorf("job %s: %w", j.ID, err)
		}
		c.Secondary = append(c.Secondary, b)
	}
	return c, nil
}

func newCards(a Assets, jobs []domain.Job) ([]Card, error) {
	out := make([]Card, 0, len(jobs))
	for _, j := range jobs {
		c, err := NewCard(a, j)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Details is the full view of one job.
type Details struct {
	Card
	Description  template.HTML // sanitized
	Requirements []string
	ApplyURL     string
	Similar      []Card
}

func NewDetails(a Assets, j domain.Job, similar []domain.Job) (Details, error) {
	c, err := NewCard(a, j)
	if err != nil {
		return Details{}, err
	}
	sim, err := newCards(a, similar)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Card:         c,
		Description:  sanitize.Description(j.Description),
		Requirements: j.Requirements,
		ApplyURL:     j.ApplyURL,
		Similar:      sim,
	}, nil
}

type Link struct {
	Label string
	Href  string
}

// Site holds the text shared by every page: header, footer and metadata.
type Site struct {
	Name         string
	Title        string
	Description  string
	Tagline      string
	HeroHeading  string
	HeroText     string
	ContactEmail string
	Phone        string
	Address      string
	Nav          []Link
	QuickLinks   []Link
	Resources    []Link
	Categories   []Category
}

// Category is a landing-page shortcut into a listing search.
type Category struct {
	Label string
	Query string
}

func (c Category) Href() string {
	return "/jobs?q=" + url.QueryEscape(c.Query)
}

type ProvinceLink struct {
	domain.Province
	FlagURL string
	Href    string
	Count   int
}

type LandingView struct {
	Site       Site
	Featured   []Card
	Provinces  []ProvinceLink
	Categories []Category
}

type ListingView struct {
	Heading  string
	Filter   domain.Filter
	Province *domain.Province
	Cards    []Card
}

func (v ListingView) Filtered() bool { return !v.Filter.IsZero() }

// StatusPage is rendered instead of a page that cannot be shown.
type StatusPage struct {
	Code    int
	Heading string
	Message string
}

func NotFoundPage(message string) StatusPage {
	if message == "" {
		message = "صفحه‌ای که به دنبال آن هستید پیدا نشد."
	}
	return StatusPage{Code: 404, Heading: "یافت نشد", Message: message}
}

func ErrorPage() StatusPage {
	return StatusPage{Code: 500, Heading: "خطا", Message: "مشکلی پیش آمد. لطفاً بعداً دوباره تلاش کنید."}
}
