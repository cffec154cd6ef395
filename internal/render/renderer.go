package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"time"

	"iranconnect-web/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded at build time
	}
	return sub
}

var pageNames = []string{"landing", "listing", "details", "status"}

type footerSection struct {
	Title string
	Links []Link
}

var funcs = template.FuncMap{
	"footerLinks": func(title string, links []Link) footerSection {
		return footerSection{Title: title, Links: links}
	},
	// Contact addresses come from operator config, not from job records.
	"mailto": func(addr string) template.URL {
		return template.URL("mailto:" + url.PathEscape(addr))
	},
}

// Renderer turns job records into HTML pages. It is safe for concurrent use.
type Renderer struct {
	site   Site
	assets Assets
	now    func() time.Time

	pages map[string]*template.Template
	card  *template.Template
}

type pageData struct {
	Site  Site
	Title string
	Year  int
	Body  any
}

func New(site Site, assets Assets) (*Renderer, error) {
	r := &Renderer{
		site:   site,
		assets: assets,
		now:    time.Now,
		pages:  make(map[string]*template.Template, len(pageNames)),
	}

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.tmpl",
			"templates/card.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}

	card, err := template.New("fragment").Funcs(funcs).ParseFS(templateFS, "templates/card.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse card template: %w", err)
	}
	r.card = card
	return r, nil
}

func (r *Renderer) Assets() Assets { return r.assets }

func (r *Renderer) execute(w io.Writer, name, title string, body any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("no %s template", name)
	}
	return t.ExecuteTemplate(w, "layout", pageData{
		Site:  r.site,
		Title: title,
		Year:  r.now().Year(),
		Body:  body,
	})
}

// Card writes the bare card fragment for j.
func (r *Renderer) Card(w io.Writer, j domain.Job) error {
	c, err := NewCard(r.assets, j)
	if err != nil {
		return err
	}
	return r.card.ExecuteTemplate(w, "card", c)
}

// Landing renders the home page. counts maps province slugs to job counts.
func (r *Renderer) Landing(w io.Writer, featured []domain.Job, counts map[string]int) error {
	cards, err := newCards(r.assets, featured)
	if err != nil {
		return err
	}
	v := LandingView{
		Site:       r.site,
		Featured:   cards,
		Categories: r.site.Categories,
	}
	for _, p := range domain.Provinces {
		v.Provinces = append(v.Provinces, ProvinceLink{
			Province: p,
			FlagURL:  r.assets.Flag(p.Slug),
			Href:     "/jobs?province=" + p.Slug,
			Count:    counts[p.Slug],
		})
	}
	return r.execute(w, "landing", "", v)
}

func (r *Renderer) Listing(w io.Writer, jobs []domain.Job, f domain.Filter) error {
	cards, err := newCards(r.assets, jobs)
	if err != nil {
		return err
	}
	v := ListingView{Heading: "همه فرصت‌های شغلی", Filter: f, Cards: cards}
	if p, ok := domain.LookupProvince(f.Province); ok {
		v.Province = &p
		v.Heading = "فرصت‌های شغلی در " + p.Label
	}
	return r.execute(w, "listing", v.Heading, v)
}

func (r *Renderer) Details(w io.Writer, j domain.Job, similar []domain.Job) error {
	d, err := NewDetails(r.assets, j, similar)
	if err != nil {
		return err
	}
	return r.execute(w, "details", j.Title, d)
}

func (r *Renderer) Status(w io.Writer, s StatusPage) error {
	return r.execute(w, "status", s.Heading, s)
}
