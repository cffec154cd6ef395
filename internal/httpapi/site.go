package httpapi

import (
	"iranconnect-web/internal/config"
	"iranconnect-web/internal/render"
)

// NewRenderer builds the page renderer for the site section of cfg.
func NewRenderer(cfg config.Config) (*render.Renderer, error) {
	s := cfg.Site
	site := render.Site{
		Name:         s.Name,
		Title:        s.Title,
		Description:  s.Description,
		Tagline:      s.Tagline,
		HeroHeading:  s.HeroHeading,
		HeroText:     s.HeroText,
		ContactEmail: s.Contact.Email,
		Phone:        s.Contact.Phone,
		Address:      s.Contact.Address,
		Nav:          links(s.Nav),
		QuickLinks:   links(s.QuickLinks),
		Resources:    links(s.Resources),
	}
	for _, c := range s.Categories {
		site.Categories = append(site.Categories, render.Category{Label: c.Label, Query: c.Query})
	}

	assets := render.DefaultAssets()
	if cfg.Assets.Placeholder != "" {
		assets.Placeholder = cfg.Assets.Placeholder
	}
	return render.New(site, assets)
}

func links(in []config.Link) []render.Link {
	out := make([]render.Link, 0, len(in))
	for _, l := range in {
		out = append(out, render.Link{Label: l.Label, Href: l.Href})
	}
	return out
}
