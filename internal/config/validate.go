package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong
// with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.ToLower(strings.TrimSpace(x))
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Store.Driver = strings.ToLower(strings.TrimSpace(out.Store.Driver))
	out.Logos.AllowHosts = trimList(out.Logos.AllowHosts)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.Host == "" {
		res.addWarn("app.host is empty; the server will listen on every interface.")
	}

	if _, err := zerolog.ParseLevel(out.Log.Level); err != nil {
		res.addErr("log.level %q is not a known level", out.Log.Level)
	}

	switch out.Store.Driver {
	case "sqlite":
		if strings.TrimSpace(out.Store.Path) == "" {
			res.addErr("store.path is required when store.driver=sqlite")
		}
	case "memory":
		if !out.Store.SeedOnEmpty && out.Store.SeedPath == "" {
			res.addWarn("store.driver=memory without seeding starts with no jobs.")
		}
	default:
		res.addErr("store.driver must be sqlite or memory, got %q", out.Store.Driver)
	}

	if strings.TrimSpace(out.Site.Name) == "" {
		res.addErr("site.name is required")
	}
	checkLinks := func(name string, links []Link) {
		for i, l := range links {
			if strings.TrimSpace(l.Label) == "" {
				res.addErr("%s[%d].label is required", name, i)
			}
			if l.Href != "" && !safeHref(l.Href) {
				res.addErr("%s[%d].href %q must be a site path or an http(s) URL", name, i, l.Href)
			}
		}
	}
	checkLinks("site.nav", out.Site.Nav)
	checkLinks("site.quick_links", out.Site.QuickLinks)
	checkLinks("site.resources", out.Site.Resources)
	for i, c := range out.Site.Categories {
		if strings.TrimSpace(c.Label) == "" || strings.TrimSpace(c.Query) == "" {
			res.addErr("site.categories[%d] needs both label and query", i)
		}
	}

	if out.Listing.FeaturedCount < 0 {
		res.addErr("listing.featured_count must be >= 0")
	} else if out.Listing.FeaturedCount == 0 {
		res.addWarn("listing.featured_count is 0; the landing page shows no featured jobs.")
	}
	if out.Listing.SimilarCount < 0 {
		res.addErr("listing.similar_count must be >= 0")
	}

	if out.Logos.Enabled {
		if out.Logos.RequestsPerSecond <= 0 {
			res.addErr("logos.requests_per_second must be > 0 when logos.enabled=true")
		} else if out.Logos.RequestsPerSecond > 20 {
			res.addWarn("logos.requests_per_second is very high (%.1f) and may get you blocked.", out.Logos.RequestsPerSecond)
		}
		if out.Logos.MaxBytes <= 0 {
			res.addErr("logos.max_bytes must be > 0")
		}
		if out.Logos.Concurrency <= 0 {
			res.addErr("logos.concurrency must be > 0")
		}
		if out.Logos.TimeoutSeconds <= 0 {
			res.addErr("logos.timeout_seconds must be > 0")
		}
		if len(out.Logos.AllowHosts) == 0 {
			res.addWarn("logos.allow_hosts is empty; logos will be fetched from any host.")
		}
	}
	if out.Logos.GCMinutes < 0 {
		res.addErr("logos.gc_minutes must be >= 0")
	}
	if out.Maintenance.CheckpointMinutes < 0 {
		res.addErr("maintenance.checkpoint_minutes must be >= 0")
	}

	if p := out.Assets.Placeholder; !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		res.addErr("assets.placeholder must be a site path, got %q", p)
	}

	return out, res
}

func safeHref(h string) bool {
	if strings.HasPrefix(h, "/") && !strings.HasPrefix(h, "//") {
		return true
	}
	u, err := url.Parse(h)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
