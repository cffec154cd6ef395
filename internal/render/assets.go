package render

import (
	"net/url"
	"strings"

	"iranconnect-web/internal/domain"
)

// Assets resolves image references to URLs the page can always load.
type Assets struct {
	Placeholder string // shown whenever a logo is missing or unusable
	LogoPrefix  string // cached logos are served under this path
	FlagPrefix  string
}

func DefaultAssets() Assets {
	return Assets{
		Placeholder: "/static/placeholder.svg",
		LogoPrefix:  "/logo/",
		FlagPrefix:  "/static/flags/",
	}
}

// Logo maps a job's logo ref to an image URL. Anything it does not
// recognise as safe resolves to the placeholder.
func (a Assets) Logo(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return a.Placeholder
	case strings.HasPrefix(ref, domain.LogoRefPrefix):
		key := strings.TrimPrefix(ref, domain.LogoRefPrefix)
		if !isHexKey(key) {
			return a.Placeholder
		}
		return a.LogoPrefix + key
	case strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//"):
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return a.Placeholder
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return ref
	}
	return a.Placeholder
}

func (a Assets) Flag(slug string) string {
	return a.FlagPrefix + url.PathEscape(slug) + ".svg"
}

func isHexKey(s string) bool {
	if s == "" || len(s) > 128 {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
