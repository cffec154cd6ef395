// Package logo downloads company logos into the logo cache.
package logo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/store"
	"iranconnect-web/internal/util"
)

var (
	ErrNotAllowed = errors.New("logo url not allowed")
	ErrNotImage   = errors.New("not an image")
	ErrTooLarge   = errors.New("logo too large")
)

// Cache is where fetched logos are kept.
type Cache interface {
	Has(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, lg store.Logo) error
}

type Options struct {
	AllowHosts []string // empty allows any host
	MaxBytes   int64
	Timeout    time.Duration
	Limiter    *util.HostLimiter
	Client     *http.Client
}

type Fetcher struct {
	cache   Cache
	allow   []string
	max     int64
	limiter *util.HostLimiter
	hc      *http.Client
}

func NewFetcher(cache Cache, opt Options) *Fetcher {
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = 512 * 1024
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 15 * time.Second
	}
	if opt.Client == nil {
		opt.Client = &http.Client{Timeout: opt.Timeout}
	}
	allow := make([]string, 0, len(opt.AllowHosts))
	for _, h := range opt.AllowHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow = append(allow, strings.TrimPrefix(h, "www."))
		}
	}
	return &Fetcher{
		cache:   cache,
		allow:   allow,
		max:     opt.MaxBytes,
		limiter: opt.Limiter,
		hc:      opt.Client,
	}
}

// Cache stores the logo at raw and returns a "logo:<key>" ref for it.
// An HTML page is searched for its icon once.
func (f *Fetcher) Cache(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if err := f.check(raw); err != nil {
		return "", err
	}

	key := store.LogoKeyFromURL(raw)
	ok, err := f.cache.Has(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		return domain.LogoRefPrefix + key, nil
	}

	ct, body, err := f.fetch(ctx, raw, 1)
	if err != nil {
		log.Debug().Str("url", raw).Err(err).Msg("[logo] fetch failed")
		return "", err
	}
	if err := f.cache.Save(ctx, store.Logo{
		Key:         key,
		ContentType: ct,
		Bytes:       body,
		SourceURL:   raw,
		FetchedAt:   time.Now(),
	}); err != nil {
		return "", err
	}
	log.Debug().Str("url", raw).Str("key", key).Int("bytes", len(body)).Msg("[logo] cached")
	return domain.LogoRefPrefix + key, nil
}

func (f *Fetcher) check(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return fmt.Errorf("%w: %q", ErrNotAllowed, raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: scheme %q", ErrNotAllowed, u.Scheme)
	}
	if !f.hostAllowed(u.Hostname()) {
		return fmt.Errorf("%w: host %q", ErrNotAllowed, u.Hostname())
	}
	return nil
}

func (f *Fetcher) hostAllowed(host string) bool {
	if len(f.allow) == 0 {
		return true
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for _, a := range f.allow {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

func (f *Fetcher) fetch(ctx context.Context, raw string, hops int) (string, []byte, error) {
	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, raw); err != nil {
			return "", nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", "IranConnect/1.0 (+logo-cache)")
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/*,text/html;q=0.5,*/*;q=0.1")

	res, err := f.hc.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", nil, fmt.Errorf("logo status %d", res.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, f.max+1))
	if err != nil {
		return "", nil, err
	}
	if int64(len(b)) > f.max {
		return "", nil, ErrTooLarge
	}
	if len(b) == 0 {
		return "", nil, ErrNotImage
	}

	ct := strings.ToLower(strings.TrimSpace(strings.Split(res.Header.Get("Content-Type"), ";")[0]))
	if ct == "" {
		ct = strings.Split(http.DetectContentType(b), ";")[0]
	}
	switch {
	case ct == "image/svg+xml":
		// SVG can carry script and would run from our origin.
		return "", nil, fmt.Errorf("%w: %s", ErrNotImage, ct)
	case strings.HasPrefix(ct, "image/"):
		return ct, b, nil
	case ct == "text/html" && hops > 0:
		icon, err := iconURL(res.Request.URL, string(b))
		if err != nil {
			return "", nil, err
		}
		if err := f.check(icon); err != nil {
			return "", nil, err
		}
		return f.fetch(ctx, icon, hops-1)
	}
	return "", nil, fmt.Errorf("%w: %s", ErrNotImage, ct)
}

// iconURL picks the best icon a page links to, resolved against base.
func iconURL(base *url.URL, page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	var best string
	doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.Fields(strings.ToLower(s.AttrOr("rel", "")))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		for _, r := range rel {
			switch r {
			case "apple-touch-icon":
				best = href
				return false
			case "icon":
				if best == "" {
					best = href
				}
			}
		}
		return true
	})
	if best == "" {
		best = "/favicon.ico"
	}

	ref, err := url.Parse(best)
	if err != nil {
		return "", fmt.Errorf("%w: icon href %q", ErrNotImage, best)
	}
	return base.ResolveReference(ref).String(), nil
}
