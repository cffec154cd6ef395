package logo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/store"
	"iranconnect-web/internal/util"
)

type memCache struct {
	mu    sync.Mutex
	logos map[string]store.Logo
}

func newMemCache() *memCache { return &memCache{logos: map[string]store.Logo{}} }

func (c *memCache) Has(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.logos[key]
	return ok, nil
}

func (c *memCache) Save(_ context.Context, lg store.Logo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logos[lg.Key] = lg
	return nil
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func logoServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/sniffed", func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/company", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><link rel="shortcut icon" href="/logo.png"></head><body></body></html>`))
	})
	mux.HandleFunc("/vector.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(document.cookie)</script></svg>`))
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCacheStoresImageOnce(t *testing.T) {
	var hits atomic.Int32
	srv := logoServer(t, &hits)
	cache := newMemCache()
	f := NewFetcher(cache, Options{Limiter: util.NewHostLimiter(100, 10)})

	ref, err := f.Cache(context.Background(), srv.URL+"/logo.png")
	if err != nil {
		t.Fatalf("Cache: %v", err)
	}
	key := store.LogoKeyFromURL(srv.URL + "/logo.png")
	if ref != domain.LogoRefPrefix+key {
		t.Fatalf("ref = %q", ref)
	}
	if lg := cache.logos[key]; lg.ContentType != "image/png" || lg.SourceURL != srv.URL+"/logo.png" {
		t.Fatalf("stored %+v", lg)
	}

	if _, err := f.Cache(context.Background(), srv.URL+"/logo.png#frag"); err != nil {
		t.Fatalf("second Cache: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("hits = %d, want 1", n)
	}
}

func TestCacheFollowsPageIcon(t *testing.T) {
	var hits atomic.Int32
	srv := logoServer(t, &hits)
	cache := newMemCache()
	f := NewFetcher(cache, Options{})

	if _, err := f.Cache(context.Background(), srv.URL+"/company"); err != nil {
		t.Fatalf("Cache: %v", err)
	}
	lg := cache.logos[store.LogoKeyFromURL(srv.URL+"/company")]
	if lg.ContentType != "image/png" || hits.Load() != 1 {
		t.Fatalf("stored %+v after %d icon hits", lg, hits.Load())
	}
}

func TestCacheSniffsMissingContentType(t *testing.T) {
	var hits atomic.Int32
	srv := logoServer(t, &hits)
	f := NewFetcher(newMemCache(), Options{})
	if _, err := f.Cache(context.Background(), srv.URL+"/sniffed"); err != nil {
		t.Fatalf("Cache: %v", err)
	}
}

func TestCacheRejects(t *testing.T) {
	var hits atomic.Int32
	srv := logoServer(t, &hits)
	ctx := context.Background()

	f := NewFetcher(newMemCache(), Options{MaxBytes: 1024})
	if _, err := f.Cache(ctx, srv.URL+"/text"); !errors.Is(err, ErrNotImage) {
		t.Errorf("text body err = %v", err)
	}
	cache := newMemCache()
	if _, err := NewFetcher(cache, Options{}).Cache(ctx, srv.URL+"/vector.svg"); !errors.Is(err, ErrNotImage) {
		t.Errorf("svg body err = %v", err)
	}
	if len(cache.logos) != 0 {
		t.Errorf("svg was cached")
	}
	if _, err := f.Cache(ctx, srv.URL+"/big"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("big body err = %v", err)
	}
	if _, err := f.Cache(ctx, "ftp://example.com/logo.png"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("ftp err = %v", err)
	}

	strict := NewFetcher(newMemCache(), Options{AllowHosts: []string{"example.com"}})
	if _, err := strict.Cache(ctx, srv.URL+"/logo.png"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("allow-list err = %v", err)
	}
	if !strict.hostAllowed("cdn.example.com") || !strict.hostAllowed("www.example.com") || strict.hostAllowed("badexample.com") {
		t.Errorf("hostAllowed suffix rules broken")
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("rejected urls were fetched %d times", n)
	}
}
