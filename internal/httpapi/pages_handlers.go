package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/render"
)

type PagesHandler struct {
	Deps
}

// Landing shows the featured jobs and per-province counts. Each province
// count is its own query so the page never waits on more than it shows.
func (h PagesHandler) Landing(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg()
	ctx := r.Context()

	var featured []domain.Job
	counts := make([]int, len(domain.Provinces))

	g, gctx := errgroup.WithContext(ctx)
	if n := cfg.Listing.FeaturedCount; n > 0 {
		g.Go(func() error {
			jobs, err := h.Jobs.FetchJobs(gctx, domain.Filter{Limit: n})
			featured = jobs
			return err
		})
	}
	for i, p := range domain.Provinces {
		g.Go(func() error {
			jobs, err := h.Jobs.FetchJobs(gctx, domain.Filter{Province: p.Slug})
			counts[i] = len(jobs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	bySlug := make(map[string]int, len(counts))
	for i, p := range domain.Provinces {
		bySlug[p.Slug] = counts[i]
	}
	h.page(w, r, http.StatusOK, func(out io.Writer) error {
		return h.pages().Landing(out, featured, bySlug)
	})
}

func (h PagesHandler) Listing(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if errors.Is(err, errUnknownProvince) {
		h.status(w, r, render.NotFoundPage("استان مورد نظر پیدا نشد."))
		return
	}

	jobs, err := h.Jobs.FetchJobs(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.page(w, r, http.StatusOK, func(out io.Writer) error {
		return h.pages().Listing(out, jobs, f)
	})
}

func (h PagesHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := domain.JobID(mux.Vars(r)["id"])
	cfg := h.cfg()

	var (
		job domain.Job
		all []domain.Job
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		job, err = h.Jobs.FetchJobByID(gctx, id)
		return err
	})
	if cfg.Listing.SimilarCount > 0 {
		g.Go(func() error {
			var err error
			all, err = h.Jobs.FetchJobs(gctx, domain.Filter{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.status(w, r, render.NotFoundPage("فرصت شغلی مورد نظر پیدا نشد یا دیگر در دسترس نیست."))
			return
		}
		h.fail(w, r, err)
		return
	}

	similar := domain.Similar(job, all, cfg.Listing.SimilarCount)
	h.page(w, r, http.StatusOK, func(out io.Writer) error {
		return h.pages().Details(out, job, similar)
	})
}

func (h PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, render.NotFoundPage(""))
}

func (h PagesHandler) status(w http.ResponseWriter, r *http.Request, s render.StatusPage) {
	h.page(w, r, s.Code, func(out io.Writer) error {
		return h.pages().Status(out, s)
	})
}

func (h PagesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().
		Str("request_id", RequestIDFrom(r.Context())).
		Str("path", r.URL.Path).
		Err(err).
		Msg("page data failed")
	if r.Context().Err() != nil {
		return
	}
	h.status(w, r, render.ErrorPage())
}

// page renders into a buffer first so a template error never leaves a
// half-written page behind.
func (h PagesHandler) page(w http.ResponseWriter, r *http.Request, code int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		log.Error().
			Str("request_id", RequestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Err(err).
			Msg("render failed")

		buf.Reset()
		code = http.StatusInternalServerError
		if err := h.pages().Status(&buf, render.ErrorPage()); err != nil {
			http.Error(w, "internal server error", code)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}
