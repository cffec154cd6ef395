package seed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"iranconnect-web/internal/domain"
)

// LogoCacher turns a remote logo url into a local "logo:<key>" ref.
type LogoCacher interface {
	Cache(ctx context.Context, rawURL string) (string, error)
}

type Importer struct {
	Store       domain.JobStore
	Logos       LogoCacher // nil leaves logo refs as they are
	Concurrency int
}

type Result struct {
	Upserted    int `json:"upserted"`
	LogosCached int `json:"logos_cached"`
	LogosFailed int `json:"logos_failed"`
}

// Import caches remote logos concurrently, then upserts jobs one by one in
// the given order. A logo that cannot be fetched falls back to no logo.
func (im *Importer) Import(ctx context.Context, jobs []domain.Job) (Result, error) {
	var res Result
	jobs = append([]domain.Job(nil), jobs...)

	if im.Logos != nil {
		refs := make([]string, len(jobs))
		failed := make([]bool, len(jobs))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(im.Concurrency, 1))
		for i, j := range jobs {
			if !isRemote(j.LogoRef) {
				continue
			}
			g.Go(func() error {
				ref, err := im.Logos.Cache(gctx, j.LogoRef)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					log.Warn().Str("job", string(j.ID)).Str("url", j.LogoRef).Err(err).Msg("[import] logo fetch failed")
					failed[i] = true
					return nil
				}
				refs[i] = ref
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return res, err
		}

		for i := range jobs {
			switch {
			case failed[i]:
				jobs[i].LogoRef = ""
				res.LogosFailed++
			case refs[i] != "":
				jobs[i].LogoRef = refs[i]
				res.LogosCached++
			}
		}
	}

	for _, j := range jobs {
		if err := im.Store.UpsertJob(ctx, j); err != nil {
			return res, fmt.Errorf("import job %s: %w", j.ID, err)
		}
		res.Upserted++
	}
	return res, nil
}

func isRemote(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Host == "" {
		return false
	}
	s := strings.ToLower(u.Scheme)
	return s == "http" || s == "https"
}
