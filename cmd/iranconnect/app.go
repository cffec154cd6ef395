package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/config"
	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/logo"
	"iranconnect-web/internal/seed"
	"iranconnect-web/internal/store"
	"iranconnect-web/internal/util"
)

type app struct {
	dataDir string
	cfgPath string
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

// backend is the opened store plus the pieces only sqlite provides.
type backend struct {
	jobs  domain.JobStore
	db    *store.DB    // nil for memory
	logos *store.Logos // nil for memory
}

func (b backend) Close() error { return b.db.Close() }

func (a *app) configPath() (string, error) {
	if a.cfgPath != "" {
		return a.cfgPath, nil
	}
	return config.EnsureUserConfig(a.dataDir)
}

func (a *app) loadConfig() (config.Config, error) {
	path, err := a.configPath()
	if err != nil {
		return config.Config{}, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config load (%s): %w", path, err)
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Warn().Str("path", path).Msg("config: " + w)
	}
	if !v.OK() {
		return cfg, fmt.Errorf("config %s: %s", path, strings.Join(v.Errors, "; "))
	}
	return cfg, nil
}

func (a *app) openBackend(cfg config.Config) (backend, error) {
	switch cfg.Store.Driver {
	case "memory":
		m, err := store.NewMemory()
		if err != nil {
			return backend{}, err
		}
		return backend{jobs: m}, nil
	default:
		path := cfg.Store.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.dataDir, path)
		}
		db, err := store.Open(path)
		if err != nil {
			return backend{}, fmt.Errorf("open store %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("store opened")
		return backend{jobs: store.NewJobs(db), db: db, logos: store.NewLogos(db)}, nil
	}
}

func (a *app) importer(cfg config.Config, b backend) *seed.Importer {
	im := &seed.Importer{Store: b.jobs, Concurrency: cfg.Logos.Concurrency}
	if cfg.Logos.Enabled && b.logos != nil {
		im.Logos = logo.NewFetcher(b.logos, logo.Options{
			AllowHosts: cfg.Logos.AllowHosts,
			MaxBytes:   cfg.Logos.MaxBytes,
			Timeout:    cfg.LogoTimeout(),
			Limiter:    util.NewHostLimiter(cfg.Logos.RequestsPerSecond, cfg.Logos.Burst),
		})
	}
	return im
}

// seedJobs reads the configured seed file, or the bundled records.
func (a *app) seedJobs(cfg config.Config) ([]domain.Job, error) {
	p := cfg.Store.SeedPath
	if p == "" {
		return seed.Default()
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(a.dataDir, p)
	}
	return seed.ParseFile(p)
}

func (a *app) seedIfEmpty(ctx context.Context, cfg config.Config, b backend, im *seed.Importer) error {
	if !cfg.Store.SeedOnEmpty {
		return nil
	}
	c, ok := b.jobs.(counter)
	if !ok {
		return nil
	}
	n, err := c.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	jobs, err := a.seedJobs(cfg)
	if err != nil {
		return err
	}
	res, err := im.Import(ctx, jobs)
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	log.Info().Int("upserted", res.Upserted).Int("logos_cached", res.LogosCached).Msg("store seeded")
	return nil
}
