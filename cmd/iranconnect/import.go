package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/seed"
	"iranconnect-web/internal/store"
)

// importFiles upserts every record of each YAML file. The data dir lock
// keeps it from racing a running server.
func (a *app) importFiles(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return errors.New("import: no files given")
	}
	unlock, err := store.LockDataDir(a.dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)
	if cfg.Store.Driver == "memory" {
		return errors.New("import: the memory store does not persist; set store.driver to sqlite")
	}

	// Parse everything first so one bad file leaves the store untouched.
	batches := make([][]domain.Job, len(files))
	for i, f := range files {
		if batches[i], err = seed.ParseFile(f); err != nil {
			return fmt.Errorf("import %s: %w", f, err)
		}
	}

	b, err := a.openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	im := a.importer(cfg, b)

	for i, jobs := range batches {
		res, err := im.Import(ctx, jobs)
		if err != nil {
			return fmt.Errorf("import %s: %w", files[i], err)
		}
		log.Info().
			Str("file", files[i]).
			Int("upserted", res.Upserted).
			Int("logos_cached", res.LogosCached).
			Int("logos_failed", res.LogosFailed).
			Msg("imported")
	}
	return nil
}
