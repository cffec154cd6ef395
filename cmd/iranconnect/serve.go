package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"iranconnect-web/internal/config"
	"iranconnect-web/internal/events"
	"iranconnect-web/internal/httpapi"
	"iranconnect-web/internal/render"
	"iranconnect-web/internal/scheduler"
	"iranconnect-web/internal/store"
)

const (
	gracefulShutdownTimeout = 15 * time.Second

	// Logos younger than this survive GC while their import finishes.
	logoGCGrace = time.Hour
)

func (a *app) serve(ctx context.Context) error {
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

	b, err := a.openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	im := a.importer(cfg, b)
	if err := a.seedIfEmpty(ctx, cfg, b, im); err != nil {
		return err
	}

	pages, err := httpapi.NewRenderer(cfg)
	if err != nil {
		return err
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)
	var renderer atomic.Pointer[render.Renderer]
	renderer.Store(pages)

	cfgPath, err := a.configPath()
	if err != nil {
		return err
	}

	deps := httpapi.Deps{
		Jobs:          b.jobs,
		Importer:      im,
		Hub:           events.NewHub(),
		CfgVal:        &cfgVal,
		Renderer:      &renderer,
		UserCfgPath:   cfgPath,
		LoadCfg:       a.loadConfig,
		BuildRenderer: httpapi.NewRenderer,
	}
	// Keep the interfaces nil for the memory store.
	if b.db != nil {
		deps.DB = b.db
		deps.Logos = b.logos
		a.startMaintenance(ctx, cfg, b)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: /api/events streams. Request contexts end with
		// ctx so open streams return before Shutdown gives up on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Store.Driver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// startMaintenance runs the sqlite housekeeping tasks until ctx ends.
func (a *app) startMaintenance(ctx context.Context, cfg config.Config, b backend) {
	go scheduler.Every(ctx, cfg.LogoGCInterval(), "logo-gc", func(ctx context.Context) error {
		n, err := b.logos.DeleteOrphans(ctx, time.Now().Add(-logoGCGrace))
		if err == nil && n > 0 {
			log.Info().Int64("deleted", n).Msg("orphan logos removed")
		}
		return err
	})
	go scheduler.Every(ctx, cfg.CheckpointInterval(), "wal-checkpoint", func(ctx context.Context) error {
		busy, frames, done, err := b.db.Checkpoint(ctx)
		if err == nil {
			log.Debug().Int("busy", busy).Int("log_frames", frames).Int("checkpointed", done).Msg("wal checkpoint")
		}
		return err
	})
}
