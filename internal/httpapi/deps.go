package httpapi

import (
	"context"
	"sync/atomic"

	"iranconnect-web/internal/config"
	"iranconnect-web/internal/domain"
	"iranconnect-web/internal/events"
	"iranconnect-web/internal/render"
	"iranconnect-web/internal/seed"
	"iranconnect-web/internal/store"
)

// LogoSource serves cached logo bytes.
type LogoSource interface {
	Get(ctx context.Context, key string) (store.Logo, error)
}

// Checkpointer flushes the database write-ahead log.
type Checkpointer interface {
	Checkpoint(ctx context.Context) (busy, logFrames, checkpointed int, err error)
}

type Deps struct {
	Jobs     domain.JobStore
	Importer *seed.Importer // nil writes straight to Jobs
	Logos    LogoSource     // nil when the store keeps no logos
	DB       Checkpointer   // nil for the memory store

	Hub *events.Hub

	// Atomic stores
	CfgVal   *atomic.Value // stores config.Config
	Renderer *atomic.Pointer[render.Renderer]

	// Config persistence
	UserCfgPath   string
	LoadCfg       func() (config.Config, error)
	BuildRenderer func(config.Config) (*render.Renderer, error)
}

func (d Deps) cfg() config.Config { return d.CfgVal.Load().(config.Config) }

func (d Deps) pages() *render.Renderer { return d.Renderer.Load() }
