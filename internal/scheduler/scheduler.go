package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

// Every runs task now and then every interval until ctx is done. A
// non-positive interval disables the task.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	if interval <= 0 {
		log.Info().Str("task", name).Msg("[scheduler] disabled")
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error().Str("task", name).Err(err).Msg("[scheduler] task failed")
			return
		}
		log.Debug().Str("task", name).Dur("took", time.Since(start)).Msg("[scheduler] task done")
	}

	run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
