package scheduler

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"marketwatch/internal/usecase/refresh"
)

// AutoUpdater ticks on a short interval and runs a refresh pass over
// whatever items are due. Passes are never overlapped: the scheduler
// skips the tick while one is in flight.
type AutoUpdater struct {
	Orchestrator *refresh.Orchestrator

	Tick   time.Duration
	Logger *slog.Logger

	running int32
}

func (a *AutoUpdater) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *AutoUpdater) Start(ctx context.Context) {
	tick := a.Tick
	if tick <= 0 {
		tick = time.Minute
	}

	go func() {
		// small startup jitter so restarts across instances do not
		// hammer the upstream in lockstep
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(2+rand.IntN(8)) * time.Second):
		}

		t := time.NewTicker(tick)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				a.runOnce(ctx)
			}
		}
	}()
}

func (a *AutoUpdater) runOnce(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&a.running, 0, 1) {
		// a long pass is still draining the fetch queue; report what
		// piled up meanwhile instead of stacking another pass on top
		if due, err := a.Orchestrator.DueForRefresh(ctx, time.Now()); err == nil {
			a.log().Info("refresh pass still running",
				"pending", len(due.Union()))
		}
		return
	}

	go func() {
		defer atomic.StoreInt32(&a.running, 0)

		sum, err := a.Orchestrator.RunScheduledPass(ctx)
		if err != nil {
			a.log().Error("scheduled refresh pass failed", "err", err)
			return
		}
		if sum.Failed > 0 {
			a.log().Warn("scheduled refresh pass finished with failures",
				"updated", sum.Updated, "failed", sum.Failed)
		}
	}()
}
