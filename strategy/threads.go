package strategy

import (
	"context"
	"time"

	"github.com/utkarsh5026/swapbench/internal/cpu"
	"github.com/utkarsh5026/swapbench/workload"
	"golang.org/x/sync/errgroup"
)

// Threads runs each schedule on a goroutine locked to its own OS thread, so
// the operating system preempts and parallelizes the workers.
type Threads struct {
	cfg *config
}

// NewThreads creates a thread-per-worker strategy.
func NewThreads(opts ...Option) *Threads {
	return &Threads{cfg: newConfig(opts...)}
}

func (s *Threads) Name() string {
	return NameThreads
}

// RunAll spawns one locked thread per schedule, releases them together and
// waits for all of them. The first worker failure cancels the sleeps of the
// remaining workers.
func (s *Threads) RunAll(ctx context.Context, set workload.ScheduleSet) error {
	if s.cfg.suspendGC {
		defer cpu.SuspendGC()()
	}

	gate := make(chan struct{}, len(set))
	g, ctx := errgroup.WithContext(ctx)

	for worker, schedule := range set {
		g.Go(func() error {
			unlock := cpu.LockThread(worker, s.cfg.pin)
			defer unlock()

			<-gate
			return runWorker(s.cfg, NameThreads, worker, schedule, sleepOnThread(ctx))
		})
		s.cfg.spawned(worker)
	}

	for range len(set) {
		gate <- struct{}{}
	}

	return g.Wait()
}

// sleepOnThread blocks the calling OS thread for d, or until ctx is done.
func sleepOnThread(ctx context.Context) workload.SleepFunc {
	return func(d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
