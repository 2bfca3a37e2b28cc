package strategy

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/utkarsh5026/swapbench/workload"
)

const (
	NameThreads = "threads"
	NameFibers  = "fibers"
)

// Strategy runs every schedule of a set concurrently and returns once all of
// them have finished.
type Strategy interface {
	Name() string
	RunAll(ctx context.Context, set workload.ScheduleSet) error
}

// Names lists the available strategies in the order they are compared.
func Names() []string {
	return []string{NameThreads, NameFibers}
}

// New returns the strategy registered under name.
func New(name string, opts ...Option) (Strategy, error) {
	switch name {
	case NameThreads:
		return NewThreads(opts...), nil
	case NameFibers:
		return NewFibers(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Time runs s once over set and reports the wall-clock time it took.
func Time(ctx context.Context, s Strategy, set workload.ScheduleSet) (time.Duration, error) {
	start := time.Now()
	err := s.RunAll(ctx, set)
	return time.Since(start), err
}

// runWorker performs one schedule with the worker hooks around it and turns
// any error or panic into a *WorkerFailure.
func runWorker(
	cfg *config,
	name string,
	worker int,
	schedule workload.Schedule,
	sleep workload.SleepFunc,
) error {
	err := performWithRecovery(cfg, worker, schedule, sleep)
	if cfg.onWorkerEnd != nil {
		cfg.onWorkerEnd(worker, err)
	}

	if err != nil {
		return &WorkerFailure{Strategy: name, Worker: worker, Err: err}
	}
	return nil
}

func performWithRecovery(
	cfg *config,
	worker int,
	schedule workload.Schedule,
	sleep workload.SleepFunc,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	if cfg.beforeWorkerStart != nil {
		cfg.beforeWorkerStart(worker)
	}
	return schedule.Perform(sleep)
}
