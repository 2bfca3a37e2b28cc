package strategy

import (
	"context"

	"github.com/utkarsh5026/swapbench/internal/cpu"
	"github.com/utkarsh5026/swapbench/internal/fiber"
	"github.com/utkarsh5026/swapbench/workload"
)

// Fibers runs each schedule as a cooperative task. Sleeps suspend only the
// sleeping task; CPU bursts hold the scheduler until they finish.
type Fibers struct {
	cfg *config
}

// NewFibers creates a cooperative-task-per-worker strategy.
func NewFibers(opts ...Option) *Fibers {
	return &Fibers{cfg: newConfig(opts...)}
}

func (s *Fibers) Name() string {
	return NameFibers
}

// RunAll spawns one task per schedule behind a cooperative gate, releases
// them together and joins them in worker order. The first failure in worker
// order is returned after every task has finished.
func (s *Fibers) RunAll(ctx context.Context, set workload.ScheduleSet) error {
	if s.cfg.suspendGC {
		defer cpu.SuspendGC()()
	}

	return fiber.Run(ctx, func(root *fiber.Task) error {
		var gate fiber.Queue[struct{}]

		workers := make([]*fiber.Task, len(set))
		for worker, schedule := range set {
			workers[worker] = root.Go(func(t *fiber.Task) error {
				if _, err := gate.Pop(t); err != nil {
					return err
				}
				return runWorker(s.cfg, NameFibers, worker, schedule, t.Sleep)
			})
			s.cfg.spawned(worker)
		}

		for range len(set) {
			gate.Push(struct{}{})
		}

		var first error
		for _, w := range workers {
			if err := root.Wait(w); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
