// Package strategy runs every schedule of a workload.ScheduleSet
// concurrently under one of two models:
//
//   - Threads: one goroutine per schedule, each wired to its own OS thread.
//     CPU bursts of different workers genuinely overlap.
//   - Fibers: one cooperative task per schedule on a single-baton scheduler.
//     Only I/O waits interleave; a CPU burst stalls every other worker.
//
// Both follow the same three phases: spawn every worker, release them all
// at once through a gate, then join them all. No worker starts its schedule
// before the last one has been spawned.
//
//	threads := strategy.NewThreads(strategy.WithCorePinning())
//	elapsed, err := strategy.Time(ctx, threads, set)
//
// Timing is left to the caller; Time is a convenience wrapper.
//
// # Hooks
//
//   - WithOnSpawn(fn): called on the spawning goroutine after each worker is created
//   - WithBeforeWorkerStart(fn): called by a worker once released, before its schedule
//   - WithOnWorkerEnd(fn): called by a worker after its schedule, with its error
//
// # Error Handling
//
// A worker that returns an error or panics is reported as a *WorkerFailure
// once every worker has been joined.
package strategy
