package benchmarks

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/swapbench/calibrate"
	"github.com/utkarsh5026/swapbench/strategy"
	"github.com/utkarsh5026/swapbench/workload"
)

// strategyConfig defines a benchmark configuration for a strategy
type strategyConfig struct {
	name string
	opts []strategy.Option
}

// getAllStrategies returns both strategies, with and without GC suspension
func getAllStrategies() []strategyConfig {
	return []strategyConfig{
		{name: "Threads", opts: nil},
		{name: "Threads_Pinned", opts: []strategy.Option{strategy.WithCorePinning()}},
		{name: "Fibers", opts: nil},
		{name: "Threads_NoGC", opts: []strategy.Option{strategy.WithGCSuspended()}},
		{name: "Fibers_NoGC", opts: []strategy.Option{strategy.WithGCSuspended()}},
	}
}

// getBasicStrategies returns one configuration per strategy
func getBasicStrategies() []strategyConfig {
	return []strategyConfig{
		{name: "Threads"},
		{name: "Fibers"},
	}
}

func (s strategyConfig) build() strategy.Strategy {
	switch s.name {
	case "Fibers", "Fibers_NoGC":
		return strategy.NewFibers(s.opts...)
	default:
		return strategy.NewThreads(s.opts...)
	}
}

// runStrategyBenchmark runs a benchmark function for all strategies
func runStrategyBenchmark(b *testing.B, strategies []strategyConfig, benchFunc func(b *testing.B, s strategy.Strategy)) {
	for _, cfg := range strategies {
		b.Run(cfg.name, func(b *testing.B) {
			benchFunc(b, cfg.build())
		})
	}
}

// runSet times RunAll over set b.N times
func runSet(b *testing.B, s strategy.Strategy, set workload.ScheduleSet) {
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if err := s.RunAll(ctx, set); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()

	b.ReportMetric(float64(len(set)), "workers/op")
}

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

var hostModel = sync.OnceValues(func() (*calibrate.Model, error) {
	return calibrate.Calibrate(calibrate.WithFloor(2 * time.Millisecond))
})

// model returns the calibration of this host, computed once per process
func model(b *testing.B) *calibrate.Model {
	b.Helper()
	m, err := hostModel()
	if err != nil {
		b.Fatalf("calibrate: %v", err)
	}
	return m
}

// mixedSet generates a set whose swaps spend ioPercent of base on I/O
func mixedSet(b *testing.B, workers, swaps, ioPercent int, base time.Duration) workload.ScheduleSet {
	b.Helper()
	set, err := workload.Generate(workload.GenerateConfig{
		Workers:        workers,
		Swaps:          swaps,
		IOFraction:     float64(ioPercent) / 100,
		CPUFraction:    float64(100-ioPercent) / 100,
		BaseUnit:       base,
		StdDevFraction: workload.DefaultStdDevFraction,
	}, model(b), rand.New(rand.NewPCG(uint64(ioPercent), 7)))
	if err != nil {
		b.Fatal(err)
	}
	return set
}

// cpuBoundSet has no I/O wait, every burst lasting base
func cpuBoundSet(b *testing.B, workers, swaps int, base time.Duration) workload.ScheduleSet {
	b.Helper()
	size := model(b).JobSize(float64(base))
	return uniformSet(workers, swaps, 0, size)
}

// ioBoundSet only waits
func ioBoundSet(workers, swaps int, wait time.Duration) workload.ScheduleSet {
	return uniformSet(workers, swaps, wait, 0)
}

func uniformSet(workers, swaps int, wait time.Duration, size float64) workload.ScheduleSet {
	set := make(workload.ScheduleSet, workers)
	for w := range set {
		schedule := make(workload.Schedule, swaps)
		for i := range schedule {
			schedule[i] = workload.Swap{IOWait: wait, JobSize: size}
		}
		set[w] = schedule
	}
	return set
}
