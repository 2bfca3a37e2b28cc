package workload

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultBaseUnit       = 20 * time.Millisecond
	DefaultStdDevFraction = 0.5
)

// SizePredictor converts a CPU duration in nanoseconds into a busy-loop job
// size. *calibrate.Model satisfies it.
type SizePredictor interface {
	JobSize(ns float64) float64
}

// GenerateConfig parameterizes Generate.
//
// IOFraction and CPUFraction scale the base unit for the I/O wait and the CPU
// burst of every swap. They do not need to sum to 1.
type GenerateConfig struct {
	Workers     int
	Swaps       int
	IOFraction  float64
	CPUFraction float64

	// BaseUnit is the nominal length of one swap when the mix is 100% of one
	// kind. It must be positive.
	BaseUnit time.Duration

	// StdDevFraction is the standard deviation relative to the mean. Zero
	// makes every swap of a set identical.
	StdDevFraction float64
}

// Validate checks every parameter Generate relies on.
func (c GenerateConfig) Validate() error {
	switch {
	case c.Workers < 0:
		return &InvalidWorkloadParameterError{Param: "worker count", Value: c.Workers}
	case c.Swaps < 0:
		return &InvalidWorkloadParameterError{Param: "swap count", Value: c.Swaps}
	case !inUnitRange(c.IOFraction):
		return &InvalidWorkloadParameterError{Param: "io fraction", Value: c.IOFraction}
	case !inUnitRange(c.CPUFraction):
		return &InvalidWorkloadParameterError{Param: "cpu fraction", Value: c.CPUFraction}
	case c.BaseUnit <= 0:
		return &InvalidWorkloadParameterError{Param: "base unit", Value: c.BaseUnit}
	case c.StdDevFraction < 0 || math.IsNaN(c.StdDevFraction):
		return &InvalidWorkloadParameterError{Param: "stddev fraction", Value: c.StdDevFraction}
	}
	return nil
}

// Generate builds one schedule per worker. Each swap draws an I/O wait from
// Normal(base·io, base·io·sd) and a CPU duration from Normal(base·cpu,
// base·cpu·sd), both floored at zero; the duration becomes a job size
// through predictor.
func Generate(cfg GenerateConfig, predictor SizePredictor, r *rand.Rand) (ScheduleSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if predictor == nil {
		return nil, &InvalidWorkloadParameterError{Param: "size predictor", Value: nil}
	}

	base := float64(cfg.BaseUnit)
	ioWait := Normal{
		Mean:   base * cfg.IOFraction,
		StdDev: base * cfg.IOFraction * cfg.StdDevFraction,
	}
	cpuTime := Normal{
		Mean:   base * cfg.CPUFraction,
		StdDev: base * cfg.CPUFraction * cfg.StdDevFraction,
	}

	set := make(ScheduleSet, cfg.Workers)
	for w := range set {
		schedule := make(Schedule, cfg.Swaps)
		for i := range schedule {
			schedule[i] = Swap{
				IOWait:  time.Duration(ioWait.Sample(r)),
				JobSize: predictor.JobSize(cpuTime.Sample(r)),
			}
		}
		set[w] = schedule
	}
	return set, nil
}

func inUnitRange(f float64) bool {
	return f >= 0 && f <= 1
}
