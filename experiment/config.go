package experiment

import (
	"math"
	"time"

	"github.com/utkarsh5026/swapbench/workload"
)

// Config holds every knob of a sweep.
type Config struct {
	Workers        int
	Swaps          int
	BaseUnit       time.Duration
	StdDevFraction float64

	Repetitions int
	Trials      int

	// IOFrom, IOTo and IOStep describe the io_percent sweep. IOTo is
	// exclusive.
	IOFrom int
	IOTo   int
	IOStep int

	// Cooldown is the minimum spacing between the starts of two timed runs.
	Cooldown time.Duration

	PinThreads bool
	SuspendGC  bool

	// Seed feeds the workload generator. Zero picks one from the clock.
	Seed uint64

	OutputPath   string
	RawPath      string
	ProgressPath string
}

// DefaultConfig returns the configuration of the reference sweep.
func DefaultConfig() Config {
	return Config{
		Workers:        32,
		Swaps:          16,
		BaseUnit:       workload.DefaultBaseUnit,
		StdDevFraction: workload.DefaultStdDevFraction,
		Repetitions:    5,
		Trials:         10,
		IOFrom:         0,
		IOTo:           10,
		IOStep:         1,
		SuspendGC:      true,
		ProgressPath:   "progress.txt",
	}
}

// Validate rejects configurations the Runner cannot sweep.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return &ConfigError{Field: "workers", Value: c.Workers}
	case c.Swaps < 0:
		return &ConfigError{Field: "swaps", Value: c.Swaps}
	case c.BaseUnit <= 0:
		return &ConfigError{Field: "base unit", Value: c.BaseUnit}
	case c.StdDevFraction < 0 || math.IsNaN(c.StdDevFraction):
		return &ConfigError{Field: "stddev fraction", Value: c.StdDevFraction}
	case c.Repetitions <= 0:
		return &ConfigError{Field: "repetitions", Value: c.Repetitions}
	case c.Trials <= 0:
		return &ConfigError{Field: "trials", Value: c.Trials}
	case c.IOStep <= 0:
		return &ConfigError{Field: "io step", Value: c.IOStep}
	case c.IOFrom < 0 || c.IOFrom > 100:
		return &ConfigError{Field: "io from", Value: c.IOFrom}
	case c.IOTo <= c.IOFrom || c.IOTo > 101:
		return &ConfigError{Field: "io to", Value: c.IOTo}
	case c.Cooldown < 0:
		return &ConfigError{Field: "cooldown", Value: c.Cooldown}
	}
	return nil
}

// Settings lists the io_percent values of one trial in sweep order.
func (c Config) Settings() []int {
	if c.IOStep <= 0 {
		return nil
	}

	settings := make([]int, 0, max(0, (c.IOTo-c.IOFrom+c.IOStep-1)/c.IOStep))
	for io := c.IOFrom; io < c.IOTo; io += c.IOStep {
		settings = append(settings, io)
	}
	return settings
}

// Steps is the number of settings a full sweep visits across all trials.
func (c Config) Steps() int {
	return c.Trials * len(c.Settings())
}

func (c Config) generateConfig(ioPercent int) workload.GenerateConfig {
	return workload.GenerateConfig{
		Workers:        c.Workers,
		Swaps:          c.Swaps,
		IOFraction:     float64(ioPercent) / 100,
		CPUFraction:    float64(100-ioPercent) / 100,
		BaseUnit:       c.BaseUnit,
		StdDevFraction: c.StdDevFraction,
	}
}
