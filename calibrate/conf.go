package calibrate

import (
	"time"

	"github.com/utkarsh5026/swapbench/internal/cpu"
)

const (
	DefaultStartSize  = 30_000
	DefaultGrowth     = 1.01
	DefaultFloor      = 10 * time.Millisecond
	DefaultMaxSamples = 100_000
)

// BurnFunc runs a job of the given size and reports how long it took.
type BurnFunc func(size int64) time.Duration

// Option is a functional option for configuring calibration.
type Option func(*config)

type config struct {
	startSize  float64
	growth     float64
	floor      time.Duration
	maxSamples int
	burn       BurnFunc
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		startSize:  DefaultStartSize,
		growth:     DefaultGrowth,
		floor:      DefaultFloor,
		maxSamples: DefaultMaxSamples,
		burn:       cpu.Burn,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithStartSize sets the job size of the first sample.
func WithStartSize(size int64) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.startSize = float64(size)
		}
	}
}

// WithGrowth sets the factor the job size is multiplied by after each sample.
// Factors not greater than 1 are ignored since sampling would never end.
func WithGrowth(factor float64) Option {
	return func(cfg *config) {
		if factor > 1 {
			cfg.growth = factor
		}
	}
}

// WithFloor sets the duration a single sample must reach to stop sampling.
func WithFloor(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.floor = d
		}
	}
}

// WithMaxSamples bounds the number of samples taken. Reaching the bound
// without hitting the floor is reported as a CalibrationError.
func WithMaxSamples(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxSamples = n
		}
	}
}

// WithBurner replaces the busy-loop used for measurement.
func WithBurner(fn BurnFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.burn = fn
		}
	}
}
