package calibrate

import (
	"math"
	"time"

	"github.com/utkarsh5026/swapbench/internal/cpu"
	"gonum.org/v1/gonum/stat"
)

// Sample is one measured busy-loop.
type Sample struct {
	Size    int64
	Elapsed time.Duration
}

// Model predicts the wall-clock nanoseconds of a busy-loop from its size:
// duration = Alpha + Beta·size. Beta is always positive.
type Model struct {
	Alpha   float64
	Beta    float64
	samples []Sample
}

// Calibrate gathers samples on this host and fits a Model to them.
func Calibrate(opts ...Option) (*Model, error) {
	samples, err := Gather(opts...)
	if err != nil {
		return nil, err
	}
	return Fit(samples)
}

// Gather runs busy-loops of growing size until the latest one takes at least
// the configured floor, and returns every sample taken.
func Gather(opts ...Option) ([]Sample, error) {
	cfg := newConfig(opts...)

	unlock := cpu.LockThread(0, false)
	defer unlock()

	samples := make([]Sample, 0, 256)
	size := cfg.startSize
	var elapsed time.Duration

	for elapsed < cfg.floor {
		if len(samples) == cfg.maxSamples {
			return samples, &CalibrationError{
				Reason:  "sample limit reached before any sample took " + cfg.floor.String(),
				Samples: len(samples),
			}
		}

		n := int64(size)
		cpu.WithoutGC(func() {
			elapsed = cfg.burn(n)
		})

		samples = append(samples, Sample{Size: n, Elapsed: elapsed})
		size *= cfg.growth
	}

	return samples, nil
}

// Fit computes the least squares line through samples.
func Fit(samples []Sample) (*Model, error) {
	n := len(samples)
	if n < 2 {
		return nil, &CalibrationError{Reason: "need at least 2 samples", Samples: n}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		xs[i] = float64(s.Size)
		ys[i] = float64(s.Elapsed)
	}

	if stat.Variance(xs, nil) == 0 {
		return nil, &CalibrationError{Reason: "all samples have the same size", Samples: n}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) || beta <= 0 {
		return nil, &CalibrationError{Reason: "duration does not grow with size", Samples: n}
	}

	return &Model{
		Alpha:   alpha,
		Beta:    beta,
		samples: append([]Sample(nil), samples...),
	}, nil
}

// SizeForDuration returns the job size predicted to take ns nanoseconds.
// Durations below the intercept give negative sizes.
func (m *Model) SizeForDuration(ns float64) float64 {
	return (ns - m.Alpha) / m.Beta
}

// DurationForSize returns the predicted nanoseconds of a job of the given size.
func (m *Model) DurationForSize(size float64) float64 {
	return m.Alpha + m.Beta*size
}

// JobSize is SizeForDuration floored to a whole iteration count and clamped
// at zero, ready to hand to a busy-loop.
func (m *Model) JobSize(ns float64) float64 {
	size := math.Floor(m.SizeForDuration(ns))
	if size < 0 || math.IsNaN(size) {
		return 0
	}
	return size
}

// Samples returns a copy of the samples the model was fit from.
func (m *Model) Samples() []Sample {
	return append([]Sample(nil), m.samples...)
}
