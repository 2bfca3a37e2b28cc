package workload

import (
	"fmt"
	"math"
	"time"

	"github.com/utkarsh5026/swapbench/internal/cpu"
)

// SleepFunc waits for d. It decides what is suspended while waiting: the OS
// thread, or only the calling cooperative task.
type SleepFunc func(d time.Duration) error

// Perform runs every swap in order: sleep for the I/O wait, then count up to
// the job size. The count holds the caller's execution context for its whole
// duration.
func (s Schedule) Perform(sleep SleepFunc) error {
	for i, sw := range s {
		n, err := iterations(sw.JobSize)
		if err != nil {
			return fmt.Errorf("swap %d: %w", i, err)
		}

		if err := sleep(sw.IOWait); err != nil {
			return fmt.Errorf("swap %d: %w", i, err)
		}
		cpu.CountTo(n)
	}
	return nil
}

// iterations converts a job size into a loop bound.
func iterations(size float64) (int64, error) {
	switch {
	case math.IsNaN(size), math.IsInf(size, 0), size >= math.MaxInt64:
		return 0, fmt.Errorf("%w: %v", ErrJobSizeOverflow, size)
	case size <= 0:
		return 0, nil
	default:
		return int64(size), nil
	}
}
