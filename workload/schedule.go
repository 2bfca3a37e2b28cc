package workload

import (
	"math"
	"time"
)

// Swap is one I/O wait followed by one CPU burst.
type Swap struct {
	IOWait  time.Duration
	JobSize float64
}

// Schedule is the ordered list of swaps one worker performs.
type Schedule []Swap

// ScheduleSet holds one schedule per worker. It is shared read-only between
// the strategies compared on the same setting.
type ScheduleSet []Schedule

// Flatten returns the schedule as alternating
// [io_wait_seconds, job_size, io_wait_seconds, job_size, ...] values.
func (s Schedule) Flatten() []float64 {
	flat := make([]float64, 0, 2*len(s))
	for _, sw := range s {
		flat = append(flat, sw.IOWait.Seconds(), sw.JobSize)
	}
	return flat
}

// FromFlat parses the alternating form produced by Flatten. Negative waits
// and sizes are clamped to zero and sizes are floored.
func FromFlat(flat []float64) (Schedule, error) {
	if len(flat)%2 != 0 {
		return nil, &InvalidWorkloadParameterError{Param: "schedule length", Value: len(flat)}
	}

	s := make(Schedule, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		wait, size := flat[i], flat[i+1]
		if math.IsNaN(wait) || math.IsNaN(size) {
			return nil, &InvalidWorkloadParameterError{Param: "schedule entry", Value: i}
		}

		s = append(s, Swap{
			IOWait:  secondsToDuration(wait),
			JobSize: max(math.Floor(size), 0),
		})
	}
	return s, nil
}

// TotalIOWait sums the I/O waits of the schedule.
func (s Schedule) TotalIOWait() time.Duration {
	var total time.Duration
	for _, sw := range s {
		total += sw.IOWait
	}
	return total
}

// TotalJobSize sums the job sizes of the schedule.
func (s Schedule) TotalJobSize() float64 {
	var total float64
	for _, sw := range s {
		total += sw.JobSize
	}
	return total
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(ns))
}
