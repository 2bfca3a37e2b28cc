package experiment

import (
	"time"

	"github.com/fatih/color"
)

// TimingResult is one timed RunAll call.
type TimingResult struct {
	Strategy  string
	IOPercent float64
	Elapsed   time.Duration
}

// SettingResult holds the median time of each strategy for one io_percent
// within one trial.
type SettingResult struct {
	Trial      int
	IOPercent  float64
	ThreadTime time.Duration
	FiberTime  time.Duration
}

// Row is the cross-trial summary of one io_percent. Times are in
// nanoseconds.
type Row struct {
	IOPercent    float64
	ThreadTime   float64
	FiberTime    float64
	ThreadStdDev float64
	FiberStdDev  float64
	Trials       int
}

// Ratio reports how many times longer fibers took than threads.
func (r Row) Ratio() float64 {
	if r.ThreadTime == 0 {
		return 0
	}
	return r.FiberTime / r.ThreadTime
}

// Report is everything a sweep produced.
type Report struct {
	Seed     uint64
	Settings []SettingResult
	Timings  []TimingResult
	Rows     []Row
}

var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
)
