package experiment

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Median returns the upper median of the elapsed times: the element at
// index n/2 once sorted. It returns 0 for no results.
func Median(results []TimingResult) time.Duration {
	if len(results) == 0 {
		return 0
	}

	times := make([]time.Duration, len(results))
	for i, r := range results {
		times[i] = r.Elapsed
	}
	slices.Sort(times)

	return times[len(times)/2]
}

// Summarize averages the per-trial medians of every io_percent. Rows keep
// the order in which each io_percent first appears.
func Summarize(settings []SettingResult) []Row {
	var order []float64
	threads := make(map[float64][]float64)
	fibers := make(map[float64][]float64)

	for _, s := range settings {
		if _, seen := threads[s.IOPercent]; !seen {
			order = append(order, s.IOPercent)
		}
		threads[s.IOPercent] = append(threads[s.IOPercent], float64(s.ThreadTime))
		fibers[s.IOPercent] = append(fibers[s.IOPercent], float64(s.FiberTime))
	}

	rows := make([]Row, 0, len(order))
	for _, io := range order {
		tMean, tStd := meanStdDev(threads[io])
		fMean, fStd := meanStdDev(fibers[io])
		rows = append(rows, Row{
			IOPercent:    io,
			ThreadTime:   tMean,
			FiberTime:    fMean,
			ThreadStdDev: tStd,
			FiberStdDev:  fStd,
			Trials:       len(threads[io]),
		})
	}
	return rows
}

// meanStdDev is stat.MeanStdDev with a zero deviation for a single value.
func meanStdDev(xs []float64) (mean, std float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	return stat.MeanStdDev(xs, nil)
}
