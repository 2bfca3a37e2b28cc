package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var (
	summaryHeader = []string{"io_percent", "thread_time", "fiber_time"}
	rawHeader     = []string{"strategy", "io_percent", "elapsed_ns"}
)

func newLogWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return cw
}

// WriteSummary writes one line per row: io percent, mean thread time and
// mean fiber time, the times in nanoseconds.
func WriteSummary(w io.Writer, rows []Row) error {
	cw := newLogWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for _, r := range rows {
		record := []string{formatFloat(r.IOPercent), formatFloat(r.ThreadTime), formatFloat(r.FiberTime)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRaw writes every timed run.
func WriteRaw(w io.Writer, timings []TimingResult) error {
	cw := newLogWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return fmt.Errorf("write raw header: %w", err)
	}

	for _, t := range timings {
		record := []string{t.Strategy, formatFloat(t.IOPercent), strconv.FormatInt(t.Elapsed.Nanoseconds(), 10)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write raw row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatFloat matches %f.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
