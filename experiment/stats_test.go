package experiment

import (
	"math"
	"testing"
	"time"
)

func timings(ms ...int) []TimingResult {
	out := make([]TimingResult, len(ms))
	for i, m := range ms {
		out[i] = TimingResult{Strategy: "threads", Elapsed: time.Duration(m) * time.Millisecond}
	}
	return out
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		results []TimingResult
		want    time.Duration
	}{
		{"empty", nil, 0},
		{"single", timings(7), 7 * time.Millisecond},
		{"odd", timings(50, 10, 30, 20, 40), 30 * time.Millisecond},
		{"even takes upper", timings(40, 10, 30, 20), 30 * time.Millisecond},
		{"outlier ignored", timings(10, 11, 12, 13, 5000), 12 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.results); got != tt.want {
				t.Errorf("Median() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian_LeavesInputOrder(t *testing.T) {
	results := timings(3, 1, 2)
	Median(results)

	if results[0].Elapsed != 3*time.Millisecond {
		t.Error("Median() reordered its input")
	}
}

func TestSummarize(t *testing.T) {
	settings := []SettingResult{
		{Trial: 0, IOPercent: 0, ThreadTime: 100, FiberTime: 1000},
		{Trial: 0, IOPercent: 5, ThreadTime: 200, FiberTime: 600},
		{Trial: 1, IOPercent: 0, ThreadTime: 300, FiberTime: 1400},
		{Trial: 1, IOPercent: 5, ThreadTime: 200, FiberTime: 400},
	}

	rows := Summarize(settings)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.IOPercent != 0 || first.Trials != 2 {
		t.Errorf("rows[0] = %+v, want io 0 over 2 trials", first)
	}
	if first.ThreadTime != 200 || first.FiberTime != 1200 {
		t.Errorf("rows[0] means = %v/%v, want 200/1200", first.ThreadTime, first.FiberTime)
	}
	if math.Abs(first.ThreadStdDev-math.Sqrt(20000)) > 1e-9 {
		t.Errorf("rows[0] thread stddev = %v, want %v", first.ThreadStdDev, math.Sqrt(20000))
	}
	if first.Ratio() != 6 {
		t.Errorf("rows[0] ratio = %v, want 6", first.Ratio())
	}

	second := rows[1]
	if second.IOPercent != 5 || second.ThreadStdDev != 0 {
		t.Errorf("rows[1] = %+v, want io 5 with zero thread stddev", second)
	}
}

func TestSummarize_SingleTrial(t *testing.T) {
	rows := Summarize([]SettingResult{{IOPercent: 3, ThreadTime: 10, FiberTime: 20}})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].ThreadStdDev != 0 || rows[0].FiberStdDev != 0 {
		t.Errorf("single trial stddev = %v/%v, want 0", rows[0].ThreadStdDev, rows[0].FiberStdDev)
	}
}

func TestRow_RatioZeroThreads(t *testing.T) {
	if got := (Row{FiberTime: 5}).Ratio(); got != 0 {
		t.Errorf("Ratio() = %v, want 0", got)
	}
}
