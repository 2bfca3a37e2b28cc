package experiment

import (
	"bytes"
	"testing"
	"time"
)

func TestWriteSummary(t *testing.T) {
	rows := []Row{
		{IOPercent: 0, ThreadTime: 25_000_000, FiberTime: 640_123_456.5},
		{IOPercent: 1, ThreadTime: 26_500_000.25, FiberTime: 600_000_000},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rows); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	want := "io_percent;thread_time;fiber_time\n" +
		"0.000000;25000000.000000;640123456.500000\n" +
		"1.000000;26500000.250000;600000000.000000\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteSummary() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, nil); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if got := buf.String(); got != "io_percent;thread_time;fiber_time\n" {
		t.Errorf("WriteSummary(nil) = %q", got)
	}
}

func TestWriteRaw(t *testing.T) {
	results := []TimingResult{
		{Strategy: "threads", IOPercent: 2, Elapsed: 1500 * time.Microsecond},
		{Strategy: "fibers", IOPercent: 2, Elapsed: 3 * time.Second},
	}

	var buf bytes.Buffer
	if err := WriteRaw(&buf, results); err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}

	want := "strategy;io_percent;elapsed_ns\n" +
		"threads;2.000000;1500000\n" +
		"fibers;2.000000;3000000000\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteRaw() =\n%s\nwant\n%s", got, want)
	}
}
