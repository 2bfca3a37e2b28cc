package experiment

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

// PrintHeader prints the banner, the host description and the sweep
// configuration.
func PrintHeader(w io.Writer, host HostInfo, cfg Config) {
	colorFprintln(w, Bold, "╔════════════════════════════════════════════════════════════╗")
	colorFprintf(w, Bold, "║       %-52s ║\n", "THREADS vs FIBERS: I/O-CPU SWEEP")
	colorFprintln(w, Bold, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	cpuModel := host.CPUModel
	if cpuModel == "" {
		cpuModel = "unknown"
	}
	fmt.Fprintf(w, "  Host:        %s/%s, %s\n", host.OS, host.Arch, host.GoVersion)
	fmt.Fprintf(w, "  CPU:         %s (%d physical, %d logical, GOMAXPROCS %d)\n",
		cpuModel, host.PhysicalCores, host.LogicalCores, host.GOMAXPROCS)
	fmt.Fprintf(w, "  Load:        %.2f %.2f %.2f\n", host.Load1, host.Load5, host.Load15)
	fmt.Fprintf(w, "  Workers:     %d x %d swaps\n", cfg.Workers, cfg.Swaps)
	fmt.Fprintf(w, "  Base unit:   %v (stddev %.0f%%)\n", cfg.BaseUnit, cfg.StdDevFraction*100)
	fmt.Fprintf(w, "  Sweep:       io %d..%d%% step %d, %d trials x %d repetitions\n",
		cfg.IOFrom, cfg.IOTo-1, cfg.IOStep, cfg.Trials, cfg.Repetitions)
	if cfg.PinThreads {
		colorFprintln(w, Yellow, "  Thread workers pinned to cores")
	}
	fmt.Fprintln(w)
}

// RenderSummary prints the cross-trial rows as a table.
func RenderSummary(w io.Writer, rows []Row) error {
	fmt.Fprintln(w)
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
	colorFprintln(w, Bold, "RESULTS (mean of per-trial medians)")
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("IO %", "Threads", "± Threads", "Fibers", "± Fibers", "Fibers/Threads", "Faster")

	for _, r := range rows {
		faster := "threads"
		if r.FiberTime < r.ThreadTime {
			faster = "fibers"
		}
		_ = table.Append(
			fmt.Sprintf("%.0f", r.IOPercent),
			formatNanos(r.ThreadTime),
			formatNanos(r.ThreadStdDev),
			formatNanos(r.FiberTime),
			formatNanos(r.FiberStdDev),
			fmt.Sprintf("%.2fx", r.Ratio()),
			faster,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	fmt.Fprintln(w)
	colorFprintf(w, Green, "✅ Swept %d settings\n", len(rows))
	return nil
}

// NewProgressBar returns a bar counting swept settings.
func NewProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Sweeping"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}

// formatNanos formats a nanosecond count in the most appropriate unit.
func formatNanos(ns float64) string {
	d := time.Duration(ns)
	switch {
	case d == 0:
		return "0"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func colorFprintln(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorFprintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}
