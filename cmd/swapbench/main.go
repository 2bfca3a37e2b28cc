// Command swapbench measures how OS threads and cooperative fibers compare
// as a workload shifts from CPU-bound to I/O-bound.
//
// The summary log goes to stdout (or --output); everything meant for humans
// goes to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/utkarsh5026/swapbench/calibrate"
	"github.com/utkarsh5026/swapbench/experiment"
)

type cliFlags struct {
	logLevel         string
	noTable          bool
	quiet            bool
	calibrationFloor time.Duration
}

func main() {
	if err := run(); err != nil {
		_, _ = experiment.Red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := experiment.DefaultConfig()
	flags := defineFlags(&cfg)
	pflag.Parse()

	logger, err := experiment.NewLogger(flags.logLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("--log: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := io.Writer(os.Stderr)
	if flags.quiet {
		console = io.Discard
	}

	host, err := experiment.CollectHostInfo(ctx)
	if err != nil {
		logger.WithError(err).Warn("Incomplete host information")
	}
	experiment.PrintHeader(console, host, cfg)

	_, _ = experiment.Bold.Fprintln(console, "Calibrating CPU cost...")
	model, err := calibrate.Calibrate(calibrate.WithFloor(flags.calibrationFloor))
	if err != nil {
		return err
	}
	_, _ = experiment.Blue.Fprintf(console, "  α = %.0fns, β = %.4fns/iter over %d samples\n\n",
		model.Alpha, model.Beta, len(model.Samples()))
	logger.WithFields(logrus.Fields{
		"alpha_ns":      model.Alpha,
		"beta_ns":       model.Beta,
		"samples":       len(model.Samples()),
		"size_per_unit": model.JobSize(float64(cfg.BaseUnit)),
	}).Info("Calibrated")

	opts := []experiment.RunnerOption{experiment.WithLogger(logger)}
	if cfg.ProgressPath != "" {
		progress, err := os.Create(cfg.ProgressPath)
		if err != nil {
			return fmt.Errorf("open progress file: %w", err)
		}
		defer progress.Close()
		opts = append(opts, experiment.WithProgress(progress))
	}

	if !flags.quiet {
		opts = append(opts, experiment.WithProgressBar(experiment.NewProgressBar(cfg.Steps(), os.Stderr)))
	}

	runner, err := experiment.NewRunner(cfg, model, opts...)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := writeTo(cfg.OutputPath, os.Stdout, func(w io.Writer) error {
		return experiment.WriteSummary(w, report.Rows)
	}); err != nil {
		return err
	}
	if cfg.RawPath != "" {
		if err := writeTo(cfg.RawPath, nil, func(w io.Writer) error {
			return experiment.WriteRaw(w, report.Timings)
		}); err != nil {
			return err
		}
	}

	if !flags.noTable {
		return experiment.RenderSummary(console, report.Rows)
	}
	return nil
}

func defineFlags(cfg *experiment.Config) *cliFlags {
	flags := &cliFlags{}

	pflag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent workers")
	pflag.IntVar(&cfg.Swaps, "swaps", cfg.Swaps, "I/O-then-CPU swaps per worker")
	pflag.DurationVar(&cfg.BaseUnit, "base-unit", cfg.BaseUnit, "nominal length of one swap")
	pflag.Float64Var(&cfg.StdDevFraction, "stddev", cfg.StdDevFraction, "standard deviation as a fraction of the mean")
	pflag.IntVar(&cfg.Repetitions, "repetitions", cfg.Repetitions, "timed runs per strategy and setting (median kept)")
	pflag.IntVar(&cfg.Trials, "trials", cfg.Trials, "full sweeps averaged together")
	pflag.IntVar(&cfg.IOFrom, "io-from", cfg.IOFrom, "first io percent of the sweep")
	pflag.IntVar(&cfg.IOTo, "io-to", cfg.IOTo, "io percent the sweep stops before")
	pflag.IntVar(&cfg.IOStep, "io-step", cfg.IOStep, "io percent increment")
	pflag.DurationVar(&cfg.Cooldown, "cooldown", cfg.Cooldown, "minimum spacing between timed runs")
	pflag.BoolVar(&cfg.PinThreads, "pin", cfg.PinThreads, "pin thread workers to cores")
	pflag.BoolVar(&cfg.SuspendGC, "suspend-gc", cfg.SuspendGC, "turn the garbage collector off during timed runs")
	pflag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "workload seed (0 = from the clock)")
	pflag.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "summary log path (default stdout)")
	pflag.StringVar(&cfg.RawPath, "raw", cfg.RawPath, "per-run timing log path")
	pflag.StringVar(&cfg.ProgressPath, "progress", cfg.ProgressPath, "progress file path (empty disables it)")

	pflag.DurationVar(&flags.calibrationFloor, "calibration-floor", calibrate.DefaultFloor, "sample duration that ends calibration")
	pflag.StringVar(&flags.logLevel, "log", "warn", "log level (debug, info, warn, error)")
	pflag.BoolVar(&flags.noTable, "no-table", false, "skip the summary table")
	pflag.BoolVarP(&flags.quiet, "quiet", "q", false, "no header, progress bar or table")

	return flags
}

// writeTo hands write the file at path, or fallback when path is empty.
func writeTo(path string, fallback io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(fallback)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
