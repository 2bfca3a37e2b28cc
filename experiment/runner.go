package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/utkarsh5026/swapbench/strategy"
	"github.com/utkarsh5026/swapbench/workload"
	"golang.org/x/time/rate"
)

// Runner drives a full sweep.
type Runner struct {
	cfg       Config
	predictor workload.SizePredictor
	threads   strategy.Strategy
	fibers    strategy.Strategy

	progress io.Writer
	bar      *progressbar.ProgressBar
	log      logrus.FieldLogger
	limiter  *rate.Limiter
	seed     uint64
	rng      *rand.Rand
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithProgress sets where the progress lines are written.
func WithProgress(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithProgressBar advances bar once per swept setting.
func WithProgressBar(bar *progressbar.ProgressBar) RunnerOption {
	return func(r *Runner) {
		r.bar = bar
	}
}

// WithLogger sets the diagnostic logger. The default is logrus's standard
// logger.
func WithLogger(log logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// WithStrategies replaces the strategies built from the Config.
func WithStrategies(threads, fibers strategy.Strategy) RunnerOption {
	return func(r *Runner) {
		r.threads = threads
		r.fibers = fibers
	}
}

// NewRunner validates cfg and prepares a sweep that sizes CPU bursts with
// predictor.
func NewRunner(cfg Config, predictor workload.SizePredictor, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if predictor == nil {
		return nil, &ConfigError{Field: "size predictor", Value: nil}
	}

	var strategyOpts []strategy.Option
	if cfg.PinThreads {
		strategyOpts = append(strategyOpts, strategy.WithCorePinning())
	}
	if cfg.SuspendGC {
		strategyOpts = append(strategyOpts, strategy.WithGCSuspended())
	}

	r := &Runner{
		cfg:       cfg,
		predictor: predictor,
		threads:   strategy.NewThreads(strategyOpts...),
		fibers:    strategy.NewFibers(strategyOpts...),
		progress:  io.Discard,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.seed = cfg.Seed
	if r.seed == 0 {
		r.seed = uint64(time.Now().UnixNano())
	}
	r.rng = rand.New(rand.NewPCG(r.seed, r.seed>>1|1))

	if cfg.Cooldown > 0 {
		r.limiter = rate.NewLimiter(rate.Every(cfg.Cooldown), 1)
	}
	return r, nil
}

// Run performs every trial of the sweep and summarizes it.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Seed: r.seed}
	settings := r.cfg.Settings()

	r.log.WithFields(logrus.Fields{
		"trials":   r.cfg.Trials,
		"settings": len(settings),
		"seed":     r.seed,
	}).Info("Starting sweep")

	for trial := range r.cfg.Trials {
		r.progressf("%d/%d\n", trial, r.cfg.Trials)

		for _, ioPercent := range settings {
			r.progressf("\t%d/100\n", ioPercent)
			if r.bar != nil {
				r.bar.Describe(fmt.Sprintf("Trial %d/%d, io %d%%", trial+1, r.cfg.Trials, ioPercent))
			}

			result, timings, err := r.runSetting(ctx, trial, ioPercent)
			if err != nil {
				return nil, fmt.Errorf("trial %d, io %d%%: %w", trial, ioPercent, err)
			}
			report.Settings = append(report.Settings, result)
			report.Timings = append(report.Timings, timings...)

			if r.bar != nil {
				_ = r.bar.Add(1)
			}
		}
	}

	if r.bar != nil {
		_ = r.bar.Finish()
	}

	report.Rows = Summarize(report.Settings)
	r.log.WithField("rows", len(report.Rows)).Info("Sweep finished")
	return report, nil
}

// runSetting generates one schedule set and times both strategies over it.
func (r *Runner) runSetting(ctx context.Context, trial, ioPercent int) (SettingResult, []TimingResult, error) {
	set, err := workload.Generate(r.cfg.generateConfig(ioPercent), r.predictor, r.rng)
	if err != nil {
		return SettingResult{}, nil, err
	}

	r.logSet(ioPercent, set)

	threadTimes, err := r.repeat(ctx, r.threads, ioPercent, set)
	if err != nil {
		return SettingResult{}, nil, err
	}
	fiberTimes, err := r.repeat(ctx, r.fibers, ioPercent, set)
	if err != nil {
		return SettingResult{}, nil, err
	}

	result := SettingResult{
		Trial:      trial,
		IOPercent:  float64(ioPercent),
		ThreadTime: Median(threadTimes),
		FiberTime:  Median(fiberTimes),
	}

	r.log.WithFields(logrus.Fields{
		"trial":   trial,
		"io":      ioPercent,
		"threads": result.ThreadTime,
		"fibers":  result.FiberTime,
	}).Debug("Setting done")

	return result, append(threadTimes, fiberTimes...), nil
}

// logSet records the shape of a freshly generated set; the first schedule is
// logged in its flat form.
func (r *Runner) logSet(ioPercent int, set workload.ScheduleSet) {
	var wait time.Duration
	var size float64
	for _, schedule := range set {
		wait += schedule.TotalIOWait()
		size += schedule.TotalJobSize()
	}

	fields := logrus.Fields{
		"io":             ioPercent,
		"workers":        len(set),
		"io_wait_total":  wait,
		"job_size_total": size,
	}
	if len(set) > 0 {
		fields["first_schedule"] = set[0].Flatten()
	}
	r.log.WithFields(fields).Debug("Generated schedule set")
}

// repeat times s Repetitions times over set.
func (r *Runner) repeat(ctx context.Context, s strategy.Strategy, ioPercent int, set workload.ScheduleSet) ([]TimingResult, error) {
	results := make([]TimingResult, 0, r.cfg.Repetitions)
	for range r.cfg.Repetitions {
		if err := r.cooldown(ctx); err != nil {
			return nil, err
		}

		elapsed, err := strategy.Time(ctx, s, set)
		if err != nil {
			return nil, err
		}
		results = append(results, TimingResult{Strategy: s.Name(), IOPercent: float64(ioPercent), Elapsed: elapsed})
	}
	return results, nil
}

// cooldown collects garbage left by the previous run and waits until the
// next run may start.
func (r *Runner) cooldown(ctx context.Context) error {
	runtime.GC()
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

func (r *Runner) progressf(format string, a ...any) {
	if _, err := fmt.Fprintf(r.progress, format, a...); err != nil {
		r.log.WithError(err).Warn("Cannot write progress")
	}
}
