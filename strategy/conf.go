package strategy

// Option is a functional option for configuring a strategy.
type Option func(*config)

type config struct {
	pin       bool
	suspendGC bool

	onSpawn           func(worker int)
	beforeWorkerStart func(worker int)
	onWorkerEnd       func(worker int, err error)
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithCorePinning pins each thread worker to core (worker mod NumCPU) where
// the platform supports it. Fibers ignore it.
func WithCorePinning() Option {
	return func(cfg *config) {
		cfg.pin = true
	}
}

// WithGCSuspended turns the garbage collector off for the duration of each
// RunAll call.
func WithGCSuspended() Option {
	return func(cfg *config) {
		cfg.suspendGC = true
	}
}

// WithOnSpawn registers a hook called after each worker has been spawned and
// before any worker is released.
func WithOnSpawn(fn func(worker int)) Option {
	return func(cfg *config) {
		cfg.onSpawn = fn
	}
}

// WithBeforeWorkerStart registers a hook called by each worker after the
// gate releases it and before it runs its schedule.
func WithBeforeWorkerStart(fn func(worker int)) Option {
	return func(cfg *config) {
		cfg.beforeWorkerStart = fn
	}
}

// WithOnWorkerEnd registers a hook called by each worker after its schedule
// finished, with the error it ended with.
func WithOnWorkerEnd(fn func(worker int, err error)) Option {
	return func(cfg *config) {
		cfg.onWorkerEnd = fn
	}
}

func (cfg *config) spawned(worker int) {
	if cfg.onSpawn != nil {
		cfg.onSpawn(worker)
	}
}
