package coop

// SchedulerOption configures a Scheduler at construction time, grounded in
// eventloop's functional-options pattern (options.go's LoopOption /
// loopOptionImpl).
type SchedulerOption interface {
	apply(*schedulerConfig)
}

type schedulerOptionFunc func(*schedulerConfig)

func (f schedulerOptionFunc) apply(c *schedulerConfig) { f(c) }

type schedulerConfig struct {
	clock          Clock
	logger         Logger
	metricsEnabled bool
	recoverPanics  bool
	capacityHint   int
}

func resolveSchedulerOptions(opts []SchedulerOption) *schedulerConfig {
	cfg := &schedulerConfig{
		recoverPanics: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	if cfg.clock == nil {
		cfg.clock = NewDefaultClock()
	}
	if cfg.logger == nil {
		cfg.logger = NewNoOpLogger()
	}
	return cfg
}

// WithClock overrides the Scheduler's time source. Defaults to
// NewDefaultClock(). Tests typically pass a *FakeClock here.
func WithClock(clock Clock) SchedulerOption {
	return schedulerOptionFunc(func(c *schedulerConfig) {
		c.clock = clock
	})
}

// WithLogger attaches a structured Logger to the Scheduler. Defaults to
// NoOpLogger, so logging costs nothing unless a host opts in.
func WithLogger(logger Logger) SchedulerOption {
	return schedulerOptionFunc(func(c *schedulerConfig) {
		c.logger = logger
	})
}

// WithMetrics enables per-routine step-duration percentile tracking,
// exposed via Scheduler.Metrics. Off by default: sampling a clock on every
// step is wasted cycles on a target that just wants to blink an LED.
func WithMetrics(enabled bool) SchedulerOption {
	return schedulerOptionFunc(func(c *schedulerConfig) {
		c.metricsEnabled = enabled
	})
}

// WithRecoverPanics controls whether Scheduler.Loop recovers a panicking
// routine's Step call, isolating the fault to that one routine (wrapped as
// a *PanicError and reported to the Logger) instead of taking the whole
// scheduler down. Defaults to true; hosts that want a panicking routine to
// crash the process (e.g. so a watchdog reboots the MCU) can disable it.
func WithRecoverPanics(enabled bool) SchedulerOption {
	return schedulerOptionFunc(func(c *schedulerConfig) {
		c.recoverPanics = enabled
	})
}

// WithCapacityHint pre-sizes the Scheduler's routine slice, avoiding
// reallocation when the number of routines to be registered is known up
// front.
func WithCapacityHint(n int) SchedulerOption {
	return schedulerOptionFunc(func(c *schedulerConfig) {
		c.capacityHint = n
	})
}
