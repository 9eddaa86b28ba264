package coop

import (
	"context"
	"sync/atomic"
	"time"
)

// delayAware is satisfied by Base (via its unexported dueAt method) and
// lets Scheduler test a Delaying routine's deadline without stepping it,
// per run_one's "Delaying with clock() past wakeMillis" readiness test.
type delayAware interface {
	dueAt(now uint32) bool
}

// finalizable is satisfied by Base and lets Scheduler finalize a routine
// that returned StatusEnding to StatusEnded without a second Step call.
type finalizable interface {
	finalizeEnded()
}

// suspendable is satisfied by Base (via its exported Suspended method) and
// lets Scheduler honor Suspend/Resumed: a suspended routine is skipped on
// every sweep regardless of its own Status, until Resumed is called.
type suspendable interface {
	Suspended() bool
}

// RoutineInfo is a diagnostic snapshot of one registered routine, returned
// by Scheduler.Routines (spec §6: "Introspection: iterate the routine list
// to read name and status").
type RoutineInfo struct {
	Name   string
	Status Status
}

// Scheduler is the process-wide dispatcher (spec §3's "Scheduler state",
// §4.3's run_one). Where the embedded original holds a circular
// intrusively-linked list and a cursor, this hosted reimplementation holds
// routines in an externally owned slice plus a cursor, per §9's Design
// Notes license for hosted platforms; the scheduling semantics are
// unchanged.
//
// A Scheduler is not safe for concurrent use from more than one goroutine —
// the whole point of the cooperative model (§5) is that exactly one
// execution context ever calls Loop or Register at a time. The lifecycle
// guard below catches the mistakes that are cheap to catch: calling Loop
// before Setup, and calling Loop reentrantly from inside a routine's own Step.
type Scheduler struct {
	routines      []Routine
	registered    map[Routine]struct{}
	cursor        int
	clock         Clock
	logger        Logger
	metrics       *Metrics
	recoverPanics bool
	state         atomic.Int32
}

// NewScheduler constructs a Scheduler. See SchedulerOption for
// configuration (clock source, logger, metrics, panic recovery,
// preallocated capacity).
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	cfg := resolveSchedulerOptions(opts)
	s := &Scheduler{
		clock:         cfg.clock,
		logger:        cfg.logger,
		recoverPanics: cfg.recoverPanics,
		registered:    make(map[Routine]struct{}, cfg.capacityHint),
	}
	if cfg.capacityHint > 0 {
		s.routines = make([]Routine, 0, cfg.capacityHint)
	}
	if cfg.metricsEnabled {
		s.metrics = newMetrics()
	}
	return s
}

// Register adds a routine to the scheduler's dispatch list (spec I1: "every
// constructed routine appears exactly once"). Registration is explicit:
// constructing a routine with NewBase does not register it, so the host
// calls Register for each routine it wants dispatched.
func (s *Scheduler) Register(r Routine) error {
	if r == nil {
		return ErrNilRoutine
	}
	if _, ok := s.registered[r]; ok {
		return ErrAlreadyRegistered
	}
	s.registered[r] = struct{}{}
	s.routines = append(s.routines, r)
	s.logger.Log(LogEntry{Level: LevelDebug, Category: "scheduler", Routine: r.Name(), Message: "registered"})
	return nil
}

// Setup performs one-time initialization before the main dispatch loop
// begins (spec §6). It exists for symmetry with Loop and is safe to call
// more than once; only the first call has any effect.
func (s *Scheduler) Setup() error {
	s.state.CompareAndSwap(int32(lifecycleFresh), int32(lifecycleReady))
	return nil
}

// Loop performs exactly one dispatch step (spec §4.3's run_one): it scans
// forward from the cursor for a ready routine, steps the first one found,
// and advances the cursor past it; if none is ready it advances the cursor
// by one (an idle tick). Intended to be called repeatedly from the host's
// main loop.
//
// Loop returns ErrNotSetup if Setup has not yet been called, and
// ErrReentrantLoop if called from within a routine's own Step (which would
// otherwise recurse the scheduler into itself mid-dispatch).
func (s *Scheduler) Loop() error {
	_, err := s.tick()
	return err
}

// Run repeatedly calls Setup (once) then Loop until ctx is canceled,
// sleeping briefly between idle ticks so a hosted process doesn't spin a
// CPU core at 100% polling routines that are all waiting on a delay or
// predicate. An embedded host with its own superloop should call Setup and
// Loop directly instead; Run is the hosted-platform convenience this
// reimplementation adds beyond the bare embedded spec (see SPEC_FULL.md).
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Setup(); err != nil {
		return err
	}
	const idleBackoff = time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		stepped, err := s.tick()
		if err != nil {
			return err
		}
		if stepped {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(idleBackoff):
		}
	}
}

// Metrics returns the scheduler's step-duration metrics, or nil if
// WithMetrics was never enabled.
func (s *Scheduler) Metrics() *Metrics {
	return s.metrics
}

// Routines returns a snapshot of every registered routine's name and
// status, for diagnostics (spec §6).
func (s *Scheduler) Routines() []RoutineInfo {
	out := make([]RoutineInfo, len(s.routines))
	for i, r := range s.routines {
		out[i] = RoutineInfo{Name: r.Name(), Status: r.Status()}
	}
	return out
}

// tick is Loop's implementation; it additionally reports whether a routine
// was actually stepped, which Run uses to decide whether to back off.
func (s *Scheduler) tick() (stepped bool, err error) {
	if !s.state.CompareAndSwap(int32(lifecycleReady), int32(lifecycleRunning)) {
		if lifecycleState(s.state.Load()) == lifecycleRunning {
			return false, ErrReentrantLoop
		}
		return false, ErrNotSetup
	}
	defer s.state.Store(int32(lifecycleReady))

	n := len(s.routines)
	if n == 0 {
		return false, nil
	}

	now := s.clock.NowMillis()
	for i := 0; i < n; i++ {
		idx := (s.cursor + i) % n
		r := s.routines[idx]
		if !s.readyToStep(r, now) {
			continue
		}
		s.stepRoutine(r)
		s.cursor = (idx + 1) % n
		return true, nil
	}

	// No routine is ready: idle tick (spec §4.3 step 3).
	s.cursor = (s.cursor + 1) % n
	return false, nil
}

// readyToStep implements run_one's readiness test: Yielding, Awaiting, and
// Ending routines are always ready; Delaying routines are ready only once
// their deadline has elapsed; Ended (and any unrecognized status, per the
// implicit-END contract) is never ready. A routine that has been Suspended
// is never ready, independent of its Status, until Resumed is called.
func (s *Scheduler) readyToStep(r Routine, now uint32) bool {
	if sa, ok := r.(suspendable); ok && sa.Suspended() {
		return false
	}
	status := r.Status()
	if !status.ready() {
		return false
	}
	if status != StatusDelaying {
		return true
	}
	da, ok := r.(delayAware)
	if !ok {
		// A Routine that doesn't embed Base can't report its own deadline;
		// treat it as always due rather than starving it forever.
		return true
	}
	return da.dueAt(now)
}

// stepRoutine steps one routine, isolating a panic into a *PanicError if
// panic recovery is enabled, recording metrics, finalizing Ending to Ended,
// and logging the outcome.
func (s *Scheduler) stepRoutine(r Routine) {
	start := s.now()
	status, panicErr := s.safeStep(r)
	if panicErr != nil {
		s.logger.Log(LogEntry{Level: LevelError, Category: "routine", Routine: r.Name(), Message: "routine panicked", Err: panicErr})
		return
	}
	if s.metrics != nil {
		s.metrics.record(r.Name(), s.since(start))
	}
	if status == StatusEnding {
		if f, ok := r.(finalizable); ok {
			f.finalizeEnded()
		}
		s.logger.Log(LogEntry{Level: LevelInfo, Category: "routine", Routine: r.Name(), Message: "ended"})
	}
}

func (s *Scheduler) safeStep(r Routine) (status Status, err error) {
	if s.recoverPanics {
		defer func() {
			if rec := recover(); rec != nil {
				err = &PanicError{Routine: r.Name(), Value: rec}
			}
		}()
	}
	return r.Step(), nil
}

// now and since are indirections over the wall clock used only for metrics
// timing (distinct from the routine-facing Clock, which is millisecond
// resolution and may wrap); they exist so metrics overhead is a single
// branch when WithMetrics is off.
func (s *Scheduler) now() time.Time {
	if s.metrics == nil {
		return time.Time{}
	}
	return time.Now()
}

func (s *Scheduler) since(start time.Time) time.Duration {
	if s.metrics == nil {
		return 0
	}
	return time.Since(start)
}
