package coop

// Status is the result of stepping a Routine, and the scheduler's view of
// its readiness. See spec §4.1.
type Status int

const (
	// StatusYielding means the routine is ready immediately; it will be
	// stepped again on the scheduler's next sweep that reaches it.
	StatusYielding Status = iota
	// StatusDelaying means the routine is not ready until the clock reaches
	// its wake deadline.
	StatusDelaying
	// StatusAwaiting means the routine is ready, but its Step method polls a
	// user predicate on every invocation.
	StatusAwaiting
	// StatusEnding means the routine called End and is about to terminate.
	// It is a transient value: the scheduler finalizes it to StatusEnded
	// immediately after observing it, without stepping the routine again
	// (see SPEC_FULL.md's Open Questions).
	StatusEnding
	// StatusEnded is terminal: the routine is permanently skipped.
	StatusEnded
)

// String renders the status the way diagnostic output (Scheduler.Routines,
// the default Logger) expects to print it.
func (s Status) String() string {
	switch s {
	case StatusYielding:
		return "Yielding"
	case StatusDelaying:
		return "Delaying"
	case StatusAwaiting:
		return "Awaiting"
	case StatusEnding:
		return "Ending"
	case StatusEnded:
		return "Ended"
	default:
		// Falling off a routine's label-dispatch switch without hitting a
		// recognized case is documented (spec §9, Open Question) as an
		// implicit END: any unrecognized status is terminal.
		return "Ended"
	}
}

// ready reports whether a routine in this status is eligible to be stepped
// on a given tick, independent of the delay-deadline check the scheduler
// does for StatusDelaying. Unrecognized values are never ready, per the
// implicit-END contract.
func (s Status) ready() bool {
	switch s {
	case StatusYielding, StatusDelaying, StatusAwaiting, StatusEnding:
		return true
	default:
		return false
	}
}

// lifecycleState is a small atomic state machine guarding Scheduler's own
// Setup/Loop/Run entry points against reentrant or out-of-order misuse.
// Adapted from the cache-line-padded CAS pattern the teacher uses for its
// (much hotter, multi-goroutine) loop state machine; here there is only ever
// one caller at a time by contract (§5), so the padding is dropped and the
// type exists purely for defensive, cheap misuse detection rather than
// cross-core contention avoidance.
type lifecycleState int32

const (
	lifecycleFresh lifecycleState = iota
	lifecycleReady
	lifecycleRunning
)
