package coop

// Label identifies a resume point within a routine's Step method. It plays
// the role the Design Notes describe for a "tagged resume point": rather
// than a program counter or a real return address, it is just the index of
// a case in Step's label-dispatch switch. Labels are scoped to a single
// routine type; define them as a small const block, e.g.:
//
//	const (
//		stepBegin coop.Label = iota
//		stepWaitReady
//	)
type Label int

// LabelStart is the label every routine begins at on its first Step call
// (spec I2: resumePoint is the entry label on first step).
const LabelStart Label = 0

// Routine is the single polymorphic capability the scheduler depends on
// (spec §4.1). Name is used for diagnostics and introspection; Status lets
// the scheduler classify a routine without stepping it; Step runs user code
// forward to the next suspension point or to completion, and returns the
// routine's new status.
type Routine interface {
	// Name returns a stable diagnostic identifier for this routine.
	Name() string
	// Status returns the routine's current status without side effects.
	Status() Status
	// Step advances the routine's body from its current resume point to the
	// next suspension point (or to completion), and returns the resulting
	// status. It must run in bounded time proportional to the user code
	// between two consecutive suspension points, and must not allocate on
	// its steady-state path.
	Step() Status
}

// Base is the embeddable state every Routine needs: name, status, resume
// label, wake deadline, and the suspend/resume flag. Application routine
// types embed Base and implement Step as a label-dispatched state machine
// using Base's control-primitive methods (see control.go and the package
// doc's worked example).
//
// A hosted Go reimplementation holds routines in an externally owned
// ordered sequence (a Scheduler's slice) rather than via an intrusive
// next-pointer in Base itself — the Design Notes explicitly license this
// alternative to the embedded original's static, self-linking list.
type Base struct {
	name      string
	status    Status
	resumeAt  Label
	wakeAt    uint32
	clock     Clock
	suspended bool
}

// NewBase constructs the embeddable routine state. name is used for
// diagnostics (Scheduler.Routines, log output); clock is consulted by Delay
// and Delaying. Every routine starts StatusYielding at LabelStart (spec: "the
// initial state is Yielding so the first step enters the body").
func NewBase(name string, clock Clock) Base {
	return Base{name: name, status: StatusYielding, resumeAt: LabelStart, clock: clock}
}

// Name implements Routine.
func (b *Base) Name() string { return b.name }

// Status implements Routine.
func (b *Base) Status() Status { return b.status }

// ResumeAt returns the label the routine's Step should dispatch to on this
// invocation. A conforming Step begins with `switch b.ResumeAt() { ... }`.
func (b *Base) ResumeAt() Label { return b.resumeAt }

// Resume sets the label the routine will dispatch to on its next Step
// invocation, without changing status. Used to implement LOOP (jumping back
// to an earlier label) and to advance past an AWAIT that fell through within
// the current Step call.
func (b *Base) Resume(to Label) { b.resumeAt = to }

// Suspended reports whether the routine has been suspended by Suspend.
func (b *Base) Suspended() bool { return b.suspended }

// Suspend pauses the routine independent of its own internal status: the
// scheduler will not step it again until Resumed is called, regardless of
// whether it is Yielding, Awaiting, or waiting on a Delay. This is a
// supplement sourced from the AceRoutine library this spec was distilled
// from (see SPEC_FULL.md): the distilled spec.md's Non-goals exclude
// priority inheritance and preemption, not host-initiated pausing. No lock
// is needed: per §5, exactly one execution context ever touches a routine's
// fields.
func (b *Base) Suspend() { b.suspended = true }

// Resumed clears a prior Suspend, making the routine eligible for stepping
// again on the scheduler's next sweep (subject to its own status, e.g. a
// still-pending Delay deadline).
func (b *Base) Resumed() { b.suspended = false }

// dueAt reports whether the deadline armed by the most recent Delay call has
// elapsed as of now. The Scheduler uses this, via the unexported delayAware
// interface in scheduler.go, to implement run_one's "Delaying with clock()
// past wakeMillis" readiness test (spec §4.3) without stepping a routine
// that is still waiting out its delay.
func (b *Base) dueAt(now uint32) bool {
	return due(now, b.wakeAt)
}

// finalizeEnded transitions status from Ending to Ended. Called by the
// Scheduler immediately after observing StatusEnding returned from Step,
// per SPEC_FULL.md's Open Questions resolution: this is zero-cost
// bookkeeping, not a second invocation of the routine's body.
func (b *Base) finalizeEnded() {
	b.status = StatusEnded
}
