package coop

// The methods in this file are the only legal ways for a routine body to
// suspend (spec §4.2). Each expands, at the call site, into exactly the
// three things the spec's compile-time macros would have done: write the
// current resume label into Base, set status, and return control to the
// scheduler. Go has no macro layer, so a conforming routine spells the
// "return" step out explicitly; see the package doc for the full pattern.

// Yield suspends the routine until the scheduler's next sweep reaches it
// again, resuming at label resume. Always suspends unconditionally — this
// is YIELD.
func (b *Base) Yield(resume Label) Status {
	b.resumeAt = resume
	b.status = StatusYielding
	return StatusYielding
}

// Delay suspends the routine for at least ms milliseconds, resuming at
// label resume once the scheduler observes the deadline has passed. This is
// the suspending half of DELAY; pair it with a Delaying check at resume's
// case to guard against spurious resumption (spec: "re-check the deadline
// and re-suspend if not yet elapsed").
func (b *Base) Delay(ms uint32, resume Label) Status {
	b.wakeAt = b.clock.NowMillis() + ms
	b.resumeAt = resume
	b.status = StatusDelaying
	return StatusDelaying
}

// Delaying reports whether the deadline armed by the most recent Delay call
// has NOT yet elapsed. If it hasn't, Delaying re-arms StatusDelaying at
// label here and returns true, meaning the caller should immediately
// `return StatusDelaying`. If the deadline has elapsed, Delaying returns
// false and leaves status untouched, meaning the caller should fall through
// to the code after the delay.
func (b *Base) Delaying(here Label) bool {
	if due(b.clock.NowMillis(), b.wakeAt) {
		return false
	}
	b.resumeAt = here
	b.status = StatusDelaying
	return true
}

// Awaiting is AWAIT's predicate check. Call it with the live condition and
// the label the routine is currently dispatched at. If ready is false,
// Awaiting arms StatusAwaiting at that label and returns true, meaning the
// caller should `return StatusAwaiting` immediately. If ready is true,
// Awaiting returns false and the caller falls through to the code after the
// AWAIT within the very same Step invocation — matching spec's "if true,
// fall through" (P3: AWAIT advances past itself exactly once, in the call
// where the predicate first becomes true, without an extra idle tick).
func (b *Base) Awaiting(ready bool, here Label) bool {
	if ready {
		return false
	}
	b.resumeAt = here
	b.status = StatusAwaiting
	return true
}

// End terminates the routine: spec's END. Sets status to StatusEnding and
// returns it; the scheduler finalizes StatusEnding to the terminal
// StatusEnded immediately after observing this return, without stepping the
// routine's body again (see SPEC_FULL.md's Open Questions resolution). A
// conforming Step's label-dispatch switch should route its default case (or
// an explicit terminal label) through End, so that falling off the end of
// the body without an explicit END is treated as an implicit END per spec §9.
func (b *Base) End() Status {
	b.status = StatusEnding
	return StatusEnding
}
