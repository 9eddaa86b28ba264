package coop

import "time"

// Clock is the monotonic millisecond counter the runtime reads (spec §6's
// "Clock contract consumed from host"). Implementations must be monotonic
// and are expected to wrap at 2^32 the way a real 32-bit embedded millisecond
// counter does; Scheduler's deadline comparisons are wrap-safe (§4.3).
type Clock interface {
	// NowMillis returns the current time in milliseconds, truncated to
	// uint32 range. Implementations are free to wrap at 2^32; callers must
	// never compare two readings with plain subtraction — use elapsedSince.
	NowMillis() uint32
}

// elapsedSince returns the signed, wrap-safe difference now-then, matching
// spec §4.3's `(int32_t)(clock() - wakeMillis) >= 0` comparison. A 32-bit
// millisecond counter wraps at ~49.7 days; this keeps deadlines reachable
// across that wraparound (P7).
func elapsedSince(now, then uint32) int32 {
	return int32(now - then)
}

// due reports whether a deadline set for `wake` has been reached as of `now`,
// using wrap-safe arithmetic.
func due(now, wake uint32) bool {
	return elapsedSince(now, wake) >= 0
}

// NewDefaultClock returns the best available Clock for the current GOOS: a
// platform-accelerated monotonic clock where one is implemented
// (clock_linux.go, clock_darwin.go, clock_windows.go), or SystemClock
// otherwise (clock_other.go).
func NewDefaultClock() Clock {
	return platformClock()
}

// SystemClock is the portable Clock implementation: milliseconds elapsed
// since the clock was constructed, taken from the Go runtime's monotonic
// time source. Platform builds (clock_linux.go, clock_darwin.go,
// clock_windows.go) offer a lower-overhead alternative that reads the OS
// monotonic counter directly, the way eventloop's poller_linux.go /
// poller_darwin.go / poller_windows.go read OS primitives directly per
// GOOS instead of going through a portable abstraction first.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a SystemClock anchored to the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis implements Clock.
func (c *SystemClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// FakeClock is a test double that never advances on its own. It is exported
// because host applications commonly want deterministic simulation of DELAY
// behavior in their own tests (spec §8's P2/P7 scenarios), not just this
// module's own test suite.
type FakeClock struct {
	millis uint32
}

// NewFakeClock returns a FakeClock starting at the given millisecond value.
func NewFakeClock(start uint32) *FakeClock {
	return &FakeClock{millis: start}
}

// NowMillis implements Clock.
func (c *FakeClock) NowMillis() uint32 {
	return c.millis
}

// Advance moves the fake clock forward by ms milliseconds, wrapping at 2^32
// the same way a real hardware millisecond counter does.
func (c *FakeClock) Advance(ms uint32) {
	c.millis += ms
}

// Set pins the fake clock to an exact value, useful for exercising the
// wraparound boundary directly (P7: DELAY(10) issued at clock = 2^32-5).
func (c *FakeClock) Set(millis uint32) {
	c.millis = millis
}
