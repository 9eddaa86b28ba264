//go:build darwin

package coop

import (
	"golang.org/x/sys/unix"
)

// MonotonicClock reads CLOCK_MONOTONIC via golang.org/x/sys/unix, the same
// syscall package eventloop/poller_darwin.go uses for its kqueue calls on
// this GOOS.
type MonotonicClock struct {
	startSec  int64
	startNsec int64
}

// NewMonotonicClock anchors a MonotonicClock to the current instant.
func NewMonotonicClock() (*MonotonicClock, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return nil, err
	}
	return &MonotonicClock{startSec: int64(ts.Sec), startNsec: int64(ts.Nsec)}, nil
}

// NowMillis implements Clock.
func (c *MonotonicClock) NowMillis() uint32 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	elapsedSec := int64(ts.Sec) - c.startSec
	elapsedNsec := int64(ts.Nsec) - c.startNsec
	return uint32(elapsedSec*1000 + elapsedNsec/1_000_000)
}

func platformClock() Clock {
	if c, err := NewMonotonicClock(); err == nil {
		return c
	}
	return NewSystemClock()
}
