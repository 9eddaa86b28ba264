//go:build windows

package coop

import (
	"golang.org/x/sys/windows"
)

// MonotonicClock reads the high-resolution performance counter via
// golang.org/x/sys/windows, mirroring eventloop/poller_windows.go's use of
// the same package for its IOCP calls on this GOOS.
type MonotonicClock struct {
	start int64
	freq  int64
}

// NewMonotonicClock anchors a MonotonicClock to the current instant.
func NewMonotonicClock() (*MonotonicClock, error) {
	var freq int64
	if err := windows.QueryPerformanceFrequency(&freq); err != nil {
		return nil, err
	}
	var start int64
	if err := windows.QueryPerformanceCounter(&start); err != nil {
		return nil, err
	}
	return &MonotonicClock{start: start, freq: freq}, nil
}

// NowMillis implements Clock.
func (c *MonotonicClock) NowMillis() uint32 {
	var now int64
	if err := windows.QueryPerformanceCounter(&now); err != nil {
		return 0
	}
	if c.freq == 0 {
		return 0
	}
	return uint32((now - c.start) * 1000 / c.freq)
}

func platformClock() Clock {
	if c, err := NewMonotonicClock(); err == nil {
		return c
	}
	return NewSystemClock()
}
