package coop

import (
	"sync"
	"time"
)

// Metrics tracks per-routine step-duration percentiles and step counts.
// Grounded in eventloop/metrics.go's LatencyMetrics, trimmed down to the one
// thing a cooperative scheduler can afford to measure: how long each
// routine's Step calls take, which is the only latency a round-robin
// scheduler can ever be blamed for (a slow Step call starves every other
// routine until it returns). Attach via WithMetrics(true); record and
// Snapshot are both nil-safe, so a nil *Metrics (the default when
// WithMetrics is never passed) behaves like an always-empty, always-discard
// instance rather than requiring every caller to special-case it.
type Metrics struct {
	mu    sync.Mutex
	steps map[string]*routineMetrics
}

type routineMetrics struct {
	psquare *pSquareMultiQuantile
	count   uint64
}

func newMetrics() *Metrics {
	return &Metrics{steps: make(map[string]*routineMetrics)}
}

func (m *Metrics) record(routine string, d time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rm, ok := m.steps[routine]
	if !ok {
		rm = &routineMetrics{psquare: newPSquareMultiQuantile(0.50, 0.90, 0.99)}
		m.steps[routine] = rm
	}
	rm.count++
	rm.psquare.Update(float64(d))
}

// RoutineMetrics is a snapshot of one routine's observed step durations.
type RoutineMetrics struct {
	Steps uint64
	P50   time.Duration
	P90   time.Duration
	P99   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// Snapshot returns a copy of every routine's current metrics, keyed by
// routine name. Safe to call concurrently with Scheduler.Loop, though a
// cooperative scheduler typically only has one execution context to begin
// with.
func (m *Metrics) Snapshot() map[string]RoutineMetrics {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RoutineMetrics, len(m.steps))
	for name, rm := range m.steps {
		out[name] = RoutineMetrics{
			Steps: rm.count,
			P50:   time.Duration(rm.psquare.Quantile(0)),
			P90:   time.Duration(rm.psquare.Quantile(1)),
			P99:   time.Duration(rm.psquare.Quantile(2)),
			Max:   time.Duration(rm.psquare.Max()),
			Mean:  time.Duration(rm.psquare.Mean()),
		}
	}
	return out
}
