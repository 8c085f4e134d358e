// Package progress defines the progress types shared by the calculators,
// the orchestrator and the presentation layers.
package progress

import (
	"math"
	"sync/atomic"
)

// ReportThreshold is the minimum progress delta between two reports emitted
// through a Throttle.
const ReportThreshold = 0.01

// Callback receives normalized progress values from a computation.
// Implementations must be cheap and must not block.
type Callback func(value float64)

// Noop is a Callback that discards progress.
func Noop(float64) {}

// Throttle forwards progress to a Callback only when it has advanced by at
// least ReportThreshold, or reached completion.
type Throttle struct {
	cb   Callback
	last float64
}

// NewThrottle wraps cb. A nil cb yields a throttle that reports nothing.
func NewThrottle(cb Callback) *Throttle {
	if cb == nil {
		cb = Noop
	}
	return &Throttle{cb: cb, last: -1}
}

// Report forwards value if it is far enough from the last reported value.
// Values are clamped to [0, 1].
func (t *Throttle) Report(value float64) {
	value = math.Max(0, math.Min(1, value))
	if value-t.last >= ReportThreshold || (value == 1 && t.last < 1) {
		t.last = value
		t.cb(value)
	}
}

// Done reports completion.
func (t *Throttle) Done() {
	t.Report(1)
}

// Scaled returns a Callback mapping [0, 1] onto [offset, offset+weight] of cb.
// It is used to combine several sub-computations into one progress value.
func Scaled(cb Callback, offset, weight float64) Callback {
	if cb == nil {
		return Noop
	}
	return func(v float64) {
		cb(offset + v*weight)
	}
}

// State tracks the latest progress of a fixed number of jobs. It is safe for
// concurrent use: jobs write their own slot, readers take snapshots.
type State struct {
	values []atomic.Uint64
}

// NewState creates a State for n jobs.
func NewState(n int) *State {
	return &State{values: make([]atomic.Uint64, max(n, 0))}
}

// Len returns the number of tracked jobs.
func (s *State) Len() int { return len(s.values) }

// Set records the progress of a job. Out-of-range indices are ignored.
func (s *State) Set(index int, value float64) {
	if index >= 0 && index < len(s.values) {
		s.values[index].Store(math.Float64bits(value))
	}
}

// Get returns the progress of a job.
func (s *State) Get(index int) float64 {
	if index < 0 || index >= len(s.values) {
		return 0
	}
	return math.Float64frombits(s.values[index].Load())
}

// Snapshot copies the progress of every job.
func (s *State) Snapshot() []float64 {
	out := make([]float64, len(s.values))
	for i := range s.values {
		out[i] = math.Float64frombits(s.values[i].Load())
	}
	return out
}

// Average returns the mean progress across all jobs.
func (s *State) Average() float64 {
	if len(s.values) == 0 {
		return 0
	}
	var total float64
	for i := range s.values {
		total += math.Float64frombits(s.values[i].Load())
	}
	return total / float64(len(s.values))
}
