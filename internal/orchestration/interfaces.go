//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"time"
)

// ProgressSnapshot is handed to the ProgressReporter on every supervisor
// tick.
type ProgressSnapshot struct {
	// Jobs holds the progress (0..1) of every job in submission order.
	Jobs []float64
	// Average is the mean of Jobs.
	Average float64
	// Completed counts jobs that returned successfully.
	Completed int
	// Elapsed is the wall time since the run started.
	Elapsed time.Duration
	// ETA is the smoothed remaining-time estimate, 0 when unknown.
	ETA time.Duration
}

// ProgressReporter renders run progress. The orchestrator calls Start once,
// Tick from its supervisor goroutine at the configured interval, and Stop
// once before RunJobs returns. Implementations must not block for long.
type ProgressReporter interface {
	Start(jobs int)
	Tick(snapshot ProgressSnapshot)
	Stop()
}

// NullProgressReporter discards progress. Useful for quiet mode or testing.
type NullProgressReporter struct{}

func (NullProgressReporter) Start(int)             {}
func (NullProgressReporter) Tick(ProgressSnapshot) {}
func (NullProgressReporter) Stop()                 {}

// CancelPoller is asked on every supervisor tick whether the user requested
// cancellation. It must not block.
type CancelPoller interface {
	Poll() bool
}

// CancelPollerFunc adapts a function to CancelPoller.
type CancelPollerFunc func() bool

// Poll calls f.
func (f CancelPollerFunc) Poll() bool { return f() }

// NeverCancel is a CancelPoller that never fires.
var NeverCancel CancelPoller = CancelPollerFunc(func() bool { return false })

// ResultPresenter renders the results of a finished run.
type ResultPresenter interface {
	// PresentResults displays one summary line per job.
	PresentResults(results []JobResult, out io.Writer)
	// PresentResult displays the digits shared by every job.
	PresentResult(result JobResult, elapsed time.Duration, out io.Writer)
	// HandleError reports err and returns the process exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
