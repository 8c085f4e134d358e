package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
)

// programRef is shared by every copy of the model so that the orchestrator
// goroutines can reach the running tea.Program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter implements orchestration.ProgressReporter by forwarding every
// tick to the dashboard.
type Reporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*Reporter)(nil)

func (*Reporter) Start(int) {}
func (*Reporter) Stop()     {}

// Tick sends the snapshot as a ProgressMsg.
func (r *Reporter) Tick(s orchestration.ProgressSnapshot) {
	r.ref.Send(ProgressMsg(s))
}

// Presenter implements orchestration.ResultPresenter by sending the results
// to the dashboard instead of writing them.
type Presenter struct {
	ref *programRef
}

var _ orchestration.ResultPresenter = (*Presenter)(nil)

func (p *Presenter) PresentResults(results []orchestration.JobResult, _ io.Writer) {
	p.ref.Send(ResultsMsg{Results: results})
}

func (p *Presenter) PresentResult(result orchestration.JobResult, elapsed time.Duration, _ io.Writer) {
	p.ref.Send(FinalResultMsg{Result: result, Elapsed: elapsed})
}

// HandleError sends an ErrorMsg and returns the exit code for err.
func (p *Presenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	p.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}

// Poller implements orchestration.CancelPoller for the dashboard's cancel
// key.
type Poller struct {
	requested atomic.Bool
}

var _ orchestration.CancelPoller = (*Poller)(nil)

// Request marks the run for cancellation.
func (p *Poller) Request() { p.requested.Store(true) }

func (p *Poller) Poll() bool { return p.requested.Load() }
