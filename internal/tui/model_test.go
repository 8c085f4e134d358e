package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/pi"
)

func newTestModel(t *testing.T, jobs int) (Model, *Poller) {
	t.Helper()
	poller := &Poller{}
	m := NewModel(Session{
		Spec:    orchestration.JobSpec{Count: jobs, Digits: 50, Mode: orchestration.Parallel},
		Calc:    pi.FixedPointCalculator{},
		Version: "v1.0.0",
	}, poller)
	return update(m, tea.WindowSizeMsg{Width: 120, Height: 40}), poller
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_InitialView(t *testing.T) {
	t.Parallel()
	m := NewModel(Session{Spec: orchestration.JobSpec{Count: 1}}, &Poller{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q", got)
	}

	m, _ = newTestModel(t, 3)
	view := m.View()
	for _, want := range []string{"picalc v1.0.0", "3 jobs x 50 digits", "Machin", "Job  1", "Job  3", "Running...", "cancel", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_Progress(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 2)
	m = update(m, ProgressMsg{Jobs: []float64{0.5, 0.25}, Average: 0.375, ETA: 4 * time.Second})
	view := m.View()
	for _, want := range []string{" 50.0%", " 25.0%", "37.5%", "ETA:"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_CancelKey(t *testing.T) {
	t.Parallel()
	m, poller := newTestModel(t, 1)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if !poller.Poll() {
		t.Error("cancel key should fire the poller")
	}
	if !strings.Contains(m.View(), "Cancelling") {
		t.Error("status should show the pending cancellation")
	}
}

func TestModel_QuitKey(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 1)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q: expected a quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected tea.QuitMsg", k.String())
		}
	}
}

func TestModel_Success(t *testing.T) {
	t.Parallel()
	m, poller := newTestModel(t, 2)
	results := []orchestration.JobResult{
		{Index: 0, Digits: "3.14159", Duration: time.Second},
		{Index: 1, Digits: "3.14159", Duration: 2 * time.Second},
	}
	m = update(m, ResultsMsg{Results: results})
	m = update(m, FinalResultMsg{Result: results[0], Elapsed: 2 * time.Second})
	m = update(m, RunDoneMsg{ExitCode: apperrors.ExitSuccess})

	view := m.View()
	for _, want := range []string{"done", "All results are identical", "pi = 3.14159"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("ExitCode() = %d", m.ExitCode())
	}

	// Cancel after the end is ignored, and ticks stop.
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if poller.Poll() {
		t.Error("cancel after completion should be ignored")
	}
	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once the run is done")
	}
}

func TestModel_Failure(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 2)
	m = update(m, ResultsMsg{Results: []orchestration.JobResult{
		{Index: 0, Digits: "3.1"},
		{Index: 1, Err: errors.New("boom")},
	}})
	m = update(m, ErrorMsg{Err: apperrors.CalculationError{Job: 1, Cause: errors.New("boom")}})
	m = update(m, RunDoneMsg{ExitCode: apperrors.ExitErrorGeneric})

	view := m.View()
	for _, want := range []string{"failed: boom", "Calculation failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_Cancelled(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 1)
	m = update(m, ErrorMsg{Err: orchestration.ErrUserCancelled, Duration: time.Second})
	m = update(m, RunDoneMsg{ExitCode: apperrors.ExitErrorCanceled})
	if !strings.Contains(m.View(), "Task Cancelled") {
		t.Error("View() should report the cancellation")
	}
}

func TestModel_Mismatch(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 2)
	m = update(m, RunDoneMsg{ExitCode: apperrors.ExitErrorMismatch})
	if !strings.Contains(m.View(), "disagree") {
		t.Error("View() should report the mismatch")
	}
}

func TestModel_Sampling(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, 1)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule sampling")
	}
	if _, cmd := m.Update(TickMsg(time.Now())); cmd == nil {
		t.Error("a tick should schedule the next samples")
	}

	msg := sampleMemStatsCmd(m.memory)().(MemStatsMsg)
	if msg.HeapAlloc == 0 || msg.PeakHeap < msg.HeapAlloc || msg.NumGoroutine == 0 {
		t.Errorf("unexpected memory sample %+v", msg)
	}
	m = update(m, msg)
	m = update(m, SysStatsMsg{CPUPercent: 50, MemPercent: 25})
	view := m.View()
	for _, want := range []string{"Peak heap:", " 50.0%", " 25.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBridge(t *testing.T) {
	t.Parallel()
	ref := &programRef{} // nil program, Send is a no-op
	(&Reporter{ref: ref}).Tick(orchestration.ProgressSnapshot{Average: 0.5})

	p := &Presenter{ref: ref}
	p.PresentResults(nil, nil)
	p.PresentResult(orchestration.JobResult{}, time.Second, nil)
	tests := []struct {
		err  error
		want int
	}{
		{orchestration.ErrUserCancelled, apperrors.ExitErrorCanceled},
		{context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := p.HandleError(tt.err, time.Second, nil); got != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// TestReporter_DrivesRun runs a real orchestration with the dashboard's
// reporter and poller while no program is attached.
func TestReporter_DrivesRun(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	poller := &Poller{}
	out := orchestration.RunJobs(context.Background(),
		orchestration.JobSpec{Count: 2, Digits: 100, Mode: orchestration.Parallel},
		pi.FixedPointCalculator{},
		orchestration.RunOptions{Reporter: &Reporter{ref: ref}, Poller: poller, TickInterval: time.Millisecond},
	)
	if out.Status != orchestration.StatusCompleted {
		t.Fatalf("status = %v, err = %v", out.Status, out.Err)
	}
	if code := orchestration.AnalyzeResults(out, &Presenter{ref: ref}, io.Discard); code != apperrors.ExitSuccess {
		t.Errorf("AnalyzeResults = %d", code)
	}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if len(km.ShortHelp()) != 2 {
		t.Fatalf("ShortHelp() = %d bindings, want 2", len(km.ShortHelp()))
	}
	hasKey := func(keys []string, k string) bool {
		for _, got := range keys {
			if got == k {
				return true
			}
		}
		return false
	}
	if !hasKey(km.Cancel.Keys(), "c") {
		t.Error("Cancel should include 'c'")
	}
	for _, k := range []string{"q", "ctrl+c"} {
		if !hasKey(km.Quit.Keys(), k) {
			t.Errorf("Quit should include %q", k)
		}
	}
}
