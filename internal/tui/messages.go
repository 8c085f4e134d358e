package tui

import (
	"time"

	"github.com/agbru/picalc/internal/orchestration"
)

// ProgressMsg carries one supervisor tick.
type ProgressMsg orchestration.ProgressSnapshot

// ResultsMsg carries the per-job results of a finished run.
type ResultsMsg struct {
	Results []orchestration.JobResult
}

// FinalResultMsg carries the digits every job agreed on.
type FinalResultMsg struct {
	Result  orchestration.JobResult
	Elapsed time.Duration
}

// ErrorMsg reports a failed or cancelled run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// RunDoneMsg is sent once RunJobs and the result analysis have returned.
type RunDoneMsg struct {
	ExitCode int
	Outcome  orchestration.Outcome
}

// TickMsg drives the resource sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	PeakHeap     uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
