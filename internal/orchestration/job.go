package orchestration

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// Mode selects how the jobs of a run are scheduled.
type Mode int

const (
	// Parallel submits every job to a worker pool without waiting on any
	// individual job.
	Parallel Mode = iota
	// Sequential runs the jobs one at a time on a single worker.
	Sequential
)

func (m Mode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "parallel" and "sequential" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "parallel":
		return Parallel, nil
	case "sequential":
		return Sequential, nil
	}
	return 0, apperrors.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q", s)}
}

// JobSpec describes a run. It is not modified once the run starts.
type JobSpec struct {
	// Count is the number of jobs, at least 1.
	Count int
	// Digits is the number of fractional digits each job computes.
	Digits int
	Mode   Mode
	// Workers caps concurrent jobs in Parallel mode. Zero runs every job
	// at once.
	Workers int
	// Deadline bounds the whole run. Zero means no deadline.
	Deadline time.Duration
}

// Validate reports the first invalid field.
func (s JobSpec) Validate() error {
	switch {
	case s.Count < 1:
		return apperrors.ValidationError{Field: "count", Message: fmt.Sprintf("must be at least 1, got %d", s.Count)}
	case s.Digits < 0:
		return apperrors.ValidationError{Field: "digits", Message: fmt.Sprintf("must be non-negative, got %d", s.Digits)}
	case s.Mode != Parallel && s.Mode != Sequential:
		return apperrors.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %d", int(s.Mode))}
	case s.Workers < 0:
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be non-negative, got %d", s.Workers)}
	case s.Deadline < 0:
		return apperrors.ValidationError{Field: "deadline", Message: fmt.Sprintf("must be non-negative, got %s", s.Deadline)}
	}
	return nil
}

// poolSize is the number of jobs allowed to compute at once.
func (s JobSpec) poolSize() int {
	if s.Mode == Sequential {
		return 1
	}
	if s.Workers == 0 || s.Workers > s.Count {
		return s.Count
	}
	return s.Workers
}
