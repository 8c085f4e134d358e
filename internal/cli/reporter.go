package cli

import (
	"fmt"
	"io"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
)

// SpinnerReporter implements orchestration.ProgressReporter with a spinner
// followed by the average progress bar and the ETA.
type SpinnerReporter struct {
	out     io.Writer
	spinner Spinner
	jobs    int
	last    orchestration.ProgressSnapshot
}

var _ orchestration.ProgressReporter = (*SpinnerReporter)(nil)

// NewSpinnerReporter creates a reporter drawing on out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{out: out}
}

// Start shows the spinner.
func (r *SpinnerReporter) Start(jobs int) {
	r.jobs = jobs
	r.spinner = newSpinner(r.out)
	r.spinner.UpdateSuffix(FormatProgressLine(orchestration.ProgressSnapshot{}, jobs))
	r.spinner.Start()
}

// Tick redraws the progress line.
func (r *SpinnerReporter) Tick(s orchestration.ProgressSnapshot) {
	r.last = s
	if r.spinner != nil {
		r.spinner.UpdateSuffix(FormatProgressLine(s, r.jobs))
	}
}

// Stop removes the spinner and prints the last progress line.
func (r *SpinnerReporter) Stop() {
	if r.spinner == nil {
		return
	}
	r.spinner.Stop()
	r.spinner = nil
	// The terminal may still be in raw mode, where \n does not return the
	// carriage.
	fmt.Fprintf(r.out, "%s\r\n", FormatProgressLine(r.last, r.jobs))
}

// FormatProgressLine renders " Computing... [bar] 42.00% ETA: 3s (1/6 done)".
func FormatProgressLine(s orchestration.ProgressSnapshot, jobs int) string {
	return fmt.Sprintf(" Computing... %s (%d/%d done)",
		format.FormatProgressBarWithETA(s.Average, s.ETA, ProgressBarWidth), s.Completed, jobs)
}
