package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// TruncationLimit is the length from which the digits shown on the
	// terminal are truncated unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of characters kept at each end of a
	// truncated rendering.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner animation period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so the reporter can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

// newSpinner is a variable so tests can substitute a fake.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}
