package orchestration

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// AnalyzeResults presents outcome and returns the process exit code. A
// completed run whose jobs disagree on the digits is reported as a mismatch:
// jobs are deterministic, so any difference signals a defect.
func AnalyzeResults(outcome Outcome, presenter ResultPresenter, out io.Writer) int {
	switch outcome.Status {
	case StatusCancelled:
		return presenter.HandleError(outcome.Err, outcome.Elapsed, out)
	case StatusFailed:
		if len(outcome.Results) > 0 {
			presenter.PresentResults(outcome.Results, out)
			fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d jobs failed.\n", countFailed(outcome.Results), len(outcome.Results))
		}
		return presenter.HandleError(outcome.Err, outcome.Elapsed, out)
	}

	results := outcome.Results
	if len(results) == 0 {
		return presenter.HandleError(fmt.Errorf("run completed without results"), outcome.Elapsed, out)
	}
	presenter.PresentResults(results, out)

	for _, res := range results[1:] {
		if res.Digits != results[0].Digits {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Job %d disagrees with job %d.\n", res.Index, results[0].Index)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All %d results are identical.\n", len(results))
	presenter.PresentResult(results[0], outcome.Elapsed, out)
	return apperrors.ExitSuccess
}

func countFailed(results []JobResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
