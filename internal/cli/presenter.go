package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

// ResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type ResultPresenter struct {
	// ShowValue prints the digits, grouped by ten.
	ShowValue bool
	// Verbose disables truncation of long renderings.
	Verbose bool
}

var _ orchestration.ResultPresenter = ResultPresenter{}

// PresentResults prints one row per job with its duration and status.
// Padding is computed by hand because the cells carry ANSI codes.
func (ResultPresenter) PresentResults(results []orchestration.JobResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Job Summary ---\n")

	const jobHeader, durationHeader = "Job", "Duration"
	jobWidth, durationWidth := len(jobHeader), len(durationHeader)
	durations := make([]string, len(results))
	for i, res := range results {
		durations[i] = jobDuration(res.Duration)
		jobWidth = max(jobWidth, len(fmt.Sprint(res.Index+1)))
		durationWidth = max(durationWidth, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), jobHeader, ui.ColorReset(), padRight("", jobWidth-len(jobHeader)),
		ui.ColorUnderline(), durationHeader, ui.ColorReset(), padRight("", durationWidth-len(durationHeader)),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		job := fmt.Sprint(res.Index + 1)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), job, ui.ColorReset(), padRight("", jobWidth-len(job)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight("", durationWidth-len([]rune(durations[i]))),
			status)
	}
}

func jobDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the elapsed time and, with ShowValue, the digits.
func (p ResultPresenter) PresentResult(result orchestration.JobResult, elapsed time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\nElapsed time: %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
	fmt.Fprintf(out, "Decimal places: %s%d%s\n", ui.ColorCyan(), FractionalDigits(result.Digits), ui.ColorReset())
	if !p.ShowValue {
		return
	}
	fmt.Fprintf(out, "\npi = %s%s%s\n", ui.ColorMagenta(), FormatDigits(result.Digits, p.Verbose), ui.ColorReset())
}

// HandleError delegates to apperrors.HandleCalculationError with the active
// theme's colors.
func (ResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ColorProvider{})
}

// FormatDigits groups the fractional digits by ten and, unless full is set,
// truncates long renderings to their edges.
func FormatDigits(digits string, full bool) string {
	if !full {
		digits = format.Truncate(digits, TruncationLimit, DisplayEdges)
	}
	return format.GroupDigits(digits, '.')
}

// FractionalDigits counts the digits after the separator of a rendering.
func FractionalDigits(digits string) int {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return len(digits) - i - 1
		}
	}
	return 0
}

// DisplayMemoryStats shows the peak heap and the current memory counters.
func DisplayMemoryStats(peak uint64, snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:  %s\n", FormatBytes(peak))
	fmt.Fprintf(out, "  Heap sys:   %s\n", FormatBytes(snap.HeapSys))
	fmt.Fprintf(out, "  GC cycles:  %d\n", snap.NumGC)
}

// DisplayParallelism shows the average number of busy cores during the run.
func DisplayParallelism(cores float64, out io.Writer) {
	if cores <= 0 {
		return
	}
	fmt.Fprintf(out, "  Cores used: %.2f\n", cores)
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
