package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

func TestPresentResults(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	ResultPresenter{}.PresentResults([]orchestration.JobResult{
		{Index: 0, Digits: "3.14", Duration: 1500 * time.Millisecond},
		{Index: 1, Err: errors.New("boom")},
	}, &out)

	got := out.String()
	for _, want := range []string{"Job Summary", "Duration", "✅ Success", "❌ Failure (boom)", "< 1µs", "1.5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPresentResult(t *testing.T) {
	t.Parallel()
	long := "3." + strings.Repeat("1415926535", 20)
	tests := []struct {
		name      string
		presenter ResultPresenter
		digits    string
		contains  []string
		excludes  []string
	}{
		{
			name:     "value hidden",
			digits:   "3.14159",
			contains: []string{"Elapsed time: 2s", "Decimal places: 5"},
			excludes: []string{"pi ="},
		},
		{
			name:      "short value",
			presenter: ResultPresenter{ShowValue: true},
			digits:    "3.14159",
			contains:  []string{"pi = 3.14159"},
		},
		{
			name:      "long value truncated",
			presenter: ResultPresenter{ShowValue: true},
			digits:    long,
			contains:  []string{"...", "Decimal places: 200"},
		},
		{
			name:      "long value verbose",
			presenter: ResultPresenter{ShowValue: true, Verbose: true},
			digits:    long,
			contains:  []string{"3.1415926535 1415926535"},
			excludes:  []string{"..."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			tt.presenter.PresentResult(orchestration.JobResult{Digits: tt.digits}, 2*time.Second, &out)
			got := out.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
		text string
	}{
		{orchestration.ErrUserCancelled, apperrors.ExitErrorCanceled, "Task Cancelled"},
		{context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Deadline exceeded"},
		{errors.New("boom"), apperrors.ExitErrorGeneric, "Calculation failed"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if code := (ResultPresenter{}).HandleError(tt.err, time.Second, &out); code != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, code, tt.want)
		}
		if !strings.Contains(out.String(), tt.text) {
			t.Errorf("HandleError(%v) output %q, want %q", tt.err, out.String(), tt.text)
		}
	}
}

func TestFractionalDigits(t *testing.T) {
	t.Parallel()
	tests := map[string]int{
		"3.14159": 5,
		"3.":      0,
		"3,1":     1,
		"3":       0,
		"":        0,
	}
	for in, want := range tests {
		if got := FractionalDigits(in); got != want {
			t.Errorf("FractionalDigits(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	DisplayMemoryStats(2048, metrics.MemorySnapshot{HeapSys: 4096, NumGC: 3}, &out)
	DisplayParallelism(3.5, &out)
	DisplayParallelism(0, &out)
	got := out.String()
	for _, want := range []string{"Peak heap:  2.0 KiB", "Heap sys:   4.0 KiB", "GC cycles:  3", "Cores used: 3.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Cores used") != 1 {
		t.Error("DisplayParallelism(0) should print nothing")
	}
}
