package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// decodeLine parses the single JSON entry written by a ZerologAdapter.
func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	return entry
}

// TestZerologAdapter_RunLifecycle replays the entries the orchestrator
// writes over a run and checks level, message and typed fields.
func TestZerologAdapter_RunLifecycle(t *testing.T) {
	t.Parallel()
	seriesErr := errors.New("atan(1/239): term 12: overflow")
	tests := []struct {
		name  string
		emit  func(Logger)
		level string
		msg   string
		want  map[string]any
	}{
		{
			name: "run started",
			emit: func(l Logger) {
				l.Info("run started", Int("jobs", 6), Int("digits", 20000), String("mode", "parallel"))
			},
			level: "info", msg: "run started",
			want: map[string]any{"jobs": 6.0, "digits": 20000.0, "mode": "parallel"},
		},
		{
			name:  "job finished",
			emit:  func(l Logger) { l.Debug("job finished", Int("job", 3), Duration("duration", 1500*time.Millisecond)) },
			level: "debug", msg: "job finished",
			want: map[string]any{"job": 3.0, "duration": 1500.0},
		},
		{
			name:  "job stopped",
			emit:  func(l Logger) { l.Debug("job stopped", Int("job", 1), Err(seriesErr)) },
			level: "debug", msg: "job stopped",
			want: map[string]any{"job": 1.0, "error": seriesErr.Error()},
		},
		{
			name:  "run failed",
			emit:  func(l Logger) { l.Error("run failed", seriesErr, Duration("elapsed", 2*time.Second)) },
			level: "error", msg: "run failed",
			want: map[string]any{"error": seriesErr.Error(), "elapsed": 2000.0},
		},
		{
			name:  "printf",
			emit:  func(l Logger) { l.Printf("metrics on %s", ":9090") },
			level: "info", msg: "metrics on :9090",
		},
		{
			name:  "println",
			emit:  func(l Logger) { l.Println("run", "cancelled") },
			level: "info", msg: "run cancelled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.emit(NewLogger(&buf, "orchestrator"))

			entry := decodeLine(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["message"] != tt.msg {
				t.Errorf("message = %v, want %q", entry["message"], tt.msg)
			}
			if entry["component"] != "orchestrator" {
				t.Errorf("component = %v, want orchestrator", entry["component"])
			}
			if _, ok := entry["time"]; !ok {
				t.Error("entry has no timestamp")
			}
			for k, v := range tt.want {
				if entry[k] != v {
					t.Errorf("%s = %v (%T), want %v", k, entry[k], entry[k], v)
				}
			}
		})
	}
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.WarnLevel))
	l.Debug("job started", Int("job", 0))
	l.Info("run completed")
	if buf.Len() != 0 {
		t.Fatalf("entries below warn were written: %q", buf.String())
	}
	l.Error("run failed", errors.New("boom"))
	if !strings.Contains(buf.String(), `"run failed"`) {
		t.Errorf("error entry missing: %q", buf.String())
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		emit func(Logger)
		want string
	}{
		{"info", func(l Logger) { l.Info("run started", Int("jobs", 2), String("mode", "sequential")) },
			"[INFO] run started jobs=2 mode=sequential\n"},
		{"debug duration", func(l Logger) { l.Debug("job finished", Int("job", 0), Duration("duration", 250*time.Millisecond)) },
			"[DEBUG] job finished job=0 duration=250ms\n"},
		{"error", func(l Logger) { l.Error("run failed", errors.New("overflow"), Int("job", 4)) },
			"[ERROR] run failed: overflow job=4\n"},
		{"no fields", func(l Logger) { l.Info("run completed") }, "[INFO] run completed\n"},
		{"printf", func(l Logger) { l.Printf("%d of %d jobs", 1, 3) }, "1 of 3 jobs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.emit(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	var l Logger = Nop{}
	l.Info("run started", Int("jobs", 1))
	l.Debug("job skipped", Int("job", 0))
	l.Error("run failed", nil)
	l.Printf("%s", "x")
	l.Println("x")
}
