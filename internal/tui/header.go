package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/format"
)

// HeaderModel renders the top bar: title, run parameters and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	run       string
	width     int
}

// NewHeaderModel creates a header; run describes the run parameters.
func NewHeaderModel(version, run string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		run:       run,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the time since start, frozen once SetDone was called.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "picalc"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(title) + pipe + dimStyle.Render(h.run) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Render(row)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
