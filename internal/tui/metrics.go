package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/picalc/internal/cli"
)

const sparklineSamples = 40

// MetricsModel displays process memory and system load.
type MetricsModel struct {
	mem    MemStatsMsg
	cpu    *RingBuffer
	sysMem *RingBuffer
	width  int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu:    NewRingBuffer(sparklineSamples),
		sysMem: NewRingBuffer(sparklineSamples),
	}
}

func (m *MetricsModel) SetWidth(w int) { m.width = w }

// UpdateMemStats stores the latest runtime sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg
}

// UpdateSysStats appends a system sample to the sparklines.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.sysMem.Push(msg.MemPercent)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Resources"))
	b.WriteString("\n")
	b.WriteString(metricRow("Heap:", cli.FormatBytes(m.mem.HeapAlloc)+" / "+cli.FormatBytes(m.mem.HeapSys)))
	b.WriteString(metricRow("Peak heap:", cli.FormatBytes(m.mem.PeakHeap)))
	b.WriteString(metricRow("GC cycles:", fmt.Sprint(m.mem.NumGC)))
	b.WriteString(metricRow("Goroutines:", fmt.Sprint(m.mem.NumGoroutine)))
	b.WriteString(metricRow("CPU:", fmt.Sprintf("%5.1f%% ", m.cpu.Last())+cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice()))))
	b.WriteString(metricRow("Memory:", fmt.Sprintf("%5.1f%% ", m.sysMem.Last())+memSparkStyle.Render(RenderSparkline(m.sysMem.Slice()))))
	return panelStyle.Width(max(m.width-2, 0)).Render(strings.TrimSuffix(b.String(), "\n"))
}

func metricRow(label, value string) string {
	return metricLabelStyle.Render(fmt.Sprintf("%-12s", label)) + metricValueStyle.Render(value) + "\n"
}
