package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
)

// JobsModel shows one progress bar per job, then the job summary.
type JobsModel struct {
	bar      progress.Model
	snapshot orchestration.ProgressSnapshot
	results  []orchestration.JobResult
	jobs     int
	width    int
}

// NewJobsModel creates the panel for n jobs.
func NewJobsModel(n int) JobsModel {
	return JobsModel{
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		snapshot: orchestration.ProgressSnapshot{Jobs: make([]float64, n)},
		jobs:     n,
	}
}

// SetWidth sizes the bars to the panel.
func (m *JobsModel) SetWidth(w int) {
	m.width = w
	// "Job NN " prefix, " 100.0%" suffix and the panel frame.
	m.bar.Width = max(w-20, 10)
}

// Update stores the latest supervisor tick.
func (m *JobsModel) Update(msg ProgressMsg) {
	m.snapshot = orchestration.ProgressSnapshot(msg)
}

// SetResults switches the panel to the job summary.
func (m *JobsModel) SetResults(results []orchestration.JobResult) {
	m.results = results
}

// View renders the panel.
func (m JobsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Jobs"))
	for i := range m.jobs {
		b.WriteString("\n")
		b.WriteString(m.row(i))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %d/%d  %s %s",
		metricLabelStyle.Render("Average:"), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.snapshot.Average*100)),
		metricLabelStyle.Render("Done:"), m.snapshot.Completed, m.jobs,
		metricLabelStyle.Render("ETA:"), metricValueStyle.Render(format.FormatETA(m.snapshot.ETA))))
	return panelStyle.Width(max(m.width-2, 0)).Render(b.String())
}

func (m JobsModel) row(i int) string {
	label := fmt.Sprintf("Job %2d ", i+1)
	if i < len(m.results) {
		res := m.results[i]
		if res.Err != nil {
			return label + errorStyle.Render(fmt.Sprintf("failed: %v", res.Err))
		}
		return label + successStyle.Render("done") + dimStyle.Render(" in "+format.FormatExecutionDuration(res.Duration))
	}
	var v float64
	if i < len(m.snapshot.Jobs) {
		v = m.snapshot.Jobs[i]
	}
	return label + m.bar.ViewAs(v) + fmt.Sprintf(" %5.1f%%", v*100)
}
