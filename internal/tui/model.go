package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/cli"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/pi"
	"github.com/agbru/picalc/internal/sysmon"
)

// sampleInterval is the resource sampling period.
const sampleInterval = 500 * time.Millisecond

// Session describes the run shown by the dashboard.
type Session struct {
	Spec orchestration.JobSpec
	Calc pi.Calculator
	// Options is passed to RunJobs with its Reporter and Poller replaced by
	// the dashboard's.
	Options orchestration.RunOptions
	Version string
	// Memory tracks the peak heap; a private collector is used when nil.
	Memory *metrics.MemoryCollector
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	jobs    JobsModel
	metrics MetricsModel
	keymap  KeyMap
	help    help.Model

	ref    *programRef
	poller *Poller
	memory *metrics.MemoryCollector

	cancelling bool
	done       bool
	exitCode   int
	final      *FinalResultMsg
	failure    string
	width      int
	height     int
}

// NewModel creates the dashboard for s. Cancel requests go to poller.
func NewModel(s Session, poller *Poller) Model {
	mem := s.Memory
	if mem == nil {
		mem = metrics.NewMemoryCollector()
	}
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = dimStyle
	run := fmt.Sprintf("%d jobs x %d digits, %s, %s", s.Spec.Count, s.Spec.Digits, s.Spec.Mode, calcName(s.Calc))
	return Model{
		header:  NewHeaderModel(s.Version, run),
		jobs:    NewJobsModel(s.Spec.Count),
		metrics: NewMetricsModel(),
		keymap:  DefaultKeyMap(),
		help:    h,
		ref:     &programRef{},
		poller:  poller,
		memory:  mem,
	}
}

func calcName(c pi.Calculator) string {
	if c == nil {
		return "none"
	}
	return c.Name()
}

// Init starts the resource sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleMemStatsCmd(m.memory), sampleSysStatsCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Cancel):
			if !m.done {
				m.poller.Request()
				m.cancelling = true
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(m.width)
		m.jobs.SetWidth(m.width * 3 / 5)
		m.metrics.SetWidth(m.width - m.width*3/5)
		m.help.Width = m.width
		return m, nil

	case ProgressMsg:
		m.jobs.Update(msg)
		return m, nil

	case ResultsMsg:
		m.jobs.SetResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.final = &msg
		return m, nil

	case ErrorMsg:
		var buf bytes.Buffer
		apperrors.HandleCalculationError(msg.Err, msg.Duration, &buf, nil)
		m.failure = strings.TrimSpace(buf.String())
		return m, nil

	case RunDoneMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.jobs.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		" "+m.status(),
		" "+m.help.ShortHelpView(m.keymap.ShortHelp()),
	)
}

func (m Model) status() string {
	switch {
	case !m.done && m.cancelling:
		return warningStyle.Render("Cancelling after the running jobs...")
	case !m.done:
		return dimStyle.Render("Running...")
	case m.failure != "":
		return errorStyle.Render(m.failure)
	case m.exitCode == apperrors.ExitErrorMismatch:
		return errorStyle.Render("CRITICAL ERROR! The jobs disagree.")
	case m.final != nil:
		return successStyle.Render("All results are identical.") + " pi = " +
			cli.FormatDigits(m.final.Result.Digits, false)
	default:
		return successStyle.Render("Done.")
	}
}

// ExitCode returns the exit code of the finished run.
func (m Model) ExitCode() int { return m.exitCode }

// Run shows the dashboard while RunJobs executes s, and returns the exit
// code and the outcome once the user quits. Quitting before the run is over
// cancels it.
func Run(ctx context.Context, s Session) (int, orchestration.Outcome) {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	poller := &Poller{}
	model := NewModel(s, poller)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	done := make(chan RunDoneMsg, 1)
	go func() {
		opts := s.Options
		opts.Reporter = &Reporter{ref: model.ref}
		opts.Poller = poller
		out := orchestration.RunJobs(ctx, s.Spec, s.Calc, opts)
		code := orchestration.AnalyzeResults(out, &Presenter{ref: model.ref}, io.Discard)
		msg := RunDoneMsg{ExitCode: code, Outcome: out}
		done <- msg
		model.ref.Send(msg)
	}()

	_, err := p.Run()
	cancel()
	res := <-done
	if err != nil {
		return apperrors.ExitErrorGeneric, res.Outcome
	}
	return res.ExitCode, res.Outcome
}

func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := mc.Snapshot()
		return MemStatsMsg{
			HeapAlloc:    s.HeapAlloc,
			PeakHeap:     mc.PeakHeapAlloc(),
			HeapSys:      s.HeapSys,
			NumGC:        s.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
