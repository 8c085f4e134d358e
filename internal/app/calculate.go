package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/picalc/internal/cli"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/pi"
	"github.com/agbru/picalc/internal/server"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/tui"
)

// spec converts the configuration into the orchestrator's job spec.
func (a *Application) spec() (orchestration.JobSpec, error) {
	mode, err := a.Config.RunMode()
	if err != nil {
		return orchestration.JobSpec{}, err
	}
	return orchestration.JobSpec{
		Count:    a.Config.Jobs,
		Digits:   a.Config.Digits,
		Mode:     mode,
		Workers:  a.Config.Workers,
		Deadline: a.Config.Timeout,
	}, nil
}

// runOptions builds the orchestrator collaborators shared by both front
// ends. Reporter and Poller are left to the caller.
func (a *Application) runOptions(m *metrics.JobMetrics, logger logging.Logger) orchestration.RunOptions {
	return orchestration.RunOptions{
		TickInterval: a.Config.Tick,
		Logger:       logger,
		Metrics:      m,
		CalcOptions:  pi.Options{Preemptible: a.Config.Preempt},
	}
}

// startMetrics serves the metrics endpoint when -metrics-addr is set. It
// returns nil metrics otherwise.
func (a *Application) startMetrics(ctx context.Context, out io.Writer) (*metrics.JobMetrics, error) {
	if a.Config.MetricsAddr == "" {
		return nil, nil
	}
	m := metrics.NewJobMetrics()
	addr, err := server.New(a.Config.MetricsAddr, m, a.Logger).Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("metrics server: %w", err)
	}
	if !a.Config.Quiet && !a.Config.TUI {
		fmt.Fprintf(out, "Metrics available at http://%s/metrics\n", addr)
	}
	return m, nil
}

func (a *Application) calculator() (pi.Calculator, int) {
	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return nil, apperrors.ExitErrorConfig
	}
	return calc, apperrors.ExitSuccess
}

// runCalculate runs the jobs with the spinner front end.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	spec, err := a.spec()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	calc, code := a.calculator()
	if calc == nil {
		return code
	}
	m, err := a.startMetrics(ctx, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(a.Config, out)
	}

	opts := a.runOptions(m, a.Logger)
	opts.Reporter = orchestration.NullProgressReporter{}
	if !a.Config.Quiet {
		opts.Reporter = cli.NewSpinnerReporter(out)
	}
	mem := metrics.NewMemoryCollector()
	if a.Config.Verbose {
		opts.Reporter = sampledReporter{ProgressReporter: opts.Reporter, mem: mem}
	}
	restore := a.watchCancelKey(&opts)

	mem.Snapshot()
	before := sysmon.Sample()
	outcome := orchestration.RunJobs(ctx, spec, calc, opts)
	after := sysmon.Sample()
	restore()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}
	presenter := cli.ResultPresenter{ShowValue: a.Config.ShowValue, Verbose: a.Config.Verbose}

	var exitCode int
	if a.Config.Quiet {
		// Only the digits reach out; failures go to the error writer.
		exitCode = orchestration.AnalyzeResults(outcome, presenter, io.Discard)
		if exitCode != apperrors.ExitSuccess {
			presenter.HandleError(outcomeError(outcome), outcome.Elapsed, a.ErrWriter)
		}
	} else {
		exitCode = orchestration.AnalyzeResults(outcome, presenter, out)
	}

	if exitCode == apperrors.ExitSuccess {
		if err := cli.DisplayResultWithConfig(out, outcome.Results[0].Digits, a.Config.Jobs, outcome.Elapsed, calc.Name(), outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(mem.PeakHeapAlloc(), mem.Snapshot(), out)
		cli.DisplayParallelism(sysmon.Parallelism(before, after, outcome.Elapsed), out)
	}
	return exitCode
}

// outcomeError returns the error to report for a run that did not succeed.
func outcomeError(o orchestration.Outcome) error {
	if o.Err != nil {
		return o.Err
	}
	return fmt.Errorf("the %d jobs did not agree", len(o.Results))
}

// watchCancelKey installs the keypress CancelPoller on opts when the input
// is usable, and returns the function restoring the terminal. In verbose
// mode the terminal stays in line mode so that log lines render normally;
// the cancel key then needs Enter.
func (a *Application) watchCancelKey(opts *orchestration.RunOptions) (restore func()) {
	restore = func() {}
	if a.Input == nil {
		return restore
	}
	if f, ok := a.Input.(*os.File); ok && !a.Config.Verbose {
		r, err := cli.EnableRawInput(f)
		if err != nil {
			a.Logger.Error("cannot read single keys", err)
		} else {
			restore = r
		}
	}
	opts.Poller = cli.NewKeyPoller(a.Input)
	return restore
}

// runTUI runs the jobs under the dashboard, then writes the output file.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	spec, err := a.spec()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	calc, code := a.calculator()
	if calc == nil {
		return code
	}
	m, err := a.startMetrics(ctx, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	// Log lines would corrupt the alternate screen.
	exitCode, outcome := tui.Run(ctx, tui.Session{
		Spec:    spec,
		Calc:    calc,
		Options: a.runOptions(m, logging.Nop{}),
		Version: Version,
	})

	if exitCode == apperrors.ExitSuccess && a.Config.OutputFile != "" {
		cfg := cli.OutputConfig{OutputFile: a.Config.OutputFile}
		if err := cli.WriteResultToFile(outcome.Results[0].Digits, a.Config.Jobs, outcome.Elapsed, calc.Name(), cfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "Result saved to: %s\n", a.Config.OutputFile)
	}
	if exitCode != apperrors.ExitSuccess {
		cli.ResultPresenter{}.HandleError(outcomeError(outcome), outcome.Elapsed.Round(time.Millisecond), a.ErrWriter)
	}
	return exitCode
}

// sampledReporter records the heap on every tick for the -v memory report.
type sampledReporter struct {
	orchestration.ProgressReporter
	mem *metrics.MemoryCollector
}

func (r sampledReporter) Tick(s orchestration.ProgressSnapshot) {
	r.mem.Snapshot()
	r.ProgressReporter.Tick(s)
}
