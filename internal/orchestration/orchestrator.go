package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/pi"
	"github.com/agbru/picalc/internal/progress"
)

// DefaultTickInterval is the supervisor polling and progress period.
const DefaultTickInterval = 200 * time.Millisecond

const tracerName = "github.com/agbru/picalc/internal/orchestration"

// ErrUserCancelled is the cancellation cause recorded when the CancelPoller
// fires. It matches context.Canceled with errors.Is.
var ErrUserCancelled = fmt.Errorf("cancelled by user: %w", context.Canceled)

var errDeadline = errors.New("run deadline elapsed")

// Status is the terminal state of a run.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Cause tells why a run was cancelled.
type Cause int

const (
	CauseNone Cause = iota
	// CauseDeadline means JobSpec.Deadline elapsed.
	CauseDeadline
	// CauseUser means the CancelPoller fired.
	CauseUser
	// CauseContext means the caller's context was cancelled.
	CauseContext
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseDeadline:
		return "deadline"
	case CauseUser:
		return "user"
	case CauseContext:
		return "context"
	default:
		return fmt.Sprintf("Cause(%d)", int(c))
	}
}

// JobResult is the result of one job.
type JobResult struct {
	// Index is the job's submission index.
	Index int
	// Digits is the rendered value of pi, empty when Err is set.
	Digits   string
	Duration time.Duration
	Err      error
}

// Outcome is the result of RunJobs.
type Outcome struct {
	Status Status
	// Cause is set when Status is StatusCancelled.
	Cause Cause
	// Results holds one entry per job in submission order. It is nil when
	// the run was cancelled. On failure the jobs that succeeded keep their
	// digits and the failed ones carry Err.
	Results []JobResult
	Elapsed time.Duration
	// Err is the first job error on failure, and describes the
	// cancellation cause on StatusCancelled.
	Err error

	settled <-chan struct{}
}

// Settled is closed once every job body has returned or been skipped. After
// a cancelled run, jobs that had started may still be computing when
// RunJobs returns.
func (o Outcome) Settled() <-chan struct{} {
	if o.settled == nil {
		return closedChan
	}
	return o.settled
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// RunOptions carries the collaborators of a run. Every field is optional.
type RunOptions struct {
	Reporter     ProgressReporter
	Poller       CancelPoller
	TickInterval time.Duration
	Logger       logging.Logger
	Metrics      *metrics.JobMetrics
	// CalcOptions is passed to every Compute call.
	CalcOptions pi.Options
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Reporter == nil {
		o.Reporter = NullProgressReporter{}
	}
	if o.Poller == nil {
		o.Poller = NeverCancel
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}
	return o
}

// run holds the state shared by the jobs of one RunJobs call. Jobs only
// write their own results slot and progress slot.
type run struct {
	spec   JobSpec
	calc   pi.Calculator
	opts   RunOptions
	tracer trace.Tracer

	results   []JobResult
	state     *progress.State
	errs      parallel.ErrorCollector
	completed atomic.Int64
	skipped   atomic.Int64
	done      chan struct{}
}

// RunJobs computes pi spec.Count times to spec.Digits digits with calc and
// waits for the jobs, the deadline, the caller's context or the
// CancelPoller, whichever comes first.
//
// A job failure does not stop the other jobs; the outcome is then
// StatusFailed with the first error observed. Cancellation never exposes
// partial results.
func RunJobs(ctx context.Context, spec JobSpec, calc pi.Calculator, opts RunOptions) Outcome {
	start := time.Now()
	if err := spec.Validate(); err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if calc == nil {
		return Outcome{Status: StatusFailed, Err: errors.New("orchestration: nil calculator")}
	}
	opts = opts.withDefaults()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "pi.run", trace.WithAttributes(
		attribute.Int("run.jobs", spec.Count),
		attribute.Int("run.digits", spec.Digits),
		attribute.String("run.mode", spec.Mode.String()),
		attribute.String("run.algorithm", calc.Name()),
	))
	defer span.End()

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if spec.Deadline > 0 {
		var stop context.CancelFunc
		runCtx, stop = context.WithTimeoutCause(runCtx, spec.Deadline, errDeadline)
		defer stop()
	}

	r := &run{
		spec:    spec,
		calc:    calc,
		opts:    opts,
		tracer:  otel.Tracer(tracerName),
		results: make([]JobResult, spec.Count),
		state:   progress.NewState(spec.Count),
		done:    make(chan struct{}),
	}

	opts.Logger.Info("run started",
		logging.Int("jobs", spec.Count),
		logging.Int("digits", spec.Digits),
		logging.String("mode", spec.Mode.String()),
		logging.Int("workers", spec.poolSize()),
		logging.String("algorithm", calc.Name()),
	)
	opts.Reporter.Start(spec.Count)

	if spec.Mode == Sequential {
		go r.runSequential(runCtx)
	} else {
		go r.runParallel(runCtx)
	}

	out := r.supervise(runCtx, cancel, start)
	out.Elapsed = time.Since(start)
	out.settled = r.done
	opts.Reporter.Stop()

	span.SetAttributes(attribute.String("run.status", out.Status.String()))
	switch out.Status {
	case StatusCompleted:
		opts.Metrics.RunFinished(metrics.StatusCompleted)
		opts.Logger.Info("run completed", logging.Duration("elapsed", out.Elapsed))
	case StatusCancelled:
		opts.Metrics.RunFinished(metrics.StatusCancelled)
		span.SetStatus(codes.Error, "cancelled")
		opts.Logger.Info("run cancelled",
			logging.String("cause", out.Cause.String()),
			logging.Duration("elapsed", out.Elapsed),
		)
	case StatusFailed:
		opts.Metrics.RunFinished(metrics.StatusFailed)
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
		opts.Logger.Error("run failed", out.Err, logging.Duration("elapsed", out.Elapsed))
	}
	return out
}

// runParallel submits every job from this goroutine so that a full pool
// never blocks the supervisor. Each job checks the run context only before
// it starts.
func (r *run) runParallel(ctx context.Context) {
	defer close(r.done)
	var g errgroup.Group
	g.SetLimit(r.spec.poolSize())
	for i := range r.spec.Count {
		g.Go(func() error {
			if ctx.Err() != nil {
				r.skip(i)
				return nil
			}
			r.runJob(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}

// runSequential is the single worker of Sequential mode. The run context
// is observed between jobs only.
func (r *run) runSequential(ctx context.Context) {
	defer close(r.done)
	for i := range r.spec.Count {
		if ctx.Err() != nil {
			r.skip(i)
			continue
		}
		r.runJob(ctx, i)
	}
}

func (r *run) skip(i int) {
	r.skipped.Add(1)
	r.opts.Metrics.JobSkipped()
	r.opts.Logger.Debug("job skipped", logging.Int("job", i))
}

func (r *run) runJob(ctx context.Context, i int) {
	ctx, span := r.tracer.Start(ctx, "pi.job", trace.WithAttributes(
		attribute.Int("job.index", i),
		attribute.Int("job.digits", r.spec.Digits),
	))
	defer span.End()

	r.opts.Metrics.JobStarted()
	r.opts.Logger.Debug("job started", logging.Int("job", i))
	start := time.Now()

	digits, err := r.calc.Compute(ctx, r.spec.Digits, r.opts.CalcOptions, func(v float64) {
		r.state.Set(i, v)
	})
	d := time.Since(start)

	if err != nil {
		r.results[i] = JobResult{Index: i, Duration: d, Err: err}
		r.errs.SetError(apperrors.CalculationError{Job: i, Cause: err})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		status := metrics.StatusFailed
		if apperrors.IsContextError(err) {
			status = metrics.StatusCancelled
		}
		r.opts.Metrics.JobFinished(status, d)
		r.opts.Logger.Debug("job stopped", logging.Int("job", i), logging.Err(err))
		return
	}

	r.results[i] = JobResult{Index: i, Digits: digits, Duration: d}
	r.state.Set(i, 1)
	r.completed.Add(1)
	r.opts.Metrics.JobFinished(metrics.StatusCompleted, d)
	r.opts.Logger.Debug("job finished", logging.Int("job", i), logging.Duration("duration", d))
}

// supervise is the supervisor loop: it sleeps between ticks and wakes on
// job completion, cancellation or the next tick.
func (r *run) supervise(ctx context.Context, cancel context.CancelCauseFunc, start time.Time) Outcome {
	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()
	var eta format.ETAEstimator

	for {
		select {
		case <-r.done:
			r.tick(&eta, start)
			return r.finish(ctx)
		case <-ctx.Done():
			return r.cancelled(ctx)
		case <-ticker.C:
			if r.opts.Poller.Poll() {
				cancel(ErrUserCancelled)
				continue
			}
			r.tick(&eta, start)
		}
	}
}

func (r *run) tick(eta *format.ETAEstimator, start time.Time) {
	elapsed := time.Since(start)
	snap := ProgressSnapshot{
		Jobs:      r.state.Snapshot(),
		Average:   r.state.Average(),
		Completed: int(r.completed.Load()),
		Elapsed:   elapsed,
	}
	snap.ETA = eta.Observe(snap.Average, elapsed)
	r.opts.Metrics.SetProgress(snap.Average)
	r.opts.Reporter.Tick(snap)
}

// finish builds the outcome once every job has returned or been skipped.
func (r *run) finish(ctx context.Context) Outcome {
	if r.skipped.Load() > 0 {
		return r.cancelled(ctx)
	}
	if err := r.errs.Err(); err != nil {
		if ctx.Err() != nil && apperrors.IsContextError(err) {
			// Preempted jobs report the run's own cancellation.
			return r.cancelled(ctx)
		}
		return Outcome{Status: StatusFailed, Results: r.results, Err: err}
	}
	return Outcome{Status: StatusCompleted, Results: r.results}
}

func (r *run) cancelled(ctx context.Context) Outcome {
	cause := context.Cause(ctx)
	out := Outcome{Status: StatusCancelled}
	switch {
	case errors.Is(cause, errDeadline):
		out.Cause = CauseDeadline
		out.Err = apperrors.TimeoutError{Operation: "pi jobs", Limit: r.spec.Deadline}
	case errors.Is(cause, ErrUserCancelled):
		out.Cause = CauseUser
		out.Err = ErrUserCancelled
	default:
		out.Cause = CauseContext
		out.Err = cause
	}
	return out
}
