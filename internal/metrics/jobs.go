package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "picalc"

// Job and run status labels.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusSkipped   = "skipped"
)

// JobMetrics groups the instruments updated by the orchestrator. Every
// method is safe on a nil receiver so callers may leave metrics disabled.
//
// Each JobMetrics owns its registry, so tests and concurrent runs never
// collide on the global default registerer.
type JobMetrics struct {
	registry *prometheus.Registry

	jobsTotal    *prometheus.CounterVec
	runsTotal    *prometheus.CounterVec
	jobDuration  prometheus.Histogram
	activeJobs   prometheus.Gauge
	progress     prometheus.Gauge
	httpRequests *prometheus.CounterVec
}

// NewJobMetrics creates the instruments and registers them, along with the
// Go runtime and process collectors, in a fresh registry.
func NewJobMetrics() *JobMetrics {
	m := &JobMetrics{
		registry: prometheus.NewRegistry(),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Pi jobs by final status.",
		}, []string{"status"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Orchestrated runs by outcome.",
		}, []string{"status"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of completed pi jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
		activeJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_jobs",
			Help:      "Jobs currently computing.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "progress_ratio",
			Help:      "Average progress of the current run, 0 to 1.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served by the metrics endpoint.",
		}, []string{"path"}),
	}
	m.registry.MustRegister(
		m.jobsTotal, m.runsTotal, m.jobDuration, m.activeJobs, m.progress, m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding every instrument.
func (m *JobMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *JobMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// JobStarted marks a job as running.
func (m *JobMetrics) JobStarted() {
	if m == nil {
		return
	}
	m.activeJobs.Inc()
}

// JobFinished records a job that had started. Only completed jobs feed the
// duration histogram.
func (m *JobMetrics) JobFinished(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.activeJobs.Dec()
	m.jobsTotal.WithLabelValues(status).Inc()
	if status == StatusCompleted {
		m.jobDuration.Observe(d.Seconds())
	}
}

// JobSkipped records a job that never started because the run was cancelled.
func (m *JobMetrics) JobSkipped() {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(StatusSkipped).Inc()
}

// RunFinished records the outcome of a whole run.
func (m *JobMetrics) RunFinished(status string) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status).Inc()
}

// SetProgress publishes the run's average progress.
func (m *JobMetrics) SetProgress(avg float64) {
	if m == nil {
		return
	}
	m.progress.Set(avg)
}

// HTTPRequest counts a request to the metrics server.
func (m *JobMetrics) HTTPRequest(path string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path).Inc()
}
