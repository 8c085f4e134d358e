// Package metrics exposes Prometheus instruments for pi jobs and runtime
// memory readings for the progress displays.
package metrics
