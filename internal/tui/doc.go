// Package tui implements the -tui dashboard: one progress bar per job, live
// memory and CPU panels, and the job summary once the run is over. It plugs
// into the orchestrator through the same ProgressReporter, CancelPoller and
// ResultPresenter interfaces as the plain CLI.
package tui
