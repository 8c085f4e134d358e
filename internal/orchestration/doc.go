// Package orchestration runs a batch of identical pi computations, either one
// after the other or on a bounded worker pool, under a deadline and a
// user-driven cancel signal.
//
// Cancellation is best-effort and boundary-only: it stops the orchestrator
// from waiting and turns the outcome into StatusCancelled, but a job that has
// already started keeps running in the background until its series
// converges, unless pi.Options.Preemptible is set. Outcome.Settled reports
// when those background jobs have all returned.
package orchestration
