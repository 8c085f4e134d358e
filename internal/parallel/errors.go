// Package parallel holds small concurrency helpers shared by the job
// orchestrator.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by concurrent
// workers. The zero value is ready to use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() { c.err = err })
}

// Err returns the first recorded error, or nil.
//
// Err must only be called after every SetError call has returned; the
// orchestrator guarantees this by waiting on its worker group first.
func (c *ErrorCollector) Err() error {
	return c.err
}
