// Package logging provides the logging interface shared by picalc components.
// Components depend on Logger rather than on a backend, so the orchestrator
// can be driven by zerolog in the CLI and by a plain log.Logger in tests.
package logging
