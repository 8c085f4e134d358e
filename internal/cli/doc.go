// Package cli renders picalc runs in a plain terminal.
//
// # Naming Conventions
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
//
// The package also provides the spinner-based [SpinnerReporter] and the
// [KeyPoller] that turns a 'c' keypress into a cancellation request.
package cli
