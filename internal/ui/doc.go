// Package ui provides the color themes shared by the CLI output and the TUI
// dashboard. Colors honor the -no-color flag and the NO_COLOR environment
// variable.
package ui
