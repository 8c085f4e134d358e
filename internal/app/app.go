// Package app wires the configuration, the calculators, the orchestrator and
// the front ends into the picalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/pi"
	"github.com/agbru/picalc/internal/ui"
)

// Application represents the picalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   pi.CalculatorFactory
	ErrWriter io.Writer
	// Input is read for the cancel key. Raw terminal mode is enabled only
	// when it is an *os.File attached to a terminal.
	Input  io.Reader
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f pi.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader watched for the cancel key.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.Input = r }
}

// WithLogger replaces the zerolog console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application by parsing args, args[0] being the program
// name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Input: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = pi.NewDefaultFactory()
	}

	programName := "picalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	if app.Logger == nil {
		app.Logger = logging.NewLogger(zerolog.ConsoleWriter{Out: errWriter, TimeFormat: "15:04:05"}, "picalc")
	}
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// logLevel keeps the terminal clean for the spinner unless -v is given.
func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForError maps an error returned by New to an exit code, reporting
// configuration errors on w. Flag parse errors were already reported by the
// flag package.
func ExitCodeForError(err error, w io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.HandleCalculationError(err, 0, w, nil)
	}
	return apperrors.ExitErrorConfig
}
