// Package config parses the command-line and environment configuration of
// picalc into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "PICALC_"

// Run modes.
const (
	ModeParallel   = "parallel"
	ModeSequential = "sequential"
)

// Precision presets, in fractional decimal digits.
const (
	PrecisionLow    = 10000
	PrecisionMedium = 20000
	PrecisionHigh   = 40000
)

var presets = map[string]int{
	"low":    PrecisionLow,
	"medium": PrecisionMedium,
	"high":   PrecisionHigh,
}

// Defaults.
const (
	DefaultJobs      = 6
	DefaultPrecision = "medium"
	DefaultMode      = ModeParallel
	DefaultTimeout   = 30 * time.Second
	DefaultAlgo      = "machin"
	DefaultTick      = 200 * time.Millisecond
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Jobs is the number of identical pi computations to run.
	Jobs int
	// Digits is the number of fractional digits per job. When zero after
	// parsing, Precision selects a preset.
	Digits int
	// Precision is the preset name used when Digits is not given.
	Precision string
	// Mode is ModeParallel or ModeSequential.
	Mode string
	// Workers bounds parallel mode concurrency; 0 runs every job at once.
	Workers int
	// Timeout is the overall run deadline; 0 disables it.
	Timeout time.Duration
	// Algo names the calculator, see pi.DefaultFactory.
	Algo string
	// Preempt lets the series loops observe cancellation mid-computation.
	Preempt bool
	// Tick is the progress refresh interval.
	Tick time.Duration
	// ShowValue prints the computed digits.
	ShowValue bool
	// OutputFile receives the digits when set.
	OutputFile string
	Quiet      bool
	Verbose    bool
	TUI        bool
	NoColor    bool
	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string
	Version     bool
}

// RunMode parses Mode into the orchestrator's scheduling mode.
func (c AppConfig) RunMode() (orchestration.Mode, error) {
	m, err := orchestration.ParseMode(c.Mode)
	if err != nil {
		return 0, apperrors.NewConfigError("unknown mode %q (want %s or %s)", c.Mode, ModeParallel, ModeSequential)
	}
	return m, nil
}

// Sequential reports whether the jobs run one after the other.
func (c AppConfig) Sequential() bool {
	m, err := c.RunMode()
	return err == nil && m == orchestration.Sequential
}

// Validate checks the semantic validity of the configuration.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Jobs < 1 {
		return apperrors.NewConfigError("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Digits < 0 {
		return apperrors.NewConfigError("digits must be non-negative, got %d", c.Digits)
	}
	if _, err := c.RunMode(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must be non-negative, got %s", c.Timeout)
	}
	if c.Tick <= 0 {
		return apperrors.NewConfigError("tick must be positive, got %s", c.Tick)
	}
	if len(availableAlgos) > 0 && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ResolvePrecision maps a preset name to its digit count.
func ResolvePrecision(name string) (int, error) {
	if d, ok := presets[strings.ToLower(name)]; ok {
		return d, nil
	}
	return 0, apperrors.NewConfigError("unknown precision %q (want low, medium or high)", name)
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applying PICALC_ environment overrides to flags that were not set. Usage
// and parse errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	fs.IntVar(&cfg.Jobs, "jobs", DefaultJobs, "Number of pi computations to run.")
	fs.IntVar(&cfg.Digits, "digits", 0, "Fractional digits per job (overrides -precision).")
	fs.StringVar(&cfg.Precision, "precision", DefaultPrecision, "Precision preset: low, medium or high.")
	fs.StringVar(&cfg.Mode, "mode", DefaultMode, "Execution mode: parallel or sequential.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Maximum concurrent jobs in parallel mode (0 = all).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Overall deadline (0 disables it).")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Algorithm: %s.", strings.Join(availableAlgos, ", ")))
	fs.BoolVar(&cfg.Preempt, "preempt", false, "Let running jobs stop mid-series on cancellation.")
	fs.DurationVar(&cfg.Tick, "tick", DefaultTick, "Progress refresh interval.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Print the computed digits.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the computed digits to a file.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: print only the result.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Interactive dashboard.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.Version, "version", false, "Print version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)

	if cfg.Version {
		return cfg, nil
	}
	if cfg.Digits == 0 && !isFlagSet(fs, "digits") {
		digits, err := ResolvePrecision(cfg.Precision)
		if err != nil {
			return AppConfig{}, err
		}
		cfg.Digits = digits
	}
	if err := cfg.Validate(availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
