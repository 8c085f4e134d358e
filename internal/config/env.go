package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether the named flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride maps one PICALC_ variable to the flag it shadows.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func durationOverride(dst func(*AppConfig) *time.Duration) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	{"JOBS", "jobs", intOverride(func(c *AppConfig) *int { return &c.Jobs })},
	{"DIGITS", "digits", intOverride(func(c *AppConfig) *int { return &c.Digits })},
	{"WORKERS", "workers", intOverride(func(c *AppConfig) *int { return &c.Workers })},

	{"TIMEOUT", "timeout", durationOverride(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"TICK", "tick", durationOverride(func(c *AppConfig) *time.Duration { return &c.Tick })},

	{"PRECISION", "precision", func(c *AppConfig, v string) { c.Precision = v }},
	{"MODE", "mode", func(c *AppConfig, v string) { c.Mode = strings.ToLower(v) }},
	{"ALGO", "algo", func(c *AppConfig, v string) { c.Algo = v }},
	{"OUTPUT", "o", func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_ADDR", "metrics-addr", func(c *AppConfig, v string) { c.MetricsAddr = v }},

	{"PREEMPT", "preempt", boolOverride(func(c *AppConfig) *bool { return &c.Preempt })},
	{"QUIET", "q", boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", "v", boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"TUI", "tui", boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides gives CLI flags > environment > defaults priority.
// NO_COLOR is honored separately by the ui package.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
