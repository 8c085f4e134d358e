package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/picalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the digits (empty for no file output).
	OutputFile string
	// Quiet prints only the digits.
	Quiet bool
	// Verbose disables truncation.
	Verbose bool
	// ShowValue prints the digits in normal mode.
	ShowValue bool
}

// WriteResultToFile writes the digits to config.OutputFile under a short
// commented header, creating parent directories as needed.
func WriteResultToFile(digits string, jobs int, elapsed time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Pi Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Jobs: %d\n", jobs)
	fmt.Fprintf(file, "# Elapsed: %s\n", elapsed)
	fmt.Fprintf(file, "# Decimal places: %d\n", FractionalDigits(digits))
	fmt.Fprintf(file, "\n%s\n", digits)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayQuietResult prints the bare digits, for scripting.
func DisplayQuietResult(out io.Writer, digits string) {
	fmt.Fprintln(out, digits)
}

// DisplayResultWithConfig handles the quiet-mode print and the optional file
// output of a successful run. Normal-mode display goes through
// ResultPresenter.
func DisplayResultWithConfig(out io.Writer, digits string, jobs int, elapsed time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, digits)
	}
	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(digits, jobs, elapsed, algo, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
