package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/ui"
)

// PrintExecutionConfig displays the run parameters and the environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %s%d%s decimal places of pi %s%d%s times with the %s%s%s algorithm.\n",
		ui.ColorMagenta(), cfg.Digits, ui.ColorReset(),
		ui.ColorMagenta(), cfg.Jobs, ui.ColorReset(),
		ui.ColorGreen(), cfg.Algo, ui.ColorReset())
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Timeout: %s%s%s.\n", ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the scheduling mode and how to cancel.
func PrintExecutionMode(cfg config.AppConfig, out io.Writer) {
	var desc string
	switch {
	case cfg.Sequential():
		desc = "Sequential, one job at a time"
	case cfg.Workers > 0:
		desc = fmt.Sprintf("Parallel with at most %s%d%s workers", ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	default:
		desc = "Parallel, all jobs at once"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", desc)
	if cfg.Preempt {
		fmt.Fprintf(out, "Cancellation interrupts running jobs.\n")
	}
	fmt.Fprintf(out, "Press %sc%s to cancel.\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
