// Command picalc computes pi to a fixed number of decimal places several
// times, concurrently or one job after the other, and checks that every job
// produced the same digits.
package main

import (
	"context"
	"os"

	"github.com/agbru/picalc/internal/app"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		os.Exit(app.ExitCodeForError(err, os.Stderr))
	}
	os.Exit(application.Run(context.Background(), os.Stdout))
}
