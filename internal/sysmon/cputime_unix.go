//go:build unix

package sysmon

import (
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPUTime returns the user plus system CPU time of this process.
func ProcessCPUTime() (time.Duration, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano()), nil
}
