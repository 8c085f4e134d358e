//go:build !unix

package sysmon

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessCPUTime returns the user plus system CPU time of this process.
func ProcessCPUTime() (time.Duration, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	t, err := p.Times()
	if err != nil {
		return 0, err
	}
	return time.Duration((t.User + t.System) * float64(time.Second)), nil
}
