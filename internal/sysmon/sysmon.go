// Package sysmon samples system-wide and process resource usage for the
// progress displays.
package sysmon

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64       // system-wide, 0.0 .. 100.0
	MemPercent float64       // system-wide, 0.0 .. 100.0
	ProcessCPU time.Duration // user+system CPU consumed by this process
}

// Sample collects a single snapshot. CPU uses interval=0, the delta since the
// previous call. Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if d, err := ProcessCPUTime(); err == nil {
		s.ProcessCPU = d
	}
	return s
}

// Parallelism estimates how many cores the process kept busy between two
// samples taken wall apart.
func Parallelism(before, after Stats, wall time.Duration) float64 {
	if wall <= 0 || after.ProcessCPU < before.ProcessCPU {
		return 0
	}
	return float64(after.ProcessCPU-before.ProcessCPU) / float64(wall)
}
