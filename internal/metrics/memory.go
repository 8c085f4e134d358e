package metrics

import (
	"runtime"
	"sync/atomic"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by live limbs and everything else
	HeapSys     uint64 // bytes obtained from the OS for the heap
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // allocated heap objects
}

// MemoryCollector reads runtime memory statistics and remembers the largest
// heap seen across its snapshots.
type MemoryCollector struct {
	peak atomic.Uint64
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. runtime.ReadMemStats stops the
// world briefly, so callers sample it on the progress tick, not per term.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	for {
		old := mc.peak.Load()
		if m.HeapAlloc <= old || mc.peak.CompareAndSwap(old, m.HeapAlloc) {
			break
		}
	}
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapSys:     m.HeapSys,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// PeakHeapAlloc returns the largest HeapAlloc observed by Snapshot.
func (mc *MemoryCollector) PeakHeapAlloc() uint64 {
	return mc.peak.Load()
}
