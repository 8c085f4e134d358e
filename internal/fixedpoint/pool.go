// This file provides limb slice pooling to reduce GC pressure when many
// jobs allocate and discard numbers of the same precision.

package fixedpoint

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Limb Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// limbSlicePools pools []uint32 slices by size class.
// Size classes are powers of 4 from 64 to 1M limbs; 1M limbs covers roughly
// ten million decimal digits.
var limbSlicePools = [...]sync.Pool{
	{New: func() any { return make([]uint32, 64) }},
	{New: func() any { return make([]uint32, 256) }},
	{New: func() any { return make([]uint32, 1024) }},
	{New: func() any { return make([]uint32, 4096) }},
	{New: func() any { return make([]uint32, 16384) }},
	{New: func() any { return make([]uint32, 65536) }},
	{New: func() any { return make([]uint32, 262144) }},
	{New: func() any { return make([]uint32, 1048576) }},
}

// limbSliceSizes defines the size classes for limb slice pools.
var limbSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// limbSlicePoolIndex returns the pool index for a given size, or -1 if the
// size is too large for pooling.
//
// limbSliceSizes are powers of 4 starting from 4^3 = 64: index i holds size
// 4^(i+3), so bits.Len(size-1) maps directly to the index.
func limbSlicePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > limbSliceSizes[len(limbSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireLimbs returns a zeroed limb slice of exactly the given length.
// Its capacity may be larger. Release it with releaseLimbs.
func acquireLimbs(size int) []uint32 {
	idx := limbSlicePoolIndex(size)
	if idx < 0 {
		return make([]uint32, size)
	}
	slice := limbSlicePools[idx].Get().([]uint32)
	clear(slice)
	return slice[:size]
}

// releaseLimbs returns a limb slice to its pool. Slices whose capacity does
// not match a size class were allocated directly and are left to the GC.
// Safe to call with nil.
func releaseLimbs(slice []uint32) {
	if slice == nil {
		return
	}
	c := cap(slice)
	idx := limbSlicePoolIndex(c)
	if idx >= 0 && limbSliceSizes[idx] == c {
		limbSlicePools[idx].Put(slice[:c])
	}
}
