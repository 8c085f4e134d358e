package fixedpoint

import "testing"

// limbSlicePoolIndexLinear is the straightforward linear search the bitwise
// index computation must agree with.
func limbSlicePoolIndexLinear(size int) int {
	for i, s := range limbSliceSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

func TestLimbSlicePoolIndex(t *testing.T) {
	t.Parallel()
	sizes := []int{1, 2, 63, 64, 65, 255, 256, 257, 1000, 1024, 1025, 4096, 16385, 262144, 1048575, 1048576, 1048577}
	for _, size := range sizes {
		if got, want := limbSlicePoolIndex(size), limbSlicePoolIndexLinear(size); got != want {
			t.Errorf("limbSlicePoolIndex(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestAcquireLimbs_Zeroed(t *testing.T) {
	t.Parallel()
	s := acquireLimbs(100)
	for i := range s {
		s[i] = 0xDEADBEEF
	}
	releaseLimbs(s)

	again := acquireLimbs(100)
	defer releaseLimbs(again)
	if len(again) != 100 {
		t.Fatalf("len = %d, want 100", len(again))
	}
	for i, l := range again {
		if l != 0 {
			t.Fatalf("limb %d = %#x, want 0", i, l)
		}
	}
}

func TestAcquireLimbs_Oversized(t *testing.T) {
	t.Parallel()
	size := limbSliceSizes[len(limbSliceSizes)-1] + 1
	s := acquireLimbs(size)
	if len(s) != size || cap(s) != size {
		t.Errorf("oversized slice len=%d cap=%d, want %d", len(s), cap(s), size)
	}
	releaseLimbs(s)
	releaseLimbs(nil)
}
