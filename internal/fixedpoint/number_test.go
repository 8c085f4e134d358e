package fixedpoint

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// fromLimbs builds a number of the given precision whose leading limbs are
// set from limbs.
func fromLimbs(digits int, limbs ...uint32) *Number {
	z := New(0, digits)
	copy(z.limbs, limbs)
	return z
}

func TestLimbsFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits int
		want   int
	}{
		{0, 2},
		{1, 3},
		{9, 3},
		{10, 4},
		{20, 5},
		{100, 13},
	}
	for _, tt := range tests {
		if got := LimbsFor(tt.digits); got != tt.want {
			t.Errorf("LimbsFor(%d) = %d, want %d", tt.digits, got, tt.want)
		}
	}
}

// TestLimbsFor_NoUnderAllocation verifies that the fractional limbs always
// cover the requested digits, in particular at the precision preset
// boundaries, and that the derived constant never allocates more than the
// historical 0.104 approximation.
func TestLimbsFor_NoUnderAllocation(t *testing.T) {
	t.Parallel()
	boundaries := []int{1, 2, 9, 10, 11, 96, 97, 9999, 10000, 10001, 19999, 20000, 20001, 39999, 40000, 40001, 1_000_000}
	for _, d := range boundaries {
		fractional := LimbsFor(d) - 2
		if capacity := float64(fractional) * DigitsPerLimb; capacity < float64(d) {
			t.Errorf("digits=%d: %d fractional limbs hold only %.2f digits", d, fractional, capacity)
		}
		legacy := int(math.Ceil(float64(d)*0.104)) + 2
		if LimbsFor(d) > legacy {
			t.Errorf("digits=%d: LimbsFor=%d exceeds legacy sizing %d", d, LimbsFor(d), legacy)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	z := New(42, 30)
	if z.Digits() != 30 {
		t.Errorf("Digits() = %d, want 30", z.Digits())
	}
	if z.Len() != LimbsFor(30) {
		t.Errorf("Len() = %d, want %d", z.Len(), LimbsFor(30))
	}
	if z.IntPart() != 42 {
		t.Errorf("IntPart() = %d, want 42", z.IntPart())
	}
	for i, l := range z.Limbs()[1:] {
		if l != 0 {
			t.Errorf("limb %d = %d, want 0", i+1, l)
		}
	}
}

func TestNew_NegativeDigitsPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("New with negative digits should panic")
		}
	}()
	New(0, -1)
}

func TestCompatible(t *testing.T) {
	t.Parallel()
	a := New(1, 50)
	b := New(2, 50)
	c := New(1, 60)

	tests := []struct {
		name string
		z, x *Number
		want bool
	}{
		{"same precision distinct numbers", a, b, true},
		{"same instance", a, a, false},
		{"different precision", a, c, false},
		{"nil argument", a, nil, false},
		{"nil receiver", nil, a, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.z.Compatible(tt.x); got != tt.want {
				t.Errorf("Compatible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()
	src := fromLimbs(40, 3, 0x243F6A88, 0x85A308D3)
	dst := New(9, 40)

	if _, err := dst.Set(src); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if dst.Cmp(src) != 0 {
		t.Errorf("Set did not copy every limb: got %v, want %v", dst.Limbs(), src.Limbs())
	}

	if _, err := dst.Set(dst); !errors.Is(err, ErrIncompatiblePrecision) {
		t.Errorf("Set(self) error = %v, want ErrIncompatiblePrecision", err)
	}
	if _, err := dst.Set(New(0, 41)); !errors.Is(err, ErrIncompatiblePrecision) {
		t.Errorf("Set(other precision) error = %v, want ErrIncompatiblePrecision", err)
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	z := fromLimbs(20, 7, 1, 2, 3)
	c := z.Clone()
	if c == z || c.Cmp(z) != 0 || c.Digits() != z.Digits() {
		t.Fatalf("Clone() = %v, want an equal copy of %v", c.Limbs(), z.Limbs())
	}
	c.limbs[1] = 99
	if z.limbs[1] != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestIsZero(t *testing.T) {
	t.Parallel()
	if !New(0, 100).IsZero() {
		t.Error("New(0) should be zero")
	}
	if New(1, 100).IsZero() {
		t.Error("New(1) should not be zero")
	}
	z := New(0, 100)
	z.limbs[len(z.limbs)-1] = 1
	if z.IsZero() {
		t.Error("number with a nonzero guard limb should not be zero")
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		z, x *Number
		want int
	}{
		{"equal", fromLimbs(20, 1, 5), fromLimbs(20, 1, 5), 0},
		{"integer part decides", fromLimbs(20, 2, 0), fromLimbs(20, 1, 0xFFFFFFFF), 1},
		{"fraction decides", fromLimbs(20, 1, 4), fromLimbs(20, 1, 5), -1},
		{"different lengths padded", fromLimbs(10, 1, 5), fromLimbs(100, 1, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.z.Cmp(tt.x); got != tt.want {
				t.Errorf("Cmp() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		z    *Number
		sep  byte
		want string
	}{
		{"integer", New(7, 10), '.', "7.0000000000"},
		{"quarter", fromLimbs(12, 0, 0x40000000), '.', "0.250000000000"},
		{"one third", func() *Number { z, _ := New(1, 20).DivUint32(3); return z }(), '.', "0.33333333333333333333"},
		{"comma separator", fromLimbs(3, 2, 0x80000000), ',', "2,500"},
		{"zero digits", New(3, 0), '.', "3."},
		{"max integer part", New(math.MaxUint32, 5), '.', "4294967295.00000"},
		{"integer and fraction", func() *Number { z, _ := New(22, 6).DivUint32(7); return z }(), '.', "3.142857"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.z.Text(tt.sep); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestText_ExactDigitCount verifies that the fractional part always has
// exactly Digits() characters, independent of the integer part and of
// whether the precision is a multiple of the digit group.
func TestText_ExactDigitCount(t *testing.T) {
	t.Parallel()
	for _, digits := range []int{0, 1, 4, 5, 6, 13, 99, 100, 1001} {
		for _, ip := range []uint32{0, 3, 123456, math.MaxUint32} {
			z, _ := New(ip, digits).DivUint32(7)
			s := z.String()
			_, frac, ok := strings.Cut(s, ".")
			if !ok {
				t.Fatalf("digits=%d: no separator in %q", digits, s)
			}
			if len(frac) != digits {
				t.Errorf("digits=%d int=%d: got %d fractional digits", digits, ip, len(frac))
			}
		}
	}
}

func TestText_DoesNotModify(t *testing.T) {
	t.Parallel()
	z, _ := New(22, 50).DivUint32(7)
	before := z.Clone()
	_ = z.String()
	if z.Cmp(before) != 0 {
		t.Error("String() modified the receiver")
	}
}
