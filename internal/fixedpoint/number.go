// Package fixedpoint implements unsigned fixed-point numbers with a precision
// chosen at construction time.
//
// A Number is a sequence of 32-bit limbs, most significant first. The first
// limb holds the integer part; each following limb i holds the fractional
// digit of weight 2^(-32*i). The number of limbs is derived from the
// requested count of decimal digits, plus one integer limb and one guard limb.
//
// # Ownership
//
// Operations follow the math/big convention: the receiver is mutated in
// place and returned, the argument is only read. Receiver and argument must
// be distinct numbers of the same precision (see Compatible); a value that
// must survive an operation has to be copied first with Clone or Set.
package fixedpoint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DigitsPerLimb is log10(2^32), the number of decimal digits one limb
// represents.
var DigitsPerLimb = 32 * math.Log10(2)

// LimbsPerDigit is 1/log10(2^32) ≈ 0.1038.
var LimbsPerDigit = 1 / DigitsPerLimb

// DigitGroup is the number of digits produced per multiplication when a
// number is rendered in decimal.
const DigitGroup = 5

const digitGroupScale = 100000 // 10^DigitGroup

// LimbsFor returns the limb count of a number with the given decimal
// precision: ceil(digits/log10(2^32)) fractional limbs, one integer limb and
// one guard limb.
func LimbsFor(digits int) int {
	return int(math.Ceil(float64(digits)*LimbsPerDigit)) + 2
}

// Number is an unsigned fixed-point value. The zero value is not usable;
// construct numbers with New.
type Number struct {
	digits int
	limbs  []uint32
}

// New returns a number with the given integer part and decimal precision.
// It panics if digits is negative.
func New(initial uint32, digits int) *Number {
	if digits < 0 {
		panic(fmt.Sprintf("fixedpoint: negative precision %d", digits))
	}
	z := &Number{
		digits: digits,
		limbs:  acquireLimbs(LimbsFor(digits)),
	}
	z.limbs[0] = initial
	return z
}

// Digits returns the decimal precision z was created with.
func (z *Number) Digits() int { return z.digits }

// Len returns the number of limbs, including the integer and guard limbs.
func (z *Number) Len() int { return len(z.limbs) }

// Limbs returns the limbs of z, most significant first. The slice aliases
// the internal storage and must not be modified.
func (z *Number) Limbs() []uint32 { return z.limbs }

// IntPart returns the integer limb.
func (z *Number) IntPart() uint32 { return z.limbs[0] }

// Compatible reports whether z and x may be combined by an operation: both
// non-nil, not the same number, and of equal precision.
func (z *Number) Compatible(x *Number) bool {
	if z == nil || x == nil {
		return false
	}
	if z == x {
		return false
	}
	return z.digits == x.digits
}

// Set copies x into z and returns z.
func (z *Number) Set(x *Number) (*Number, error) {
	if !z.Compatible(x) {
		return z, ErrIncompatiblePrecision
	}
	copy(z.limbs, x.limbs)
	return z, nil
}

// Clone returns a copy of z with its own storage.
func (z *Number) Clone() *Number {
	c := &Number{
		digits: z.digits,
		limbs:  acquireLimbs(len(z.limbs)),
	}
	copy(c.limbs, z.limbs)
	return c
}

// IsZero reports whether every limb of z is zero.
func (z *Number) IsZero() bool {
	for _, l := range z.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Cmp compares z and x and returns -1, 0 or +1. Numbers of different
// precision compare as if the shorter one were padded with zero limbs.
func (z *Number) Cmp(x *Number) int {
	n := max(len(z.limbs), len(x.limbs))
	for i := 0; i < n; i++ {
		a, b := limbAt(z.limbs, i), limbAt(x.limbs, i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func limbAt(limbs []uint32, i int) uint32 {
	if i < len(limbs) {
		return limbs[i]
	}
	return 0
}

// Release returns the storage of z to the limb pool. z must not be used
// afterwards.
func (z *Number) Release() {
	releaseLimbs(z.limbs)
	z.limbs = nil
}

// String renders z with a '.' separator. See Text.
func (z *Number) String() string {
	return z.Text('.')
}

// Text renders z in decimal: the integer part, sep, then exactly Digits()
// fractional digits. Digits beyond the precision are truncated, not rounded.
// z is not modified.
func (z *Number) Text(sep byte) string {
	tmp := acquireLimbs(len(z.limbs))
	defer releaseLimbs(tmp)
	copy(tmp, z.limbs)

	var b strings.Builder
	b.Grow(11 + z.digits + DigitGroup)
	b.WriteString(strconv.FormatUint(uint64(z.IntPart()), 10))
	b.WriteByte(sep)

	var group [DigitGroup]byte
	for emitted := 0; emitted < z.digits; emitted += DigitGroup {
		tmp[0] = 0
		mulLimbs(tmp, digitGroupScale)
		v := tmp[0]
		for j := DigitGroup - 1; j >= 0; j-- {
			group[j] = byte('0' + v%10)
			v /= 10
		}
		b.Write(group[:min(DigitGroup, z.digits-emitted)])
	}
	return b.String()
}
