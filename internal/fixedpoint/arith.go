package fixedpoint

import "math/bits"

// Add sets z to z + x and returns z.
//
// Only limbs up to the last nonzero limb of x are visited. If the sum does
// not fit in the integer limb, z is restored and ErrOverflow is returned.
func (z *Number) Add(x *Number) (*Number, error) {
	if !z.Compatible(x) {
		return z, ErrIncompatiblePrecision
	}
	top := lastNonZero(x.limbs)
	if top < 0 {
		return z, nil
	}
	if carry := addLimbs(z.limbs, x.limbs, top); carry != 0 {
		subLimbs(z.limbs, x.limbs, top)
		return z, ErrOverflow
	}
	return z, nil
}

// Sub sets z to z - x and returns z.
//
// Numbers are unsigned: if x > z the borrow out of the integer limb is
// detected, z is restored and ErrMagnitudeUnderflow is returned.
func (z *Number) Sub(x *Number) (*Number, error) {
	if !z.Compatible(x) {
		return z, ErrIncompatiblePrecision
	}
	top := lastNonZero(x.limbs)
	if top < 0 {
		return z, nil
	}
	if borrow := subLimbs(z.limbs, x.limbs, top); borrow != 0 {
		addLimbs(z.limbs, x.limbs, top)
		return z, ErrMagnitudeUnderflow
	}
	return z, nil
}

// MulUint32 sets z to z * s and returns z.
//
// If the product does not fit in the integer limb, ErrOverflow is returned
// and the integer limb holds the product modulo 2^32.
func (z *Number) MulUint32(s uint32) (*Number, error) {
	if carry := mulLimbs(z.limbs, s); carry != 0 {
		return z, ErrOverflow
	}
	return z, nil
}

// DivUint32 sets z to z / s, truncated at the last limb, and returns z.
func (z *Number) DivUint32(s uint32) (*Number, error) {
	if s == 0 {
		return z, ErrDivisionByZero
	}
	divLimbs(z.limbs, s)
	return z, nil
}

// lastNonZero returns the highest index holding a nonzero limb, or -1.
func lastNonZero(limbs []uint32) int {
	i := len(limbs) - 1
	for i >= 0 && limbs[i] == 0 {
		i--
	}
	return i
}

// firstNonZero returns the lowest index holding a nonzero limb, or
// len(limbs).
func firstNonZero(limbs []uint32) int {
	i := 0
	for i < len(limbs) && limbs[i] == 0 {
		i++
	}
	return i
}

// addLimbs adds x[0..top] into z[0..top] and returns the carry out of z[0].
func addLimbs(z, x []uint32, top int) uint32 {
	var carry uint32
	for i := top; i >= 0; i-- {
		z[i], carry = bits.Add32(z[i], x[i], carry)
	}
	return carry
}

// subLimbs subtracts x[0..top] from z[0..top] and returns the borrow out of
// z[0].
func subLimbs(z, x []uint32, top int) uint32 {
	var borrow uint32
	for i := top; i >= 0; i-- {
		z[i], borrow = bits.Sub32(z[i], x[i], borrow)
	}
	return borrow
}

// mulLimbs multiplies z by s in place and returns the carry out of z[0].
func mulLimbs(z []uint32, s uint32) uint32 {
	var carry uint32
	for i := lastNonZero(z); i >= 0; i-- {
		hi, lo := bits.Mul32(z[i], s)
		var c uint32
		z[i], c = bits.Add32(lo, carry, 0)
		carry = hi + c
	}
	return carry
}

// divLimbs divides z by s in place, starting at the first nonzero limb and
// carrying each remainder into the high half of the next dividend. The final
// remainder is returned.
func divLimbs(z []uint32, s uint32) uint32 {
	var rem uint32
	for i := firstNonZero(z); i < len(z); i++ {
		z[i], rem = bits.Div32(rem, z[i], s)
	}
	return rem
}
