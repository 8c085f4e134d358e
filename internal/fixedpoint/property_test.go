package fixedpoint

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyDigits = 60

// numberFrom builds a propertyDigits number from a generated integer part and
// fractional limbs.
func numberFrom(intPart uint32, frac []uint32) *Number {
	z := New(intPart, propertyDigits)
	copy(z.limbs[1:], frac)
	return z
}

func fracGen() gopter.Gen {
	return gen.SliceOfN(LimbsFor(propertyDigits)-1, gen.UInt32())
}

// TestAddSubRoundTrip_PropertyBased verifies that (A + B) - B == A exactly
// for any pair of values whose sum fits the integer limb.
func TestAddSubRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("(A + B) - B == A", prop.ForAll(
		func(ai, bi uint32, af, bf []uint32) bool {
			a := numberFrom(ai, af)
			b := numberFrom(bi, bf)
			got := a.Clone()
			if _, err := got.Add(b); err != nil {
				t.Logf("Add: %v", err)
				return false
			}
			if _, err := got.Sub(b); err != nil {
				t.Logf("Sub: %v", err)
				return false
			}
			return got.Cmp(a) == 0
		},
		gen.UInt32Range(0, 1<<30),
		gen.UInt32Range(0, 1<<30),
		fracGen(),
		fracGen(),
	))

	properties.TestingRun(t)
}

// TestDivMulBoundedError_PropertyBased verifies that dividing then
// multiplying by the same scalar loses less than one scalar's worth of units
// in the last limb.
func TestDivMulBoundedError_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("(A / s) * s differs from A by less than s ulp", prop.ForAll(
		func(ai uint32, af []uint32, s uint32) bool {
			a := numberFrom(ai, af)
			got := a.Clone()
			if _, err := got.DivUint32(s); err != nil {
				return false
			}
			if _, err := got.MulUint32(s); err != nil {
				return false
			}
			if got.Cmp(a) > 0 {
				return false
			}
			diff := a.Clone()
			if _, err := diff.Sub(got); err != nil {
				return false
			}
			limbs := diff.Limbs()
			for _, l := range limbs[:len(limbs)-1] {
				if l != 0 {
					return false
				}
			}
			return limbs[len(limbs)-1] < s
		},
		gen.UInt32(),
		fracGen(),
		gen.UInt32Range(1, 1<<31),
	))

	properties.TestingRun(t)
}

// TestDivideByZero_PropertyBased verifies that every nonzero value rejects a
// zero divisor.
func TestDivideByZero_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("A / 0 fails with ErrDivisionByZero", prop.ForAll(
		func(ai uint32, af []uint32) bool {
			a := numberFrom(ai, af)
			if a.IsZero() {
				return true
			}
			_, err := a.DivUint32(0)
			return errors.Is(err, ErrDivisionByZero)
		},
		gen.UInt32(),
		fracGen(),
	))

	properties.TestingRun(t)
}
