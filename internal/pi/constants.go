package pi

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Machin Formula Constants
// ─────────────────────────────────────────────────────────────────────────────
//
//	pi = 16*atan(1/5) - 4*atan(1/239)
//
// The multiplicands fold in the leading factor 4 of pi/4.

const (
	// MajorMultiplicand and MajorReciprocal define the dominant term 16*atan(1/5).
	MajorMultiplicand = 16
	MajorReciprocal   = 5

	// MinorMultiplicand and MinorReciprocal define the correction term 4*atan(1/239).
	MinorMultiplicand = 4
	MinorReciprocal   = 239
)

const (
	// DefaultCheckInterval is the number of series terms between two
	// context checks when Options.Preemptible is set.
	DefaultCheckInterval = 64

	// BigIntGuardDigits is the number of extra decimal digits carried by the
	// scaled-integer calculators to absorb truncation error.
	BigIntGuardDigits = 10
)

// EstimateTerms returns the approximate number of series terms needed to
// evaluate atan(1/reciprocal) to the given number of digits: each term
// shrinks by reciprocal^2.
func EstimateTerms(reciprocal uint32, digits int) float64 {
	if reciprocal < 2 || digits <= 0 {
		return 1
	}
	return math.Max(1, float64(digits)/(2*math.Log10(float64(reciprocal))))
}
