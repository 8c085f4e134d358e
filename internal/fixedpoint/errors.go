package fixedpoint

import "errors"

var (
	// ErrIncompatiblePrecision is returned when an operation combines two
	// numbers of different precision, or a number with itself.
	ErrIncompatiblePrecision = errors.New("fixedpoint: operands have incompatible precision")

	// ErrDivisionByZero is returned by DivUint32 for a zero divisor.
	ErrDivisionByZero = errors.New("fixedpoint: division by zero")

	// ErrMagnitudeUnderflow is returned by Sub when the subtrahend is larger
	// than the receiver. Numbers are unsigned, so the result is not
	// representable; the receiver is left unchanged.
	ErrMagnitudeUnderflow = errors.New("fixedpoint: subtraction underflow")

	// ErrOverflow is returned when a result does not fit in the 32-bit
	// integer limb.
	ErrOverflow = errors.New("fixedpoint: integer part overflow")
)
