package pi

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/agbru/picalc/internal/fixedpoint"
	"github.com/agbru/picalc/internal/progress"
)

var (
	// ErrInvalidReciprocal is returned when the series would not converge or
	// reciprocal^2 does not fit in a limb.
	ErrInvalidReciprocal = errors.New("pi: reciprocal must be in [2, 65535]")

	// ErrSeriesTooLong is returned when the odd divisor of the series would
	// overflow 32 bits.
	ErrSeriesTooLong = errors.New("pi: series needs more terms than a 32-bit divisor allows")
)

// Options configures a computation.
type Options struct {
	// Preemptible makes the series loop check the context every
	// CheckInterval terms. When false the loop runs to convergence and
	// cancellation is only observed between jobs.
	Preemptible bool
	// CheckInterval overrides DefaultCheckInterval.
	CheckInterval int
	// Separator is the decimal separator of rendered results ('.' if zero).
	Separator byte
}

func (o Options) checkInterval() int {
	if o.CheckInterval > 0 {
		return o.CheckInterval
	}
	return DefaultCheckInterval
}

func (o Options) separator() byte {
	if o.Separator == 0 {
		return '.'
	}
	return o.Separator
}

// ArcTan returns multiplicand * atan(1/reciprocal) with the given decimal
// precision, using the Gregory series
//
//	atan(1/r) = 1/r - 1/(3 r^3) + 1/(5 r^5) - ...
//
// The loop stops when a term truncates to zero at the working precision, so
// the iteration count grows with digits and shrinks with reciprocal.
//
// The caller owns the returned number and should Release it.
func ArcTan(ctx context.Context, multiplicand, reciprocal uint32, digits int, opts Options, report progress.Callback) (*fixedpoint.Number, error) {
	if reciprocal < 2 || uint64(reciprocal)*uint64(reciprocal) > math.MaxUint32 {
		return nil, ErrInvalidReciprocal
	}

	x := fixedpoint.New(multiplicand, digits)
	defer x.Release()
	if _, err := x.DivUint32(reciprocal); err != nil {
		return nil, err
	}
	step := reciprocal * reciprocal

	result := x.Clone()
	term := fixedpoint.New(0, digits)
	defer term.Release()

	throttle := progress.NewThrottle(report)
	total := EstimateTerms(reciprocal, digits)
	checkEvery := opts.checkInterval()

	divisor := uint32(1)
	subtract := true
	for n := 1; ; n++ {
		if opts.Preemptible && n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				result.Release()
				return nil, err
			}
		}
		if divisor > math.MaxUint32-2 {
			result.Release()
			return nil, ErrSeriesTooLong
		}

		if _, err := x.DivUint32(step); err != nil {
			result.Release()
			return nil, err
		}
		if _, err := term.Set(x); err != nil {
			result.Release()
			return nil, err
		}
		divisor += 2
		if _, err := term.DivUint32(divisor); err != nil {
			result.Release()
			return nil, err
		}
		if term.IsZero() {
			break
		}

		var err error
		if subtract {
			_, err = result.Sub(term)
		} else {
			_, err = result.Add(term)
		}
		if err != nil {
			result.Release()
			return nil, fmt.Errorf("term %d: %w", n, err)
		}
		subtract = !subtract
		throttle.Report(float64(n) / total)
	}

	throttle.Done()
	return result, nil
}

// Machin returns pi = 16*atan(1/5) - 4*atan(1/239) with the given decimal
// precision. Progress is split between the two series in proportion to their
// estimated term counts.
//
// The caller owns the returned number and should Release it.
func Machin(ctx context.Context, digits int, opts Options, report progress.Callback) (*fixedpoint.Number, error) {
	major := EstimateTerms(MajorReciprocal, digits)
	minor := EstimateTerms(MinorReciprocal, digits)
	share := major / (major + minor)

	pi, err := ArcTan(ctx, MajorMultiplicand, MajorReciprocal, digits, opts, progress.Scaled(report, 0, share))
	if err != nil {
		return nil, fmt.Errorf("atan(1/%d): %w", MajorReciprocal, err)
	}
	correction, err := ArcTan(ctx, MinorMultiplicand, MinorReciprocal, digits, opts, progress.Scaled(report, share, 1-share))
	if err != nil {
		pi.Release()
		return nil, fmt.Errorf("atan(1/%d): %w", MinorReciprocal, err)
	}
	defer correction.Release()

	if _, err := pi.Sub(correction); err != nil {
		pi.Release()
		return nil, fmt.Errorf("combine series: %w", err)
	}
	return pi, nil
}
