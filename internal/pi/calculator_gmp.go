//go:build gmp

// This file provides a GMP-backed calculator, compiled only with the "gmp"
// build tag so the default build does not need libgmp:
//
//	go build -tags=gmp ./cmd/picalc
//
// System requirements: libgmp-dev (Debian/Ubuntu) or `brew install gmp`.

package pi

import (
	"context"
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/picalc/internal/progress"
)

func init() {
	RegisterCalculator("gmp", func() Calculator { return GMPCalculator{} })
}

// GMPCalculator is the scaled-integer Machin evaluation of BigIntCalculator
// on GMP integers.
type GMPCalculator struct{}

// Name returns the name of the algorithm.
func (GMPCalculator) Name() string {
	return "Machin (GMP, scaled integer)"
}

// Compute implements Calculator.
func (GMPCalculator) Compute(ctx context.Context, digits int, opts Options, report progress.Callback) (string, error) {
	if digits < 0 {
		return "", fmt.Errorf("pi: negative digit count %d", digits)
	}
	scaleDigits := digits + BigIntGuardDigits
	scale := new(gmp.Int).Exp(gmp.NewInt(10), gmp.NewInt(int64(scaleDigits)), nil)

	major := EstimateTerms(MajorReciprocal, digits)
	minor := EstimateTerms(MinorReciprocal, digits)
	share := major / (major + minor)

	pi, err := gmpArctanScaled(ctx, MajorMultiplicand, MajorReciprocal, scale, digits, opts, progress.Scaled(report, 0, share))
	if err != nil {
		return "", err
	}
	correction, err := gmpArctanScaled(ctx, MinorMultiplicand, MinorReciprocal, scale, digits, opts, progress.Scaled(report, share, 1-share))
	if err != nil {
		return "", err
	}
	pi.Sub(pi, correction)

	return renderScaled(pi.String(), scaleDigits, digits, opts.separator()), nil
}

// gmpArctanScaled returns multiplicand * atan(1/reciprocal) * scale.
func gmpArctanScaled(ctx context.Context, multiplicand, reciprocal int64, scale *gmp.Int, digits int, opts Options, report progress.Callback) (*gmp.Int, error) {
	x := new(gmp.Int).Mul(scale, gmp.NewInt(multiplicand))
	x.Quo(x, gmp.NewInt(reciprocal))
	sum := new(gmp.Int).Set(x)

	step := gmp.NewInt(reciprocal * reciprocal)
	term := new(gmp.Int)
	divisor := new(gmp.Int)
	throttle := progress.NewThrottle(report)
	total := EstimateTerms(uint32(reciprocal), digits)
	checkEvery := int64(opts.checkInterval())

	subtract := true
	for n := int64(1); ; n++ {
		if opts.Preemptible && n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		x.Quo(x, step)
		term.Quo(x, divisor.SetInt64(2*n+1))
		if term.Sign() == 0 {
			break
		}
		if subtract {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		subtract = !subtract
		throttle.Report(float64(n) / total)
	}
	throttle.Done()
	return sum, nil
}
