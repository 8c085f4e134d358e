package pi

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/agbru/picalc/internal/progress"
)

// BigIntCalculator evaluates the Machin formula on integers scaled by
// 10^(digits+BigIntGuardDigits) with math/big. It is independent of the
// fixedpoint package and serves as a cross-check.
type BigIntCalculator struct{}

// Name returns the name of the algorithm.
func (BigIntCalculator) Name() string {
	return "Machin (math/big, scaled integer)"
}

// Compute implements Calculator.
func (BigIntCalculator) Compute(ctx context.Context, digits int, opts Options, report progress.Callback) (string, error) {
	if digits < 0 {
		return "", fmt.Errorf("pi: negative digit count %d", digits)
	}
	scaleDigits := digits + BigIntGuardDigits
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scaleDigits)), nil)

	major := EstimateTerms(MajorReciprocal, digits)
	minor := EstimateTerms(MinorReciprocal, digits)
	share := major / (major + minor)

	pi, err := arctanScaled(ctx, MajorMultiplicand, MajorReciprocal, scale, digits, opts, progress.Scaled(report, 0, share))
	if err != nil {
		return "", err
	}
	correction, err := arctanScaled(ctx, MinorMultiplicand, MinorReciprocal, scale, digits, opts, progress.Scaled(report, share, 1-share))
	if err != nil {
		return "", err
	}
	pi.Sub(pi, correction)

	return renderScaled(pi.String(), scaleDigits, digits, opts.separator()), nil
}

// arctanScaled returns multiplicand * atan(1/reciprocal) * scale.
func arctanScaled(ctx context.Context, multiplicand, reciprocal int64, scale *big.Int, digits int, opts Options, report progress.Callback) (*big.Int, error) {
	x := new(big.Int).Mul(scale, big.NewInt(multiplicand))
	x.Quo(x, big.NewInt(reciprocal))
	sum := new(big.Int).Set(x)

	step := big.NewInt(reciprocal * reciprocal)
	term := new(big.Int)
	divisor := new(big.Int)
	throttle := progress.NewThrottle(report)
	total := EstimateTerms(uint32(reciprocal), digits)
	checkEvery := opts.checkInterval()

	subtract := true
	for n := int64(1); ; n++ {
		if opts.Preemptible && n%int64(checkEvery) == 0 {
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

// renderScaled formats the decimal string of an integer scaled by
// 10^scaleDigits as "<int><sep><digits fractional digits>", truncating.
func renderScaled(s string, scaleDigits, digits int, sep byte) string {
	if len(s) <= scaleDigits {
		s = strings.Repeat("0", scaleDigits-len(s)+1) + s
	}
	intLen := len(s) - scaleDigits
	var b strings.Builder
	b.Grow(intLen + 1 + digits)
	b.WriteString(s[:intLen])
	b.WriteByte(sep)
	b.WriteString(s[intLen : intLen+digits])
	return b.String()
}
