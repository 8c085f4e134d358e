package pi

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
)

// knownPi holds the first 100 decimals of pi.
const knownPi = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

func TestMachin_KnownDigits(t *testing.T) {
	t.Parallel()
	for _, digits := range []int{1, 5, 20, 21, 50, 99, 100} {
		n, err := Machin(context.Background(), digits, Options{}, nil)
		if err != nil {
			t.Fatalf("Machin(%d) error: %v", digits, err)
		}
		got := n.String()
		n.Release()
		if want := knownPi[:2+digits]; got != want {
			t.Errorf("Machin(%d) = %s, want %s", digits, got, want)
		}
	}
}

func TestArcTan_MatchesFloat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		multiplicand, reciprocal uint32
	}{
		{1, 2},
		{1, 3},
		{16, 5},
		{4, 239},
		{1, 65535},
	}
	for _, tt := range tests {
		n, err := ArcTan(context.Background(), tt.multiplicand, tt.reciprocal, 40, Options{}, nil)
		if err != nil {
			t.Fatalf("ArcTan(%d, %d) error: %v", tt.multiplicand, tt.reciprocal, err)
		}
		s := n.String()
		n.Release()
		got, err := strconv.ParseFloat(s[:20], 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", s, err)
		}
		want := float64(tt.multiplicand) * math.Atan(1/float64(tt.reciprocal))
		if math.Abs(got-want) > 1e-14*math.Max(1, want) {
			t.Errorf("ArcTan(%d, %d) = %s, want ≈ %.17g", tt.multiplicand, tt.reciprocal, s, want)
		}
	}
}

func TestArcTan_InvalidReciprocal(t *testing.T) {
	t.Parallel()
	for _, r := range []uint32{0, 1, 65536, math.MaxUint32} {
		if _, err := ArcTan(context.Background(), 1, r, 10, Options{}, nil); !errors.Is(err, ErrInvalidReciprocal) {
			t.Errorf("ArcTan(reciprocal=%d) error = %v, want ErrInvalidReciprocal", r, err)
		}
	}
}

// TestMachin_Progress verifies that progress is monotonic and completes.
func TestMachin_Progress(t *testing.T) {
	t.Parallel()
	var values []float64
	n, err := Machin(context.Background(), 2000, Options{}, func(v float64) {
		values = append(values, v)
	})
	if err != nil {
		t.Fatalf("Machin error: %v", err)
	}
	n.Release()

	if len(values) < 10 {
		t.Fatalf("expected regular progress reports, got %d", len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("progress went backwards at %d: %v -> %v", i, values[i-1], values[i])
		}
	}
	if last := values[len(values)-1]; math.Abs(last-1) > 1e-9 {
		t.Errorf("final progress = %v, want 1", last)
	}
}

// TestMachin_CancellationIsBoundaryOnly verifies that by default a cancelled
// context does not interrupt the series.
func TestMachin_CancellationIsBoundaryOnly(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Machin(ctx, 500, Options{}, nil)
	if err != nil {
		t.Fatalf("non-preemptible Machin should ignore cancellation, got %v", err)
	}
	n.Release()
}

func TestMachin_Preemptible(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Machin(ctx, 5000, Options{Preemptible: true, CheckInterval: 8}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("preemptible Machin error = %v, want context.Canceled", err)
	}
}

func TestEstimateTerms(t *testing.T) {
	t.Parallel()
	if got := EstimateTerms(10, 1000); math.Abs(got-500) > 1e-9 {
		t.Errorf("EstimateTerms(10, 1000) = %v, want 500", got)
	}
	if got := EstimateTerms(1, 1000); got != 1 {
		t.Errorf("EstimateTerms(1, 1000) = %v, want 1", got)
	}
	if got := EstimateTerms(5, 0); got != 1 {
		t.Errorf("EstimateTerms(5, 0) = %v, want 1", got)
	}
}
