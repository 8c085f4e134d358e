package pi

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/picalc/internal/progress"
)

// Calculator computes the decimal expansion of pi.
type Calculator interface {
	// Name returns a human readable description of the implementation.
	Name() string
	// Compute renders pi with exactly digits fractional digits. Digits past
	// the precision are truncated.
	Compute(ctx context.Context, digits int, opts Options, report progress.Callback) (string, error)
}

// FixedPointCalculator evaluates the Machin formula on fixedpoint numbers.
type FixedPointCalculator struct{}

// Name returns the name of the algorithm.
func (FixedPointCalculator) Name() string {
	return "Machin (fixed-point, base 2^32)"
}

// Compute implements Calculator.
func (FixedPointCalculator) Compute(ctx context.Context, digits int, opts Options, report progress.Callback) (string, error) {
	if digits < 0 {
		return "", fmt.Errorf("pi: negative digit count %d", digits)
	}
	n, err := Machin(ctx, digits, opts, report)
	if err != nil {
		return "", err
	}
	defer n.Release()
	return n.Text(opts.separator()), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Calculator{
		"machin": func() Calculator { return FixedPointCalculator{} },
		"bigint": func() Calculator { return BigIntCalculator{} },
	}
)

// RegisterCalculator makes a calculator available to factories created
// afterwards. It is meant to be called from init functions of optional,
// build-tagged implementations.
func RegisterCalculator(name string, ctor func() Calculator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// CalculatorFactory resolves calculators by name.
type CalculatorFactory interface {
	Get(name string) (Calculator, error)
	List() []string
}

// DefaultFactory is a CalculatorFactory backed by the registered calculators.
type DefaultFactory struct {
	mu    sync.Mutex
	ctors map[string]func() Calculator
	cache map[string]Calculator
}

// NewDefaultFactory returns a factory holding every registered calculator.
func NewDefaultFactory() *DefaultFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f := &DefaultFactory{
		ctors: make(map[string]func() Calculator, len(registry)),
		cache: make(map[string]Calculator),
	}
	for name, ctor := range registry {
		f.ctors[name] = ctor
	}
	return f
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.cache[name]; ok {
		return c, nil
	}
	ctor, ok := f.ctors[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q", name)
	}
	c := ctor()
	f.cache[name] = c
	return c, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
