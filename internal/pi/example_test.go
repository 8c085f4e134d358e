package pi

import (
	"context"
	"fmt"
)

// ExampleMachin computes pi to 30 decimals on fixed-point numbers.
func ExampleMachin() {
	n, err := Machin(context.Background(), 30, Options{}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer n.Release()
	fmt.Println(n)
	// Output:
	// 3.141592653589793238462643383279
}

// ExampleDefaultFactory lists the built-in calculators and uses one.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()
	calc, err := factory.Get("machin")
	if err != nil {
		fmt.Println(err)
		return
	}
	digits, _ := calc.Compute(context.Background(), 10, Options{}, nil)
	fmt.Println(calc.Name())
	fmt.Println(digits)
	// Output:
	// Machin (fixed-point, base 2^32)
	// 3.1415926535
}
