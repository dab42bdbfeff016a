package mathutil

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned by Div when the denominator is zero.
var ErrDivideByZero = errors.New("float division by zero")

// Div returns a / b. Go float division never traps, so a zero
// denominator is reported here instead of surfacing later as Inf or NaN.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%g / %g: %w", a, b, ErrDivideByZero)
	}
	return a / b, nil
}
