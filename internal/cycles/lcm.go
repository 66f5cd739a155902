package cycles

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrOverflow is returned when an LCM does not fit the result type.
var ErrOverflow = errors.New("least common multiple overflows")

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD[T constraints.Unsigned](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of values. It is 1 for no values and
// 0 if any value is 0.
func LCM[T constraints.Unsigned](values ...T) (T, error) {
	var acc T = 1
	for _, v := range values {
		if v == 0 || acc == 0 {
			acc = 0
			continue
		}
		m := acc / GCD(acc, v)
		next := m * v
		if next/v != m {
			return 0, ErrOverflow
		}
		acc = next
	}
	return acc, nil
}
