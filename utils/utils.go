// Package utils implements various helper functions.
package utils

import (
	"math/bits"
)

// GCD computes the greatest common divisor between a and b.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// Log2 returns the base-two logarithm of x rounded down.
// Returns -1 for x = 0.
func Log2(x uint64) int {
	return bits.Len64(x) - 1
}
