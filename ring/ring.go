// Package ring implements the algebraic structure of the cyclotomic ring Z[X]/(Phi_m(X)):
// the factorization of m, the decomposition of (Z/mZ)^* into cyclic groups, and the
// set of slot root exponents on which encoded polynomials are evaluated.
// It also provides NTT-friendly prime generation and a container for polynomials
// with arbitrary precision integer coefficients.
package ring

import (
	"errors"
)

// MaxCyclotomicIndex is the largest cyclotomic index m accepted by NewStructure.
const MaxCyclotomicIndex = 1 << 20

// GaloisGen is the generator of the largest cyclic subgroup of (Z/2^eZ)^* for e >= 3.
const GaloisGen int = 5

// ErrInvalidParameter is returned when a parameter is outside of its domain.
var ErrInvalidParameter = errors.New("invalid parameter")
