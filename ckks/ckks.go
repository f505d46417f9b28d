// Package ckks implements the approximate slot encoding of the CKKS scheme over
// arbitrary cyclotomic rings: complex vectors are mapped to polynomials with integer
// coefficients through the inverse canonical embedding followed by a fixed-point
// scaling, and back.
package ckks

import (
	"errors"

	"github.com/TaihouKai/HElib/ring"
)

var (
	// ErrInvalidParameter is returned for unsupported or degenerate parameters.
	ErrInvalidParameter = ring.ErrInvalidParameter

	// ErrDimensionMismatch is returned when an input length does not match the number of slots or the degree.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInsufficientLevel is returned when the scale exceeds the capacity of the current level.
	ErrInsufficientLevel = errors.New("insufficient level")
)
