package ckks

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"

	"github.com/TaihouKai/HElib/utils"
	"github.com/TaihouKai/HElib/utils/bignum"
)

// FloatSlack bounds the relative floating-point error of a slot transform round trip.
const FloatSlack = 1.0 / (1 << 30)

// FloatToFixedPoint returns round(values[i] * scale) for each value.
// Ties are rounded away from zero: 0.5 -> 1, -0.5 -> -1, 2.5 -> 3.
// Returns an error wrapping ErrInvalidParameter if a value is not finite.
func FloatToFixedPoint(values []float64, scale *big.Float) (coeffs []*big.Int, err error) {

	prec := scale.Prec()
	if prec < 53 {
		prec = 53
	}
	prec += 64

	coeffs = make([]*big.Int, len(values))

	tmp := new(big.Float).SetPrec(prec)

	for i, v := range values {

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("cannot FloatToFixedPoint: values[%d]=%v is not finite: %w", i, v, ErrInvalidParameter)
		}

		tmp.SetFloat64(v)
		tmp.Mul(tmp, scale)
		coeffs[i] = bignum.RoundToInt(tmp)
	}

	return
}

// FixedPointToFloat returns coeffs[i] / scale for each coefficient, rounded to the nearest float64.
func FixedPointToFloat(coeffs []*big.Int, scale *big.Float) (values []float64) {

	prec := scale.Prec()
	if prec < 53 {
		prec = 53
	}
	prec += 64

	values = make([]float64, len(coeffs))

	tmp := new(big.Float).SetPrec(prec)

	for i, c := range coeffs {
		tmp.SetInt(c)
		tmp.Quo(tmp, scale)
		values[i], _ = tmp.Float64()
	}

	return
}

// ErrorBound returns an upper bound on ||decode(encode(v)) - v||_inf for a slot vector
// with ||v||_inf <= bound, a degree phi(m) ring and a scale 2^logScale.
//
// Decoding evaluates the coefficients at roots of unity, so the rounding errors of
// at most 1/(2 * 2^logScale) per coefficient add up to at most degree/(2 * 2^logScale).
// The second term accounts for the floating-point error of the transforms.
func ErrorBound(degree int, logScale, bound float64) float64 {
	return float64(degree)/(2*math.Exp2(logScale)) + FloatSlack*float64(degree)*utils.Max(1, bound)
}

// MaxAbsError returns max_i |want[i] - have[i]|.
// Panics if the two vectors have different lengths.
func MaxAbsError(want, have []complex128) (max float64) {

	if len(want) != len(have) {
		panic(fmt.Errorf("cannot MaxAbsError: len(want)=%d != len(have)=%d", len(want), len(have)))
	}

	for i := range want {
		max = utils.Max(max, cmplx.Abs(want[i]-have[i]))
	}

	return
}

// InfNorm returns max_i |values[i]|.
func InfNorm(values []complex128) (norm float64) {
	for _, v := range values {
		norm = utils.Max(norm, cmplx.Abs(v))
	}
	return
}
