package ckks

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TaihouKai/HElib/utils/bignum"
)

func TestFloatToFixedPoint(t *testing.T) {

	t.Run("TiesAwayFromZero", func(t *testing.T) {
		coeffs, err := FloatToFixedPoint([]float64{0.5, -0.5, 1.5, -2.5, 0.49, -0}, big.NewFloat(1))
		require.NoError(t, err)
		want := []int64{1, -1, 2, -3, 0, 0}
		for i := range want {
			require.Zero(t, coeffs[i].Cmp(big.NewInt(want[i])), "index %d: %s", i, coeffs[i])
		}
	})

	t.Run("Scaled", func(t *testing.T) {
		coeffs, err := FloatToFixedPoint([]float64{0.25, -0.75, 1.0 / 3}, bignum.Exp2(8, 128))
		require.NoError(t, err)
		require.Equal(t, "64", coeffs[0].String())
		require.Equal(t, "-192", coeffs[1].String())
		require.Equal(t, "85", coeffs[2].String())
	})

	t.Run("LargeScale", func(t *testing.T) {
		// 2^80 * 1.5 does not fit in an int64
		coeffs, err := FloatToFixedPoint([]float64{1.5}, bignum.Exp2(80, 128))
		require.NoError(t, err)
		want := new(big.Int).Lsh(big.NewInt(3), 79)
		require.Zero(t, coeffs[0].Cmp(want))
	})

	t.Run("NotFinite", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := FloatToFixedPoint([]float64{0, v}, big.NewFloat(1))
			require.True(t, errors.Is(err, ErrInvalidParameter))
		}
	})
}

func TestFixedPointToFloat(t *testing.T) {
	values := FixedPointToFloat([]*big.Int{big.NewInt(64), big.NewInt(-192), big.NewInt(0)}, bignum.Exp2(8, 128))
	require.Equal(t, []float64{0.25, -0.75, 0}, values)
}

func TestErrorBound(t *testing.T) {

	// m=16, r=8
	require.InDelta(t, 8.0/512, ErrorBound(8, 8, 1), 1e-7)

	for _, degree := range []int{1, 8, 72, 2048} {
		prev := math.Inf(1)
		for r := 0.0; r <= 60; r += 2.5 {
			b := ErrorBound(degree, r, 1)
			require.Less(t, b, prev)
			require.Greater(t, b, 0.0)
			prev = b
		}
	}

	require.Greater(t, ErrorBound(8, 20, 100), ErrorBound(8, 20, 1))
}

func TestMaxAbsError(t *testing.T) {
	require.Equal(t, 0.0, MaxAbsError(nil, nil))
	require.Equal(t, 5.0, MaxAbsError([]complex128{0, 1}, []complex128{3 + 4i, 1}))
	require.Panics(t, func() { MaxAbsError([]complex128{0}, nil) })
	require.Equal(t, 5.0, InfNorm([]complex128{1, -3 - 4i, 2i}))
}
