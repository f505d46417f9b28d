package ring

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoly(t *testing.T) {

	p0 := NewPolyFromInt64([]int64{1, -2, 3, 0})
	p1 := NewPolyFromInt64([]int64{4, 5, -6, 0})

	require.Equal(t, 4, p0.N())
	require.Equal(t, 2, p0.Degree())
	require.Equal(t, -1, NewPoly(8).Degree())

	t.Run("CopyNew", func(t *testing.T) {
		c := p0.CopyNew()
		require.True(t, c.Equal(p0))
		c.Coeffs[0].SetInt64(7)
		require.False(t, c.Equal(p0))
		require.Equal(t, int64(1), p0.Coeffs[0].Int64())
	})

	t.Run("Add", func(t *testing.T) {
		p := NewPoly(4)
		p.Add(p0, p1)
		coeffs, err := p.Int64()
		require.NoError(t, err)
		require.Equal(t, []int64{5, 3, -3, 0}, coeffs)
		require.Panics(t, func() { p.Add(p0, NewPoly(3)) })
	})

	t.Run("MulScalar", func(t *testing.T) {
		p := NewPoly(4)
		p.MulScalar(p0, big.NewInt(-3))
		coeffs, err := p.Int64()
		require.NoError(t, err)
		require.Equal(t, []int64{-3, 6, -9, 0}, coeffs)
	})

	t.Run("Int64/Overflow", func(t *testing.T) {
		p := NewPolyFromInt64([]int64{math.MaxInt64, math.MinInt64})
		require.Equal(t, 63, p.MaxBitLen())
		_, err := p.Int64()
		require.NoError(t, err)

		p.Coeffs[0].Add(p.Coeffs[0], big.NewInt(1))
		_, err = p.Int64()
		require.Error(t, err)
	})

	t.Run("Equal", func(t *testing.T) {
		require.False(t, p0.Equal(nil))
		require.False(t, p0.Equal(NewPoly(3)))
		require.True(t, NewPoly(3).Equal(NewPoly(3)))
	})
}
