package ckks

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TaihouKai/HElib/rlwe"
)

func TestPrecisionContext(t *testing.T) {

	// 97 has 7 bits, so its capacity is 6 bits
	small, err := rlwe.NewChain([]uint64{97})
	require.NoError(t, err)

	chain, err := rlwe.NewChainFromLiteral(testChainLiteral, 16)
	require.NoError(t, err)

	t.Run("Scale", func(t *testing.T) {
		p, err := NewPrecisionContext(8, chain)
		require.NoError(t, err)
		require.Equal(t, 8.0, p.LogScale())
		require.Equal(t, 256.0, p.Float64Scale())
		require.Equal(t, chain.MaxLevel(), p.Level())
		require.Equal(t, rlwe.ModulusChain(chain), p.Chain())

		// the returned scale is a copy
		s := p.ScaleFactor()
		s.SetInt64(1)
		require.Equal(t, 256.0, p.Float64Scale())

		p, err = NewPrecisionContext(0.5, chain)
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt2, p.Float64Scale(), 1e-15)
	})

	t.Run("Capacity", func(t *testing.T) {

		p, err := NewPrecisionContext(8, small)
		require.NoError(t, err)
		require.Equal(t, 6, p.CurrentLevelCapacityBits())
		require.True(t, errors.Is(p.ValidatePrecision(), ErrInsufficientLevel))

		p, err = NewPrecisionContext(6, small)
		require.NoError(t, err)
		require.NoError(t, p.ValidatePrecision())

		p, err = NewPrecisionContext(6.5, small)
		require.NoError(t, err)
		require.True(t, errors.Is(p.ValidatePrecision(), ErrInsufficientLevel))
	})

	t.Run("AtLevel", func(t *testing.T) {

		p, err := NewPrecisionContext(80, chain)
		require.NoError(t, err)
		require.NoError(t, p.ValidatePrecision())

		// q_0 alone has at most 60 bits of capacity
		p0, err := p.AtLevel(0)
		require.NoError(t, err)
		require.Equal(t, 0, p0.Level())
		require.Equal(t, chain.MaxLevel(), p.Level())
		require.Equal(t, bits.Len64(chain.Q()[0])-1, p0.CurrentLevelCapacityBits())
		require.True(t, errors.Is(p0.ValidatePrecision(), ErrInsufficientLevel))

		p1, err := p.AtLevel(1)
		require.NoError(t, err)
		require.NoError(t, p1.ValidatePrecision())

		_, err = p.AtLevel(-1)
		require.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = p.AtLevel(chain.Levels())
		require.True(t, errors.Is(err, ErrInvalidParameter))
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := NewPrecisionContext(r, chain)
			require.True(t, errors.Is(err, ErrInvalidParameter))
		}
		_, err := NewPrecisionContext(8, nil)
		require.True(t, errors.Is(err, ErrInvalidParameter))
	})
}
