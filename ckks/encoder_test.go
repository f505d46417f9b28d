package ckks

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TaihouKai/HElib/ring"
	"github.com/TaihouKai/HElib/rlwe"
	"github.com/TaihouKai/HElib/utils/sampling"
)

func TestEncoderAtPrecision(t *testing.T) {

	params, err := NewParametersFromLiteral(ParametersLiteral{M: 15, LogScale: 20, Chain: testChainLiteral})
	require.NoError(t, err)

	ecd, err := NewEncoder(params)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNGFromSeed([]byte("at-precision"), "encoder")
	require.NoError(t, err)

	want, err := ecd.RandomVector(Complex, prng)
	require.NoError(t, err)

	t.Run("LowerScale", func(t *testing.T) {
		prec, err := NewPrecisionContext(10, params.Chain())
		require.NoError(t, err)

		pt, err := ecd.EncodeAtPrecision(want, prec)
		require.NoError(t, err)

		have := make([]complex128, ecd.Slots())
		require.NoError(t, ecd.DecodeAtPrecision(pt, prec, have))
		require.LessOrEqual(t, MaxAbsError(want, have), ErrorBound(params.Degree(), 10, 1))

		// decoding at the wrong scale rescales the slots by 2^(10-20)
		require.NoError(t, ecd.Decode(pt, have))
		bound := ErrorBound(params.Degree(), 20, 1)
		for i := range want {
			require.LessOrEqual(t, cmplx.Abs(want[i]/1024-have[i]), bound)
		}
	})

	t.Run("InsufficientLevel", func(t *testing.T) {
		small, err := rlwe.NewChain([]uint64{97})
		require.NoError(t, err)

		prec, err := NewPrecisionContext(8, small)
		require.NoError(t, err)

		_, err = ecd.EncodeAtPrecision(want, prec)
		require.True(t, errors.Is(err, ErrInsufficientLevel))

		prec, err = NewPrecisionContext(6, small)
		require.NoError(t, err)

		pt, err := ecd.EncodeAtPrecision(want, prec)
		require.NoError(t, err)
		require.Equal(t, params.Degree(), pt.N())
	})

	t.Run("NilContext", func(t *testing.T) {
		_, err := ecd.EncodeAtPrecision(want, nil)
		require.True(t, errors.Is(err, ErrInvalidParameter))

		pt, err := ecd.Encode(want)
		require.NoError(t, err)

		have := make([]complex128, ecd.Slots())
		require.True(t, errors.Is(ecd.DecodeAtPrecision(pt, nil, have), ErrInvalidParameter))
	})

	t.Run("Accessors", func(t *testing.T) {
		require.Equal(t, params.Slots(), ecd.Slots())
		require.Equal(t, params.Degree(), ecd.Degree())
		require.True(t, params.Structure().Equal(ecd.Structure()))
		require.IsType(t, &NaiveTransform{}, ecd.Transform())
		require.Equal(t, params.LogScale(), ecd.PrecisionContext().LogScale())

		cpy := ecd.ShallowCopy()
		require.Equal(t, ecd.Transform(), cpy.Transform())
		require.Equal(t, ecd.PrecisionContext(), cpy.PrecisionContext())
	})
}

func TestNewEncoderFromTransform(t *testing.T) {

	s16, err := ring.NewStructure(16)
	require.NoError(t, err)
	s32, err := ring.NewStructure(32)
	require.NoError(t, err)

	chain, err := rlwe.NewChainFromLiteral(testChainLiteral, 16)
	require.NoError(t, err)

	prec, err := NewPrecisionContext(20, chain)
	require.NoError(t, err)

	tr, err := NewNaiveTransform(s16)
	require.NoError(t, err)

	ecd, err := NewEncoderFromTransform(s16, tr, prec)
	require.NoError(t, err)
	require.Equal(t, 4, ecd.Slots())

	_, err = NewEncoderFromTransform(s32, tr, prec)
	require.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = NewEncoderFromTransform(s16, nil, prec)
	require.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = NewEncoderFromTransform(s16, tr, nil)
	require.True(t, errors.Is(err, ErrInvalidParameter))
}
