package ckks

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TaihouKai/HElib/ring"
	"github.com/TaihouKai/HElib/utils/sampling"
)

func newTestTransform(t *testing.T, m int, backend Backend) (*ring.Structure, Transform) {
	s, err := ring.NewStructure(m)
	require.NoError(t, err)
	tr, err := NewTransform(s, backend)
	require.NoError(t, err)
	return s, tr
}

func randomSlots(t *testing.T, n int, seed string, realOnly bool) (z []complex128) {
	prng, err := sampling.NewKeyedPRNGFromSeed([]byte(seed), "transform")
	require.NoError(t, err)
	source := sampling.NewSource(prng)
	z = make([]complex128, n)
	for i := range z {
		if realOnly {
			z[i] = complex(source.Float64(-1, 1), 0)
		} else {
			z[i] = source.Complex128(-1, 1)
		}
	}
	return
}

func TestTransform(t *testing.T) {

	for _, m := range []int{2, 3, 4, 5, 8, 9, 12, 15, 16, 21, 28, 32, 35, 45, 64, 91, 128} {

		for _, backend := range []Backend{FFT, Naive} {

			s, err := ring.NewStructure(m)
			require.NoError(t, err)

			if backend == FFT && !HasFFT(s) {
				continue
			}

			t.Run(fmt.Sprintf("M=%d/Backend=%s", m, backend), func(t *testing.T) {

				_, tr := newTestTransform(t, m, backend)

				require.Equal(t, s.Slots(), tr.Slots())
				require.Equal(t, s.Degree(), tr.Degree())

				z := randomSlots(t, tr.Slots(), fmt.Sprintf("%d", m), m == 2)

				coeffs, err := tr.Forward(z)
				require.NoError(t, err)
				require.Len(t, coeffs, s.Degree())

				// the coefficients evaluate to z at the slot roots zeta^T[i]
				for i := 0; i < s.Slots(); i++ {
					var acc complex128
					for k, c := range coeffs {
						angle := 2 * math.Pi * float64((s.SlotRoot(i)*k)%m) / float64(m)
						acc += complex(c, 0) * cmplx.Rect(1, angle)
					}
					require.InDelta(t, 0, cmplx.Abs(acc-z[i]), 1e-8, "slot %d", i)
				}

				have, err := tr.Inverse(coeffs)
				require.NoError(t, err)
				require.LessOrEqual(t, MaxAbsError(z, have), 1e-8)

				_, err = tr.Forward(make([]complex128, tr.Slots()+1))
				require.True(t, errors.Is(err, ErrDimensionMismatch))

				_, err = tr.Inverse(make([]float64, tr.Degree()-1))
				require.True(t, errors.Is(err, ErrDimensionMismatch))
			})
		}
	}
}

func TestTransformBackendsAgree(t *testing.T) {

	for _, m := range []int{4, 8, 16, 32, 64, 128, 256} {

		t.Run(fmt.Sprintf("M=%d", m), func(t *testing.T) {

			_, fft := newTestTransform(t, m, FFT)
			_, naive := newTestTransform(t, m, Naive)

			z := randomSlots(t, fft.Slots(), fmt.Sprintf("agree/%d", m), false)

			c0, err := fft.Forward(z)
			require.NoError(t, err)
			c1, err := naive.Forward(z)
			require.NoError(t, err)

			require.InDeltaSlice(t, c0, c1, 1e-8)

			z0, err := fft.Inverse(c0)
			require.NoError(t, err)
			z1, err := naive.Inverse(c0)
			require.NoError(t, err)

			require.LessOrEqual(t, MaxAbsError(z0, z1), 1e-8)
		})
	}
}

func TestTransformM2DiscardsImaginary(t *testing.T) {

	_, tr := newTestTransform(t, 2, Auto)

	coeffs, err := tr.Forward([]complex128{complex(0.75, 0.5)})
	require.NoError(t, err)
	require.Equal(t, []float64{0.75}, coeffs)

	z, err := tr.Inverse(coeffs)
	require.NoError(t, err)
	require.Equal(t, []complex128{0.75}, z)
}

func TestNewTransform(t *testing.T) {

	s, err := ring.NewStructure(16)
	require.NoError(t, err)

	tr, err := NewTransform(s, Auto)
	require.NoError(t, err)
	require.IsType(t, &FFTTransform{}, tr)

	tr, err = NewTransform(s, Naive)
	require.NoError(t, err)
	require.IsType(t, &NaiveTransform{}, tr)

	for _, m := range []int{2, 15, 36} {
		s, err = ring.NewStructure(m)
		require.NoError(t, err)

		tr, err = NewTransform(s, Auto)
		require.NoError(t, err)
		require.IsType(t, &NaiveTransform{}, tr)

		_, err = NewTransform(s, FFT)
		require.True(t, errors.Is(err, ErrInvalidParameter))
	}

	_, err = NewTransform(s, Backend(7))
	require.True(t, errors.Is(err, ErrInvalidParameter))

	// phi(4099) = 4098 > MaxNaiveDegree
	s, err = ring.NewStructure(4099)
	require.NoError(t, err)
	_, err = NewNaiveTransform(s)
	require.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestBackendJSON(t *testing.T) {

	for _, b := range []Backend{Auto, FFT, Naive} {
		data, err := json.Marshal(b)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%q", b.String()), string(data))

		var b2 Backend
		require.NoError(t, json.Unmarshal(data, &b2))
		require.Equal(t, b, b2)
	}

	var b Backend
	require.Error(t, json.Unmarshal([]byte(`"GPU"`), &b))
	require.Error(t, json.Unmarshal([]byte(`1`), &b))

	_, err := json.Marshal(Backend(9))
	require.Error(t, err)
	require.Equal(t, "Unknown", Backend(9).String())
}

func TestGetRootsComplex128(t *testing.T) {
	for _, m := range []int{3, 4, 15, 16, 64} {
		roots := GetRootsComplex128(m)
		require.Len(t, roots, m+1)
		for k := range roots {
			require.InDelta(t, 0, cmplx.Abs(roots[k]-cmplx.Rect(1, 2*math.Pi*float64(k)/float64(m))), 1e-14, "m=%d k=%d", m, k)
		}
	}
}

func TestInvertMatrix(t *testing.T) {

	a := [][]complex128{{2, 1i}, {1, 3}}
	inv, err := invertMatrix(a)
	require.NoError(t, err)

	for i := range a {
		for j := range a {
			var acc complex128
			for k := range a {
				acc += a[i][k] * inv[k][j]
			}
			want := complex128(0)
			if i == j {
				want = 1
			}
			require.InDelta(t, 0, cmplx.Abs(acc-want), 1e-15)
		}
	}

	_, err = invertMatrix([][]complex128{{1, 2}, {2, 4}})
	require.True(t, errors.Is(err, ErrInvalidParameter))
}
