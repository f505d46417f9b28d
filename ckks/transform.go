package ckks

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/TaihouKai/HElib/ring"
)

// Transform is the slot transform of a cyclotomic ring: the inverse canonical embedding,
// restricted to the slot roots zeta^t for t in T, and its inverse.
//
// Forward maps Slots() complex values z to the Degree() real coefficients of the unique
// polynomial c with c(zeta^{T[i]}) = z[i] and c(zeta^{m-T[i]}) = conj(z[i]).
// Inverse evaluates Degree() coefficients at the slot roots.
//
// Implementations are read-only after construction and can be used concurrently.
// Each call allocates its output.
type Transform interface {
	Slots() int
	Degree() int
	Forward(slots []complex128) (coeffs []float64, err error)
	Inverse(coeffs []float64) (slots []complex128, err error)
}

// Backend selects the implementation of a Transform.
type Backend uint8

const (
	// Auto selects FFT when available and Naive otherwise.
	Auto Backend = iota
	// FFT is the special FFT over the rotation group <5>, available for m a power of two.
	FFT
	// Naive is the dense evaluation and interpolation matrix, available for any m.
	Naive
)

var backendToString = [3]string{"Auto", "FFT", "Naive"}

var backendFromString = map[string]Backend{
	"Auto":  Auto,
	"FFT":   FFT,
	"Naive": Naive,
}

func (b Backend) String() string {
	if int(b) >= len(backendToString) {
		return "Unknown"
	}
	return backendToString[int(b)]
}

// MarshalJSON encodes the backend as a JSON string.
func (b Backend) MarshalJSON() ([]byte, error) {
	if int(b) >= len(backendToString) {
		return nil, fmt.Errorf("cannot MarshalJSON: invalid backend %d", b)
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a backend from a JSON string.
func (b *Backend) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return
	}
	backend, ok := backendFromString[s]
	if !ok {
		return fmt.Errorf("cannot UnmarshalJSON: backend %q does not exist", s)
	}
	*b = backend
	return
}

// HasFFT returns true if the FFT backend supports the given structure.
func HasFFT(s *ring.Structure) bool {
	return s.IsPowerOfTwo() && s.M() >= 4
}

// Resolve returns the concrete backend used for the given structure.
// Auto resolves to FFT if HasFFT(s), and to Naive otherwise.
func (b Backend) Resolve(s *ring.Structure) Backend {
	if b == Auto {
		if HasFFT(s) {
			return FFT
		}
		return Naive
	}
	return b
}

// NewTransform instantiates the Transform of the given structure with the given backend.
func NewTransform(s *ring.Structure, backend Backend) (Transform, error) {
	switch backend.Resolve(s) {
	case FFT:
		return NewFFTTransform(s)
	case Naive:
		return NewNaiveTransform(s)
	default:
		return nil, fmt.Errorf("cannot NewTransform: invalid backend %s: %w", backend, ErrInvalidParameter)
	}
}

// GetRootsComplex128 returns the NthRoot+1 powers zeta^k, k = 0, ..., NthRoot,
// of the primitive NthRoot-th root of unity zeta = exp(2*pi*i/NthRoot).
func GetRootsComplex128(NthRoot int) (roots []complex128) {

	roots = make([]complex128, NthRoot+1)

	if NthRoot&3 != 0 {
		angle := 2 * 3.141592653589793 / float64(NthRoot)
		for i := 0; i < NthRoot; i++ {
			roots[i] = complex(math.Cos(angle*float64(i)), math.Sin(angle*float64(i)))
		}
		roots[NthRoot] = roots[0]
		return
	}

	quarm := NthRoot >> 2

	angle := 2 * 3.141592653589793 / float64(NthRoot)

	for i := 0; i < quarm; i++ {
		roots[i] = complex(math.Cos(angle*float64(i)), 0)
	}

	for i := 0; i < quarm; i++ {
		roots[quarm-i] += complex(0, real(roots[i]))
	}

	for i := 1; i < quarm+1; i++ {
		roots[i+1*quarm] = complex(-real(roots[quarm-i]), imag(roots[quarm-i]))
		roots[i+2*quarm] = -roots[i]
		roots[i+3*quarm] = complex(real(roots[quarm-i]), -imag(roots[quarm-i]))
	}

	roots[NthRoot] = roots[0]

	return
}
