package ckks

import (
	"fmt"
	"sync"

	"github.com/TaihouKai/HElib/ring"
	"github.com/TaihouKai/HElib/utils"
)

// FFTTransform is the Transform of the m-th cyclotomic ring for m a power of two,
// based on the special FFT over the rotation group <5> of (Z/mZ)^*/<-1>.
// The i-th and (i+Slots())-th coefficients are packed as the real and imaginary
// parts of one complex value, so a transform costs O(Slots() * log(Slots())).
type FFTTransform struct {
	m        int
	slots    int
	rotGroup []int
	roots    []complex128
	buffPool *sync.Pool
}

// NewFFTTransform instantiates the FFTTransform of the given structure.
// Returns an error wrapping ErrInvalidParameter if m is not a power of two greater than or equal to 4.
func NewFFTTransform(s *ring.Structure) (*FFTTransform, error) {

	if !HasFFT(s) {
		return nil, fmt.Errorf("cannot NewFFTTransform: m=%d is not a power of two >= 4: %w", s.M(), ErrInvalidParameter)
	}

	m := s.M()
	slots := m >> 2

	rotGroup := make([]int, slots)
	fivePows := 1
	for i := 0; i < slots; i++ {
		rotGroup[i] = fivePows
		fivePows *= ring.GaloisGen
		fivePows &= (m - 1)
	}

	// Sanity check, the slot order of the structure is the rotation group.
	if !utils.EqualSlice(rotGroup, s.SlotRoots()) {
		panic(fmt.Errorf("cannot NewFFTTransform: slot roots of m=%d do not match the rotation group", m))
	}

	return &FFTTransform{
		m:        m,
		slots:    slots,
		rotGroup: rotGroup,
		roots:    GetRootsComplex128(m),
		buffPool: &sync.Pool{
			New: func() interface{} {
				buff := make([]complex128, slots)
				return &buff
			},
		},
	}, nil
}

// Slots returns the number of slots.
func (tr *FFTTransform) Slots() int {
	return tr.slots
}

// Degree returns the number of coefficients.
func (tr *FFTTransform) Degree() int {
	return tr.slots << 1
}

// Forward returns the coefficients of the polynomial whose evaluations at the slot roots are the given values.
func (tr *FFTTransform) Forward(slots []complex128) (coeffs []float64, err error) {

	if len(slots) != tr.slots {
		return nil, fmt.Errorf("cannot Forward: len(slots)=%d != %d: %w", len(slots), tr.slots, ErrDimensionMismatch)
	}

	buffPtr := tr.buffPool.Get().(*[]complex128)
	defer tr.buffPool.Put(buffPtr)
	buff := *buffPtr

	copy(buff, slots)

	SpecialIFFTDouble(buff, tr.slots, tr.m, tr.rotGroup, tr.roots)

	coeffs = make([]float64, tr.slots<<1)
	for i, jdx := 0, tr.slots; i < tr.slots; i, jdx = i+1, jdx+1 {
		coeffs[i] = real(buff[i])
		coeffs[jdx] = imag(buff[i])
	}

	return
}

// Inverse returns the evaluations of the given coefficients at the slot roots.
func (tr *FFTTransform) Inverse(coeffs []float64) (slots []complex128, err error) {

	if len(coeffs) != tr.slots<<1 {
		return nil, fmt.Errorf("cannot Inverse: len(coeffs)=%d != %d: %w", len(coeffs), tr.slots<<1, ErrDimensionMismatch)
	}

	slots = make([]complex128, tr.slots)
	for i, jdx := 0, tr.slots; i < tr.slots; i, jdx = i+1, jdx+1 {
		slots[i] = complex(coeffs[i], coeffs[jdx])
	}

	SpecialFFTDouble(slots, tr.slots, tr.m, tr.rotGroup, tr.roots)

	return
}

// SpecialFFTDouble performs the CKKS special FFT transform in place.
func SpecialFFTDouble(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	if len(values) < N || len(rotGroup) < N || len(roots) < M+1 {
		panic(fmt.Sprintf("invalid call of SpecialFFTDouble: len(values)=%d or len(rotGroup)=%d < N=%d or len(roots)=%d < M+1=%d", len(values), len(rotGroup), N, len(roots), M+1))
	}

	utils.BitReverseInPlaceSlice(values, N)

	logN := utils.Log2(uint64(N))
	logM := utils.Log2(uint64(M))

	for loglen := 1; loglen <= logN; loglen++ {
		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1

		for i := 0; i < N; i += len {

			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				values[k+lenh] *= roots[(rotGroup[j]&mask)<<logGap]
				values[k], values[k+lenh] = values[k]+values[k+lenh], values[k]-values[k+lenh]
			}
		}
	}
}

// SpecialIFFTDouble performs the CKKS special inverse FFT transform in place.
func SpecialIFFTDouble(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	if len(values) < N || len(rotGroup) < N || len(roots) < M+1 {
		panic(fmt.Sprintf("invalid call of SpecialIFFTDouble: len(values)=%d or len(rotGroup)=%d < N=%d or len(roots)=%d < M+1=%d", len(values), len(rotGroup), N, len(roots), M+1))
	}

	logN := utils.Log2(uint64(N))
	logM := utils.Log2(uint64(M))

	for loglen := logN; loglen > 0; loglen-- {
		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1

		for i := 0; i < N; i += len {

			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				values[k], values[k+lenh] = values[k]+values[k+lenh], (values[k]-values[k+lenh])*roots[(lenq-(rotGroup[j]&mask))<<logGap]
			}
		}
	}

	NF := complex(float64(N), 0)
	for i := 0; i < N; i++ {
		values[i] /= NF
	}

	utils.BitReverseInPlaceSlice(values, N)
}
