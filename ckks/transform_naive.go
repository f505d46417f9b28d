package ckks

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/TaihouKai/HElib/ring"
)

// MaxNaiveDegree is the largest degree supported by NaiveTransform.
const MaxNaiveDegree = 2048

// minPivot is the smallest pivot modulus accepted when inverting the evaluation matrix.
const minPivot = 1e-9

// NaiveTransform is the Transform of the m-th cyclotomic ring for any m, computed
// with the dense evaluation matrix V[i][k] = zeta^{e_i * k} over the evaluation
// exponents e of the structure and its precomputed inverse.
// A transform costs O(Degree()^2) and the construction O(Degree()^3).
type NaiveTransform struct {
	m      int
	slots  int
	degree int
	eval   [][]complex128
	interp [][]complex128
}

// NewNaiveTransform instantiates the NaiveTransform of the given structure.
// Returns an error wrapping ErrInvalidParameter if the degree exceeds MaxNaiveDegree,
// or if the evaluation matrix is numerically singular.
func NewNaiveTransform(s *ring.Structure) (*NaiveTransform, error) {

	degree := s.Degree()

	if degree > MaxNaiveDegree {
		return nil, fmt.Errorf("cannot NewNaiveTransform: degree=%d > %d: %w", degree, MaxNaiveDegree, ErrInvalidParameter)
	}

	m := s.M()
	roots := GetRootsComplex128(m)

	exponents := s.EvaluationExponents()

	eval := make([][]complex128, degree)
	for i, e := range exponents {
		eval[i] = make([]complex128, degree)
		for k := range eval[i] {
			eval[i][k] = roots[(e*k)%m]
		}
	}

	interp, err := invertMatrix(eval)
	if err != nil {
		return nil, fmt.Errorf("cannot NewNaiveTransform: m=%d: %w", m, err)
	}

	return &NaiveTransform{
		m:      m,
		slots:  s.Slots(),
		degree: degree,
		eval:   eval[:s.Slots()],
		interp: interp,
	}, nil
}

// Slots returns the number of slots.
func (tr *NaiveTransform) Slots() int {
	return tr.slots
}

// Degree returns the number of coefficients.
func (tr *NaiveTransform) Degree() int {
	return tr.degree
}

// Forward returns the coefficients of the polynomial whose evaluations at the slot roots are the given values.
// For m = 2 the single slot is self-conjugate and its imaginary part is discarded.
func (tr *NaiveTransform) Forward(slots []complex128) (coeffs []float64, err error) {

	if len(slots) != tr.slots {
		return nil, fmt.Errorf("cannot Forward: len(slots)=%d != %d: %w", len(slots), tr.slots, ErrDimensionMismatch)
	}

	w := make([]complex128, tr.degree)
	copy(w, slots)
	if tr.m > 2 {
		for i, z := range slots {
			w[tr.slots+i] = cmplx.Conj(z)
		}
	}

	coeffs = make([]float64, tr.degree)
	for k, row := range tr.interp {
		var acc complex128
		for j, wj := range w {
			acc += row[j] * wj
		}
		coeffs[k] = real(acc)
	}

	return
}

// Inverse returns the evaluations of the given coefficients at the slot roots.
func (tr *NaiveTransform) Inverse(coeffs []float64) (slots []complex128, err error) {

	if len(coeffs) != tr.degree {
		return nil, fmt.Errorf("cannot Inverse: len(coeffs)=%d != %d: %w", len(coeffs), tr.degree, ErrDimensionMismatch)
	}

	slots = make([]complex128, tr.slots)
	for i, row := range tr.eval {
		var acc complex128
		for k, c := range coeffs {
			acc += row[k] * complex(c, 0)
		}
		slots[i] = acc
	}

	return
}

// invertMatrix returns the inverse of the square matrix a with a Gauss-Jordan
// elimination with partial pivoting. The input is not modified.
func invertMatrix(a [][]complex128) (inv [][]complex128, err error) {

	n := len(a)

	// augmented matrix [a | I]
	aug := make([][]complex128, n)
	for i := range aug {
		aug[i] = make([]complex128, 2*n)
		copy(aug[i], a[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {

		pivot := col
		for i := col + 1; i < n; i++ {
			if cmplx.Abs(aug[i][col]) > cmplx.Abs(aug[pivot][col]) {
				pivot = i
			}
		}

		if p := cmplx.Abs(aug[pivot][col]); p < minPivot || math.IsNaN(p) {
			return nil, fmt.Errorf("evaluation matrix is singular at column %d: %w", col, ErrInvalidParameter)
		}

		aug[col], aug[pivot] = aug[pivot], aug[col]

		pinv := 1 / aug[col][col]
		for j := col; j < 2*n; j++ {
			aug[col][j] *= pinv
		}

		for i := 0; i < n; i++ {
			if i == col || aug[i][col] == 0 {
				continue
			}
			f := aug[i][col]
			for j := col; j < 2*n; j++ {
				aug[i][j] -= f * aug[col][j]
			}
		}
	}

	inv = make([][]complex128, n)
	for i := range inv {
		inv[i] = aug[i][n:]
		for _, v := range inv[i] {
			if cmplx.IsNaN(v) || cmplx.IsInf(v) {
				return nil, fmt.Errorf("inverse of the evaluation matrix is not finite: %w", ErrInvalidParameter)
			}
		}
	}

	return
}
