package ring

import (
	"fmt"
	"math"
	"math/big"

	"github.com/TaihouKai/HElib/utils"
)

// Poly is a polynomial with arbitrary precision integer coefficients,
// stored in increasing degree: Coeffs[i] is the coefficient of X^i.
type Poly struct {
	Coeffs []*big.Int
}

// NewPoly creates a new zero polynomial with N coefficients.
func NewPoly(N int) (p *Poly) {
	p = &Poly{Coeffs: make([]*big.Int, N)}
	for i := range p.Coeffs {
		p.Coeffs[i] = new(big.Int)
	}
	return
}

// NewPolyFromInt64 creates a new polynomial whose coefficients are the given int64 values.
func NewPolyFromInt64(coeffs []int64) (p *Poly) {
	p = &Poly{Coeffs: make([]*big.Int, len(coeffs))}
	for i, c := range coeffs {
		p.Coeffs[i] = big.NewInt(c)
	}
	return
}

// N returns the number of coefficients of the polynomial.
func (p *Poly) N() int {
	return len(p.Coeffs)
}

// Degree returns the index of the highest non-zero coefficient, or -1 for the zero polynomial.
func (p *Poly) Degree() int {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if p.Coeffs[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// CopyNew creates an exact copy of the target polynomial.
func (p *Poly) CopyNew() (pCopy *Poly) {
	pCopy = &Poly{Coeffs: make([]*big.Int, len(p.Coeffs))}
	for i, c := range p.Coeffs {
		pCopy.Coeffs[i] = new(big.Int).Set(c)
	}
	return
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
func (p *Poly) Equal(other *Poly) bool {

	if p == other {
		return true
	}

	if p == nil || other == nil || len(p.Coeffs) != len(other.Coeffs) {
		return false
	}

	for i := range p.Coeffs {
		if p.Coeffs[i].Cmp(other.Coeffs[i]) != 0 {
			return false
		}
	}

	return true
}

// Add evaluates p = p0 + p1 coefficient-wise.
// The three polynomials must have the same number of coefficients.
func (p *Poly) Add(p0, p1 *Poly) {

	if p0.N() != p1.N() || p.N() != p0.N() {
		panic(fmt.Errorf("cannot Add: polynomials have different number of coefficients: %d, %d and %d", p.N(), p0.N(), p1.N()))
	}

	for i := range p.Coeffs {
		p.Coeffs[i].Add(p0.Coeffs[i], p1.Coeffs[i])
	}
}

// MulScalar evaluates p = p0 * scalar coefficient-wise.
func (p *Poly) MulScalar(p0 *Poly, scalar *big.Int) {

	if p.N() != p0.N() {
		panic(fmt.Errorf("cannot MulScalar: polynomials have different number of coefficients: %d and %d", p.N(), p0.N()))
	}

	for i := range p.Coeffs {
		p.Coeffs[i].Mul(p0.Coeffs[i], scalar)
	}
}

// MaxBitLen returns the largest bit length among the absolute values of the coefficients.
func (p *Poly) MaxBitLen() (n int) {
	for _, c := range p.Coeffs {
		n = utils.Max(n, c.BitLen())
	}
	return
}

// Int64 returns the coefficients as int64 values.
// Returns an error if a coefficient does not fit on an int64.
func (p *Poly) Int64() (coeffs []int64, err error) {
	coeffs = make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		if !c.IsInt64() {
			return nil, fmt.Errorf("cannot Int64: coefficient %d = %v overflows [%d, %d]", i, c, math.MinInt64, math.MaxInt64)
		}
		coeffs[i] = c.Int64()
	}
	return
}
