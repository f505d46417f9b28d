package factorization

import (
	"math/big"

	"github.com/TaihouKai/HElib/utils/sampling"
)

// Weierstrass is an elliptic curve y^2 = x^3 + ax + b mod N.
type Weierstrass struct {
	A, B, N *big.Int
}

// Point represents an elliptic curve point in standard coordinates.
// The point at infinity has nil coordinates.
type Point struct {
	X, Y *big.Int
}

// IsInfinity returns true if P is the point at infinity.
func (P Point) IsInfinity() bool {
	return P.X == nil || P.Y == nil
}

// Add adds two Weierstrass points together with respect
// to the underlying Weierstrass curve.
// If a slope denominator is not invertible modulo N, Add returns
// the point at infinity along with gcd(denominator, N).
// This method does not check if the points lie on
// the underlying curve.
func (w *Weierstrass) Add(P, Q Point) (R Point, factor *big.Int) {

	if P.IsInfinity() {
		return Q, nil
	}

	if Q.IsInfinity() {
		return P, nil
	}

	xP, yP := P.X, P.Y
	xQ, yQ := Q.X, Q.Y

	N := w.N

	tmp := new(big.Int)

	if xP.Cmp(xQ) == 0 && tmp.Add(yP, yQ).Mod(tmp, N).Sign() == 0 {
		return Point{}, nil
	}

	S := new(big.Int) // slope
	den := new(big.Int)

	if xP.Cmp(xQ) != 0 {

		// S = (yQ-yP)/(xQ-xP)
		S.Sub(yQ, yP)
		den.Sub(xQ, xP)

	} else {

		// S = (3*(xP^2) + a)/(2*yP)
		S.Mul(xP, xP)
		S.Mod(S, N)
		S.Mul(S, bigThree)
		S.Add(S, w.A)
		den.Add(yP, yP)
	}

	den.Mod(den, N)

	if tmp.ModInverse(den, N) == nil {
		return Point{}, new(big.Int).GCD(nil, nil, den, N)
	}

	S.Mul(S, tmp)
	S.Mod(S, N)

	xR, yR := new(big.Int), new(big.Int)

	// s^2 - xP - xQ
	xR.Mul(S, S)
	xR.Sub(xR, xP)
	xR.Sub(xR, xQ)
	xR.Mod(xR, N)

	// s*(xP-xR)-yP
	yR.Sub(xP, xR)
	yR.Mul(yR, S)
	yR.Sub(yR, yP)
	yR.Mod(yR, N)

	return Point{X: xR, Y: yR}, nil
}

// ScalarMul returns k*P with a double-and-add ladder.
// A non-nil factor is returned as soon as an addition fails, see Add.
func (w *Weierstrass) ScalarMul(P Point, k *big.Int) (R Point, factor *big.Int) {

	R = Point{}

	for i := k.BitLen() - 1; i >= 0; i-- {

		if R, factor = w.Add(R, R); factor != nil {
			return
		}

		if k.Bit(i) == 1 {
			if R, factor = w.Add(R, P); factor != nil {
				return
			}
		}
	}

	return
}

// IsOnCurve returns true if P satisfies the curve equation.
// The point at infinity is always on the curve.
func (w *Weierstrass) IsOnCurve(P Point) bool {

	if P.IsInfinity() {
		return true
	}

	lhs := new(big.Int).Mul(P.Y, P.Y)
	lhs.Mod(lhs, w.N)

	rhs := new(big.Int).Mul(P.X, P.X)
	rhs.Add(rhs, w.A)
	rhs.Mul(rhs, P.X)
	rhs.Add(rhs, w.B)
	rhs.Mod(rhs, w.N)

	return lhs.Cmp(rhs) == 0
}

// NewRandomWeierstrassCurve generates a new random Weierstrass curve modulo N,
// along with a random point that lies on the curve.
func NewRandomWeierstrassCurve(N *big.Int) (Weierstrass, Point) {

	var A, B, xG, yG *big.Int
	for {

		// Select random values for A, xG and yG
		A = sampling.RandInt(N)
		xG = sampling.RandInt(N)
		yG = sampling.RandInt(N)

		// Deduces B from Y^2 = X^3 + A * X + B evaluated at point (xG, yG)
		yGpow2 := new(big.Int).Mul(yG, yG)
		yGpow2.Mod(yGpow2, N)

		xGpow3 := new(big.Int).Mul(xG, xG)
		xGpow3.Add(xGpow3, A)
		xGpow3.Mul(xGpow3, xG)
		xGpow3.Mod(xGpow3, N)

		B = new(big.Int).Sub(yGpow2, xGpow3) // B = yG^2 - xG*(xG^2 + A)
		B.Mod(B, N)

		// Checks that 4A^3 + 27B^2 is invertible
		fourACube := new(big.Int).Mul(A, A)
		fourACube.Mul(fourACube, A)
		fourACube.Lsh(fourACube, 2)
		fourACube.Mod(fourACube, N)

		twentySevenBSquare := new(big.Int).Mul(B, B)
		twentySevenBSquare.Mul(twentySevenBSquare, big.NewInt(27))
		twentySevenBSquare.Mod(twentySevenBSquare, N)

		discriminant := new(big.Int).Add(fourACube, twentySevenBSquare)
		discriminant.Mod(discriminant, N)

		if discriminant.Sign() != 0 && new(big.Int).GCD(nil, nil, N, discriminant).Cmp(bigOne) == 0 {
			return Weierstrass{
				A: A,
				B: B,
				N: N,
			}, Point{X: xG, Y: yG}
		}
	}
}
