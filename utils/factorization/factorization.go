// Package factorization implements various algorithms for efficient factoring integers.
package factorization

import (
	"math/big"
	"sort"
)

// trialDivisionBound is the largest prime tried by trial division in GetFactors.
const trialDivisionBound = 1 << 10

// ecmStageOneBound is the initial smoothness bound of the first stage of GetFactorECM.
const ecmStageOneBound = 1 << 11

// ecmCurvesPerBound is the number of curves tried by GetFactorECM before the bound is doubled.
const ecmCurvesPerBound = 16

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(m *big.Int) bool {
	return m.ProbablyPrime(0)
}

// PrimePower is a prime p^e in the factorization of an integer.
type PrimePower struct {
	Prime    uint64
	Exponent int
}

// Value returns Prime^Exponent.
func (pp PrimePower) Value() (v uint64) {
	v = 1
	for i := 0; i < pp.Exponent; i++ {
		v *= pp.Prime
	}
	return
}

// GetPrimePowers returns the factorization of m as a list of prime powers
// ordered by increasing prime. Returns an empty list for m < 2.
func GetPrimePowers(m uint64) (factors []PrimePower) {

	factors = []PrimePower{}

	if m < 2 {
		return
	}

	for _, p := range GetFactors(new(big.Int).SetUint64(m)) {
		q := p.Uint64()
		pp := PrimePower{Prime: q}
		for m%q == 0 {
			m /= q
			pp.Exponent++
		}
		factors = append(factors, pp)
	}

	return
}

// Totient returns Euler's totient of the integer whose factorization is given.
func Totient(factors []PrimePower) (phi uint64) {
	phi = 1
	for _, pp := range factors {
		phi *= (pp.Prime - 1) * PrimePower{Prime: pp.Prime, Exponent: pp.Exponent - 1}.Value()
	}
	return
}

// GetFactors returns all the distinct prime factors of m, in increasing order.
// Small factors are removed by trial division, the remaining cofactor is
// split with Pollard's rho and, if needed, with the elliptic curve method.
func GetFactors(m *big.Int) (factors []*big.Int) {

	factors = []*big.Int{}

	n := new(big.Int).Abs(m)

	if n.Cmp(bigOne) <= 0 {
		return
	}

	seen := map[string]bool{}

	add := func(p *big.Int) {
		if key := p.String(); !seen[key] {
			seen[key] = true
			factors = append(factors, new(big.Int).Set(p))
		}
	}

	q, r := new(big.Int), new(big.Int)
	for _, p := range smallPrimes(trialDivisionBound) {
		bp := new(big.Int).SetUint64(p)
		for {
			q.QuoRem(n, bp, r)
			if r.Sign() != 0 {
				break
			}
			add(bp)
			n.Set(q)
		}
	}

	composites := []*big.Int{}
	if n.Cmp(bigOne) != 0 {
		composites = append(composites, n)
	}

	for len(composites) != 0 {

		c := composites[len(composites)-1]
		composites = composites[:len(composites)-1]

		if IsPrime(c) {
			add(c)
			continue
		}

		d := GetFactorPollardRho(c)

		if d.Cmp(bigOne) == 0 || d.Cmp(c) == 0 {
			d = GetFactorECM(c)
		}

		composites = append(composites, d, new(big.Int).Quo(c, d))
	}

	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Cmp(factors[j]) < 0
	})

	return
}

// GetFactorPollardRho returns a factor of m using Pollard's rho algorithm
// with the polynomials x^2 + c for c = 1, 2, ...
// Returns m if m is prime or smaller than 4.
func GetFactorPollardRho(m *big.Int) (d *big.Int) {

	if m.Cmp(bigFour) < 0 || IsPrime(m) {
		return new(big.Int).Set(m)
	}

	if m.Bit(0) == 0 {
		return new(big.Int).SetUint64(2)
	}

	x, y, c := new(big.Int), new(big.Int), new(big.Int)
	diff := new(big.Int)
	d = new(big.Int)

	f := func(z *big.Int) {
		z.Mul(z, z)
		z.Add(z, c)
		z.Mod(z, m)
	}

	for c.SetUint64(1); ; c.Add(c, bigOne) {

		x.SetUint64(2)
		y.SetUint64(2)
		d.SetUint64(1)

		for d.Cmp(bigOne) == 0 {
			f(x)
			f(y)
			f(y)
			diff.Sub(x, y)
			diff.Abs(diff)
			d.GCD(nil, nil, diff, m)
		}

		if d.Cmp(m) != 0 {
			return
		}
	}
}

// GetFactorECM returns a factor of m using Lenstra's elliptic curve method.
// Points of random curves are multiplied by all prime powers below a bound until
// the inversion of a slope denominator fails, which exposes a factor of m.
// Returns m if m is prime or smaller than 4.
func GetFactorECM(m *big.Int) (d *big.Int) {

	if m.Cmp(bigFour) < 0 || IsPrime(m) {
		return new(big.Int).Set(m)
	}

	if m.Bit(0) == 0 {
		return new(big.Int).SetUint64(2)
	}

	// Curves are not defined modulo 3.
	if new(big.Int).Mod(m, bigThree).Sign() == 0 {
		return new(big.Int).Set(bigThree)
	}

	bound := uint64(ecmStageOneBound)

	for {

		primes := smallPrimes(bound)

		for i := 0; i < ecmCurvesPerBound; i++ {

			w, P := NewRandomWeierstrassCurve(m)

			for _, p := range primes {

				pk := p
				for pk <= bound/p {
					pk *= p
				}

				var factor *big.Int
				if P, factor = w.ScalarMul(P, new(big.Int).SetUint64(pk)); factor != nil {
					if factor.Cmp(bigOne) != 0 && factor.Cmp(m) != 0 {
						return factor
					}
					break
				}

				if P.IsInfinity() {
					break
				}
			}
		}

		bound <<= 1
	}
}

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
	bigFour  = big.NewInt(4)
)

// smallPrimes returns the primes smaller than or equal to bound with the sieve of Eratosthenes.
func smallPrimes(bound uint64) (primes []uint64) {

	composite := make([]bool, bound+1)

	for i := uint64(2); i <= bound; i++ {
		if !composite[i] {
			primes = append(primes, i)
			for j := i * i; j <= bound; j += i {
				composite[j] = true
			}
		}
	}

	return
}
