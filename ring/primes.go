package ring

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/TaihouKai/HElib/utils/factorization"
)

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// MulMod returns x*y mod p.
func MulMod(x, y, p uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	_, r := bits.Div64(hi%p, lo, p)
	return r
}

// ModExp performs the modular exponentiation x^e mod p.
func ModExp(x, e, p uint64) (result uint64) {
	result = 1 % p
	x %= p
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = MulMod(result, x, p)
		}
		x = MulMod(x, x, p)
	}
	return result
}

// GenerateNTTPrimes generates n NthRoot NTT friendly primes given logQ = size of the primes.
// All returned primes q satisfy q = 1 mod NthRoot. It will return all the appropriate
// primes, up to the number of n, with the best available deviation from the base power
// of 2 for the given n.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 1 || logQ > 61 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: logQ must be between 1 and 61 but is %d: %w", logQ, ErrInvalidParameter)
	}

	if NthRoot < 1 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: NthRoot must be positive but is %d: %w", NthRoot, ErrInvalidParameter)
	}

	if n < 0 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: n must be non-negative but is %d: %w", n, ErrInvalidParameter)
	}

	if logQ == 61 {
		return GenerateNTTPrimesP(logQ, NthRoot, n)
	}

	return GenerateNTTPrimesQ(logQ, NthRoot, n)
}

// NextNTTPrime returns the next NthRoot NTT prime after q.
// The input q must be itself an NTT prime for the given NthRoot.
func NextNTTPrime(q uint64, NthRoot int) (qNext uint64, err error) {

	qNext = q + uint64(NthRoot)

	for !IsPrime(qNext) {

		qNext += uint64(NthRoot)

		if bits.Len64(qNext) > 61 {
			return 0, fmt.Errorf("next NTT prime exceeds the maximum bit-size of 61 bits")
		}
	}

	return qNext, nil
}

// PreviousNTTPrime returns the previous NthRoot NTT prime before q.
// The input q must be itself an NTT prime for the given NthRoot.
func PreviousNTTPrime(q uint64, NthRoot int) (qPrev uint64, err error) {

	if q <= uint64(NthRoot) {
		return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
	}

	qPrev = q - uint64(NthRoot)

	for !IsPrime(qPrev) {

		if qPrev <= uint64(NthRoot) {
			return 0, fmt.Errorf("previous NTT prime is smaller than NthRoot")
		}

		qPrev -= uint64(NthRoot)
	}

	return qPrev, nil
}

// nttBase returns the largest integer x <= 2^logQ + 1 such that x = 1 mod NthRoot.
func nttBase(logQ, NthRoot int) uint64 {
	return ((uint64(1)<<logQ)/uint64(NthRoot))*uint64(NthRoot) + 1
}

// GenerateNTTPrimesQ generates "levels" different NthRoot NTT-friendly
// primes starting from 2**LogQ and alternating between upward and downward.
func GenerateNTTPrimesQ(logQ, NthRoot, levels int) (primes []uint64, err error) {

	var nextPrime, previousPrime uint64
	var checkfornextprime, checkforpreviousprime bool

	primes = []uint64{}

	if levels == 0 {
		return
	}

	nextPrime = nttBase(logQ, NthRoot)
	previousPrime = nextPrime

	checkfornextprime = true
	checkforpreviousprime = true

	for {

		if !(checkfornextprime || checkforpreviousprime) {
			return nil, fmt.Errorf("cannot GenerateNTTPrimesQ: cannot generate enough primes for the given parameters: %w", ErrInvalidParameter)
		}

		if checkfornextprime {

			if bits.Len64(nextPrime+uint64(NthRoot)) > 61 {

				checkfornextprime = false

			} else {

				nextPrime += uint64(NthRoot)

				if IsPrime(nextPrime) {

					primes = append(primes, nextPrime)

					if len(primes) == levels {
						return
					}
				}
			}
		}

		if checkforpreviousprime {

			if previousPrime <= uint64(NthRoot)+1 {

				checkforpreviousprime = false

			} else {

				previousPrime -= uint64(NthRoot)

				if IsPrime(previousPrime) {

					primes = append(primes, previousPrime)

					if len(primes) == levels {
						return
					}
				}
			}
		}
	}
}

// GenerateNTTPrimesP generates "levels" different NthRoot NTT-friendly
// primes starting from 2**LogP and downward.
// Special case were primes close to 2^{LogP} but with a smaller bit-size than LogP are sought.
func GenerateNTTPrimesP(logP, NthRoot, n int) (primes []uint64, err error) {

	var x uint64

	primes = []uint64{}

	if n == 0 {
		return
	}

	x = nttBase(logP, NthRoot)

	for {

		// Subtracting NthRoot first ensures that the prime bit-length is at most LogP
		if x > uint64(NthRoot)+1 {

			x -= uint64(NthRoot)

			if IsPrime(x) {

				primes = append(primes, x)

				if len(primes) == n {
					return primes, nil
				}
			}

		} else {
			return nil, fmt.Errorf("cannot GenerateNTTPrimesP: cannot generate enough primes for the given parameters: %w", ErrInvalidParameter)
		}
	}
}

// PrimitiveRoot computes the smallest primitive root of the given prime q.
// The unique factors of q-1 can be given to speed up the search for the root.
func PrimitiveRoot(q uint64, factors []uint64) (uint64, []uint64, error) {

	if !IsPrime(q) {
		return 0, nil, fmt.Errorf("cannot PrimitiveRoot: %d is not prime: %w", q, ErrInvalidParameter)
	}

	if q == 2 {
		return 1, []uint64{}, nil
	}

	if factors != nil {
		if err := CheckFactors(q-1, factors); err != nil {
			return 0, factors, err
		}
	} else {

		factorsBig := factorization.GetFactors(new(big.Int).SetUint64(q - 1))

		factors = make([]uint64, len(factorsBig))
		for i := range factors {
			factors[i] = factorsBig[i].Uint64()
		}
	}

	for g := uint64(2); g < q; g++ {
		if CheckPrimitiveRoot(g, q, factors) == nil {
			return g, factors, nil
		}
	}

	// Sanity check, a prime always has a primitive root.
	panic(fmt.Errorf("cannot PrimitiveRoot: no primitive root found for %d", q))
}

// CheckFactors checks that the given list of factors contains
// all the unique primes of m.
func CheckFactors(m uint64, factors []uint64) (err error) {

	for _, factor := range factors {

		if !IsPrime(factor) {
			return fmt.Errorf("composite factor")
		}

		for m%factor == 0 {
			m /= factor
		}
	}

	if m != 1 {
		return fmt.Errorf("incomplete factor list")
	}

	return
}

// CheckPrimitiveRoot checks that g is a valid primitive root mod q,
// given the factors of q-1.
func CheckPrimitiveRoot(g, q uint64, factors []uint64) (err error) {

	if g%q == 0 {
		return fmt.Errorf("invalid primitive root: %d = 0 mod %d", g, q)
	}

	for _, factor := range factors {
		// if for any factor of q-1, g^(q-1)/factor = 1 mod q, g is not a primitive root
		if ModExp(g, (q-1)/factor, q) == 1 {
			return fmt.Errorf("invalid primitive root")
		}
	}

	return
}
