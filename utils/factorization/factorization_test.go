package factorization_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TaihouKai/HElib/utils/factorization"
)

const (
	prime uint64 = 0x1fffffffffe00001
)

func TestIsPrime(t *testing.T) {
	// 2^64 - 59 is prime
	require.True(t, factorization.IsPrime(new(big.Int).SetUint64(0xffffffffffffffc5)))
	// 2^64 + 13 is prime
	bigPrime, _ := new(big.Int).SetString("18446744073709551629", 10)
	require.True(t, factorization.IsPrime(bigPrime))
	// 2^64 - 1 is not prime
	require.False(t, factorization.IsPrime(new(big.Int).SetUint64(0xffffffffffffffff)))
}

func TestGetFactors(t *testing.T) {

	t.Run("GetFactors", func(t *testing.T) {
		m := new(big.Int).SetUint64(prime - 1)
		require.True(t, checkFactorization(new(big.Int).Set(m), factorization.GetFactors(m)))
	})

	t.Run("GetFactors/LargePrimes", func(t *testing.T) {
		// (2^31 - 1) * (2^61 - 1) * 3^2
		m := new(big.Int).SetUint64(0x7fffffff)
		m.Mul(m, new(big.Int).SetUint64(0x1fffffffffffffff))
		m.Mul(m, big.NewInt(9))
		factors := factorization.GetFactors(m)
		require.Equal(t, []*big.Int{big.NewInt(3), big.NewInt(0x7fffffff), new(big.Int).SetUint64(0x1fffffffffffffff)}, factors)
		require.True(t, checkFactorization(m, factors))
	})

	t.Run("ECM", func(t *testing.T) {
		m := new(big.Int).SetUint64(prime - 1)
		require.True(t, m.Mod(m, factorization.GetFactorECM(m)).Cmp(new(big.Int)) == 0)
	})

	t.Run("ECM/Odd", func(t *testing.T) {
		// 1000003 * 1000033
		m := new(big.Int).SetUint64(1000003 * 1000033)
		d := factorization.GetFactorECM(m)
		require.True(t, d.Cmp(big.NewInt(1)) > 0 && d.Cmp(m) < 0)
		require.Zero(t, new(big.Int).Mod(m, d).Sign())
	})

	t.Run("PollardRho", func(t *testing.T) {
		m := new(big.Int).SetUint64(prime - 1)
		require.True(t, m.Mod(m, factorization.GetFactorPollardRho(m)).Cmp(new(big.Int)) == 0)
	})
}

func TestGetPrimePowers(t *testing.T) {

	for _, tc := range []struct {
		m       uint64
		factors []factorization.PrimePower
		phi     uint64
	}{
		{2, []factorization.PrimePower{{Prime: 2, Exponent: 1}}, 1},
		{16, []factorization.PrimePower{{Prime: 2, Exponent: 4}}, 8},
		{15, []factorization.PrimePower{{Prime: 3, Exponent: 1}, {Prime: 5, Exponent: 1}}, 8},
		{24, []factorization.PrimePower{{Prime: 2, Exponent: 3}, {Prime: 3, Exponent: 1}}, 8},
		{4095, []factorization.PrimePower{{Prime: 3, Exponent: 2}, {Prime: 5, Exponent: 1}, {Prime: 7, Exponent: 1}, {Prime: 13, Exponent: 1}}, 1728},
	} {
		factors := factorization.GetPrimePowers(tc.m)
		require.Equal(t, tc.factors, factors, tc.m)
		require.Equal(t, tc.phi, factorization.Totient(factors), tc.m)

		v := uint64(1)
		for _, pp := range factors {
			v *= pp.Value()
		}
		require.Equal(t, tc.m, v)
	}

	require.Empty(t, factorization.GetPrimePowers(1))
}

func checkFactorization(p *big.Int, factors []*big.Int) bool {
	p = new(big.Int).Set(p)
	zero := new(big.Int)
	for _, factor := range factors {
		for new(big.Int).Mod(p, factor).Cmp(zero) == 0 {
			p.Quo(p, factor)
		}
	}

	return p.Cmp(new(big.Int).SetUint64(1)) == 0
}
