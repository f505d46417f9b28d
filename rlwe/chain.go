package rlwe

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/google/go-cmp/cmp"

	"github.com/TaihouKai/HElib/ring"
)

// MaxModuliSize is the largest bit-length supported for the moduli of a chain.
const MaxModuliSize = 61

// ChainLiteral is a literal representation of a modulus chain.
// Users either set Q to the desired primes, or LogQ to the desired prime sizes,
// in which case NTT-friendly primes are generated by NewChainFromLiteral.
type ChainLiteral struct {
	Q    []uint64 `json:",omitempty"`
	LogQ []int    `json:",omitempty"`
}

// Chain is a concrete ModulusChain. Its fields are private and immutable.
// See ChainLiteral for user-specified chains.
type Chain struct {
	qi    []uint64
	roots []uint64
}

// NewChainFromLiteral instantiates a Chain from a ChainLiteral.
// If lit.Q is empty, the primes are generated from lit.LogQ such that q = 1 mod NthRoot.
// Primes of a same size are generated together, so all the primes of the chain are distinct.
func NewChainFromLiteral(lit ChainLiteral, NthRoot int) (c *Chain, err error) {

	switch {
	case len(lit.Q) != 0 && len(lit.LogQ) != 0:
		return nil, fmt.Errorf("cannot NewChainFromLiteral: multiple moduli definitions, Q and LogQ are both set: %w", ring.ErrInvalidParameter)
	case len(lit.Q) != 0:
		return NewChain(lit.Q)
	case len(lit.LogQ) != 0:
		var qi []uint64
		if qi, err = GenerateModuli(lit.LogQ, NthRoot); err != nil {
			return nil, fmt.Errorf("cannot NewChainFromLiteral: %w", err)
		}
		return NewChain(qi)
	default:
		return nil, fmt.Errorf("cannot NewChainFromLiteral: the chain must have at least one level: %w", ring.ErrInvalidParameter)
	}
}

// NewChain instantiates a Chain from a list of distinct primes.
func NewChain(qi []uint64) (c *Chain, err error) {

	if len(qi) == 0 {
		return nil, fmt.Errorf("cannot NewChain: the chain must have at least one level: %w", ring.ErrInvalidParameter)
	}

	seen := map[uint64]bool{}

	for i, q := range qi {

		if bits.Len64(q) > MaxModuliSize {
			return nil, fmt.Errorf("cannot NewChain: Q[%d] has bit-size %d > %d: %w", i, bits.Len64(q), MaxModuliSize, ring.ErrInvalidParameter)
		}

		if !ring.IsPrime(q) {
			return nil, fmt.Errorf("cannot NewChain: Q[%d]=%d is not prime: %w", i, q, ring.ErrInvalidParameter)
		}

		if seen[q] {
			return nil, fmt.Errorf("cannot NewChain: Q[%d]=%d is duplicated: %w", i, q, ring.ErrInvalidParameter)
		}

		seen[q] = true
	}

	c = &Chain{qi: append([]uint64{}, qi...), roots: make([]uint64, len(qi))}

	for i, q := range c.qi {
		if c.roots[i], _, err = ring.PrimitiveRoot(q, nil); err != nil {
			return nil, fmt.Errorf("cannot NewChain: %w", err)
		}
	}

	return
}

// GenerateModuli returns distinct NthRoot NTT-friendly primes of the given bit-sizes.
func GenerateModuli(logQ []int, NthRoot int) (qi []uint64, err error) {

	count := map[int]int{}
	for i, logqi := range logQ {
		if logqi < 1 || logqi > MaxModuliSize {
			return nil, fmt.Errorf("cannot GenerateModuli: LogQ[%d]=%d is not in [1, %d]: %w", i, logqi, MaxModuliSize, ring.ErrInvalidParameter)
		}
		count[logqi]++
	}

	primes := map[int][]uint64{}
	for logqi, n := range count {
		if primes[logqi], err = ring.GenerateNTTPrimes(logqi, NthRoot, n); err != nil {
			return nil, fmt.Errorf("cannot GenerateModuli: %w", err)
		}
	}

	qi = make([]uint64, len(logQ))
	for i, logqi := range logQ {
		qi[i] = primes[logqi][0]
		primes[logqi] = primes[logqi][1:]
	}

	return
}

// Levels returns the number of levels of the chain.
func (c *Chain) Levels() int {
	return len(c.qi)
}

// MaxLevel returns the index of the top level.
func (c *Chain) MaxLevel() int {
	return len(c.qi) - 1
}

// Q returns a copy of the primes of the chain.
func (c *Chain) Q() []uint64 {
	return append([]uint64{}, c.qi...)
}

// LogQ returns the bit-size of each prime of the chain.
func (c *Chain) LogQ() (logqi []int) {
	logqi = make([]int, len(c.qi))
	for i, q := range c.qi {
		logqi[i] = bits.Len64(q)
	}
	return
}

// PrimitiveRoots returns a copy of the smallest primitive root of each prime of the chain.
func (c *Chain) PrimitiveRoots() []uint64 {
	return append([]uint64{}, c.roots...)
}

// RootOfUnity returns a primitive NthRoot-th root of unity modulo the prime at the given level.
// Returns an error wrapping ring.ErrInvalidParameter if the level does not exist
// or if NthRoot does not divide q-1.
func (c *Chain) RootOfUnity(level, NthRoot int) (uint64, error) {

	if level < 0 || level >= len(c.qi) {
		return 0, fmt.Errorf("cannot RootOfUnity: level must be in [0, %d] but is %d: %w", c.MaxLevel(), level, ring.ErrInvalidParameter)
	}

	q := c.qi[level]

	if NthRoot < 1 || (q-1)%uint64(NthRoot) != 0 {
		return 0, fmt.Errorf("cannot RootOfUnity: NthRoot=%d does not divide q-1 for q=%d: %w", NthRoot, q, ring.ErrInvalidParameter)
	}

	return ring.ModExp(c.roots[level], (q-1)/uint64(NthRoot), q), nil
}

// ModulusAtLevel returns Q_level = q_0 * ... * q_level.
// Returns nil if the level does not exist.
func (c *Chain) ModulusAtLevel(level int) (Q *big.Int) {

	if level < 0 || level >= len(c.qi) {
		return nil
	}

	Q = new(big.Int).SetUint64(c.qi[0])
	for _, q := range c.qi[1 : level+1] {
		Q.Mul(Q, new(big.Int).SetUint64(q))
	}

	return
}

// CapacityBits returns floor(log2(Q_level)), or 0 if the level does not exist.
func (c *Chain) CapacityBits(level int) int {
	if Q := c.ModulusAtLevel(level); Q != nil {
		return Q.BitLen() - 1
	}
	return 0
}

// Equal returns true if both chains have the same primes in the same order.
func (c *Chain) Equal(other *Chain) bool {
	return cmp.Equal(c.qi, other.qi)
}

// ChainLiteral returns the ChainLiteral of the target Chain.
func (c *Chain) ChainLiteral() ChainLiteral {
	return ChainLiteral{Q: c.Q()}
}

// MarshalJSON returns a JSON representation of the chain. See Marshal from the [encoding/json] package.
func (c Chain) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ChainLiteral())
}

// UnmarshalJSON reads a JSON representation of a chain into the receiver. See Unmarshal from the [encoding/json] package.
func (c *Chain) UnmarshalJSON(data []byte) (err error) {
	var lit ChainLiteral
	if err = json.Unmarshal(data, &lit); err != nil {
		return
	}

	if len(lit.Q) == 0 {
		return fmt.Errorf("cannot UnmarshalJSON: Q must be set: %w", ring.ErrInvalidParameter)
	}

	var chain *Chain
	if chain, err = NewChain(lit.Q); err != nil {
		return
	}

	*c = *chain
	return
}
