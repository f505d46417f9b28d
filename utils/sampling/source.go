package sampling

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Source draws uniform integers and floats from a PRNG.
// A Source over a KeyedPRNG is reproducible.
// A Source is not safe for concurrent use.
type Source struct {
	prng PRNG
	buff [8]byte
}

// NewSource returns a new Source reading from prng.
// If prng is nil, a ThreadSafePRNG is used.
func NewSource(prng PRNG) *Source {
	if prng == nil {
		prng, _ = NewPRNG()
	}
	return &Source{prng: prng}
}

// Uint64 returns a uniform value in [0, 2^64).
func (s *Source) Uint64() uint64 {
	if _, err := s.prng.Read(s.buff[:]); err != nil {
		// Sanity check, this error should not happen.
		panic(fmt.Errorf("cannot Uint64: %w", err))
	}
	return binary.LittleEndian.Uint64(s.buff[:])
}

// Uint64n returns a uniform value in [0, n).
// Rejection sampling removes the modulo bias.
func (s *Source) Uint64n(n uint64) uint64 {
	if n == 0 {
		panic("cannot Uint64n: n must be positive")
	}
	if n&(n-1) == 0 {
		return s.Uint64() & (n - 1)
	}
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		if v := s.Uint64(); v < limit {
			return v % n
		}
	}
}

// Float64 returns a uniform float in [min, max) with 53 bits of randomness.
func (s *Source) Float64(min, max float64) float64 {
	f := float64(s.Uint64()>>11) / (1 << 53)
	return min + f*(max-min)
}

// Complex128 returns a complex with the real and imaginary part uniform in [min, max).
func (s *Source) Complex128(min, max float64) complex128 {
	return complex(s.Float64(min, max), s.Float64(min, max))
}
