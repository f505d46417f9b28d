// Package rlwe implements the modulus chain of leveled RLWE-based schemes.
// A modulus chain is the ordered list of primes q_0, ..., q_L whose product
// Q_l = q_0 * ... * q_l bounds the coefficients of an element at level l.
package rlwe

// ModulusChain is a read-only view on a leveled modulus chain.
// Levels are indexed from 0 (only q_0) to Levels()-1 (all the primes).
type ModulusChain interface {
	// Levels returns the number of levels of the chain.
	Levels() int
	// CapacityBits returns floor(log2(Q_level)), the number of bits available
	// at the given level, or 0 if the level does not exist.
	CapacityBits(level int) int
}
