package ckks

import (
	"fmt"
	"math"
	"math/big"

	"github.com/TaihouKai/HElib/rlwe"
	"github.com/TaihouKai/HElib/utils/bignum"
)

// scalePrecision is the precision in bits of the scale factor 2^r.
const scalePrecision = 128

// PrecisionContext holds the fixed-point scale 2^r used to convert between
// the real coefficients of the slot transform and integer polynomial coefficients,
// together with a read-only reference to a modulus chain and a current level.
// A PrecisionContext is immutable: AtLevel returns a new instance.
type PrecisionContext struct {
	logScale float64
	scale    *big.Float
	chain    rlwe.ModulusChain
	level    int
}

// NewPrecisionContext creates a new PrecisionContext with scale 2^logScale at the top level of the chain.
// Returns an error wrapping ErrInvalidParameter if logScale is negative or not finite, or if the chain has no level.
func NewPrecisionContext(logScale float64, chain rlwe.ModulusChain) (*PrecisionContext, error) {

	if math.IsNaN(logScale) || math.IsInf(logScale, 0) || logScale < 0 {
		return nil, fmt.Errorf("cannot NewPrecisionContext: logScale must be finite and non-negative but is %v: %w", logScale, ErrInvalidParameter)
	}

	if chain == nil || chain.Levels() < 1 {
		return nil, fmt.Errorf("cannot NewPrecisionContext: the modulus chain must have at least one level: %w", ErrInvalidParameter)
	}

	return &PrecisionContext{
		logScale: logScale,
		scale:    bignum.Exp2(logScale, scalePrecision),
		chain:    chain,
		level:    chain.Levels() - 1,
	}, nil
}

// LogScale returns r.
func (p *PrecisionContext) LogScale() float64 {
	return p.logScale
}

// ScaleFactor returns a copy of 2^r.
func (p *PrecisionContext) ScaleFactor() *big.Float {
	return new(big.Float).Set(p.scale)
}

// Float64Scale returns 2^r as a float64.
func (p *PrecisionContext) Float64Scale() float64 {
	f, _ := p.scale.Float64()
	return f
}

// Chain returns the modulus chain of the context.
func (p *PrecisionContext) Chain() rlwe.ModulusChain {
	return p.chain
}

// Level returns the current level.
func (p *PrecisionContext) Level() int {
	return p.level
}

// AtLevel returns a copy of the context at the given level.
func (p *PrecisionContext) AtLevel(level int) (*PrecisionContext, error) {

	if level < 0 || level >= p.chain.Levels() {
		return nil, fmt.Errorf("cannot AtLevel: level must be in [0, %d] but is %d: %w", p.chain.Levels()-1, level, ErrInvalidParameter)
	}

	pCopy := *p
	pCopy.level = level
	return &pCopy, nil
}

// CurrentLevelCapacityBits returns the capacity in bits of the modulus at the current level.
func (p *PrecisionContext) CurrentLevelCapacityBits() int {
	return p.chain.CapacityBits(p.level)
}

// ValidatePrecision returns an error wrapping ErrInsufficientLevel if r exceeds
// the capacity of the current level.
func (p *PrecisionContext) ValidatePrecision() error {
	if capacity := p.CurrentLevelCapacityBits(); p.logScale > float64(capacity) {
		return fmt.Errorf("logScale=%v > capacity=%d bits at level %d: %w", p.logScale, capacity, p.level, ErrInsufficientLevel)
	}
	return nil
}
