package ckks

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/TaihouKai/HElib/ring"
	"github.com/TaihouKai/HElib/rlwe"
)

// ParametersLiteral is a literal representation of the encoding parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs.
// The NewParametersFromLiteral function is used to generate the actual checked parameters
// from the literal representation.
//
// Users must set the cyclotomic index M, the scale LogScale and the modulus chain,
// by either setting Chain.Q to the desired primes or Chain.LogQ to the desired prime sizes.
// The Backend field is optional and defaults to Auto.
type ParametersLiteral struct {
	M        int
	LogScale float64
	Backend  Backend `json:",omitempty"`
	Chain    rlwe.ChainLiteral
}

// Parameters represents a set of checked encoding parameters. Its fields are private and
// immutable. See ParametersLiteral for user-specified parameters.
type Parameters struct {
	structure *ring.Structure
	chain     *rlwe.Chain
	logScale  float64
	backend   Backend
}

// NewParametersFromLiteral instantiate a set of parameters from a ParametersLiteral specification.
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid.
// If the moduli chain is specified through the LogQ field, the primes are generated such that q = 1 mod M.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if math.IsNaN(pl.LogScale) || math.IsInf(pl.LogScale, 0) || pl.LogScale < 0 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: LogScale must be finite and non-negative but is %v: %w", pl.LogScale, ErrInvalidParameter)
	}

	if int(pl.Backend) >= len(backendToString) {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: invalid backend %d: %w", pl.Backend, ErrInvalidParameter)
	}

	if params.structure, err = ring.NewStructure(pl.M); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	if pl.Backend == FFT && !HasFFT(params.structure) {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: backend FFT is not available for m=%d: %w", pl.M, ErrInvalidParameter)
	}

	if params.chain, err = rlwe.NewChainFromLiteral(pl.Chain, pl.M); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	params.logScale = pl.LogScale
	params.backend = pl.Backend

	return
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		M:        p.M(),
		LogScale: p.logScale,
		Backend:  p.backend,
		Chain:    p.chain.ChainLiteral(),
	}
}

// M returns the cyclotomic index.
func (p Parameters) M() int {
	return p.structure.M()
}

// Degree returns phi(M).
func (p Parameters) Degree() int {
	return p.structure.Degree()
}

// Slots returns the number of complex slots.
func (p Parameters) Slots() int {
	return p.structure.Slots()
}

// LogScale returns the log2 of the fixed-point scale.
func (p Parameters) LogScale() float64 {
	return p.logScale
}

// Backend returns the backend of the parameters, possibly Auto.
func (p Parameters) Backend() Backend {
	return p.backend
}

// Structure returns the ring structure of the parameters.
func (p Parameters) Structure() *ring.Structure {
	return p.structure
}

// Chain returns the modulus chain of the parameters.
func (p Parameters) Chain() *rlwe.Chain {
	return p.chain
}

// MaxLevel returns the top level of the modulus chain.
func (p Parameters) MaxLevel() int {
	return p.chain.MaxLevel()
}

// PrecisionContext returns a new PrecisionContext at the top level of the modulus chain.
func (p Parameters) PrecisionContext() (*PrecisionContext, error) {
	return NewPrecisionContext(p.logScale, p.chain)
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other Parameters) bool {
	return p.structure.Equal(other.structure) &&
		p.chain.Equal(other.chain) &&
		p.logScale == other.logScale &&
		p.backend == other.backend
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
