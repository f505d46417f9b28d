package ckks

import (
	"fmt"
	"math"

	"github.com/TaihouKai/HElib/ring"
	"github.com/TaihouKai/HElib/utils/sampling"
)

// VectorKind selects the sampling domain of Encoder.RandomVector.
type VectorKind int

const (
	// Real samples values uniformly in [-1, 1].
	Real VectorKind = iota
	// Complex samples values uniformly in the unit disc.
	Complex
	// Integer samples values uniformly in {0, 1}.
	Integer
)

func (k VectorKind) String() string {
	switch k {
	case Real:
		return "Real"
	case Complex:
		return "Complex"
	case Integer:
		return "Integer"
	default:
		return "Unknown"
	}
}

// Encoder is a type that implements the encoding and decoding interface for the CKKS scheme.
// It owns a ring structure, a slot transform and a default precision context.
// An Encoder holds no mutable state: Encode and Decode can be called concurrently,
// and each call returns a freshly allocated value.
type Encoder struct {
	structure *ring.Structure
	transform Transform
	prec      *PrecisionContext
}

// NewEncoder creates a new Encoder from the target parameters.
// The transform backend is resolved once, see Backend.Resolve.
func NewEncoder(params Parameters) (ecd *Encoder, err error) {

	var tr Transform
	if tr, err = NewTransform(params.Structure(), params.Backend()); err != nil {
		return nil, fmt.Errorf("cannot NewEncoder: %w", err)
	}

	var prec *PrecisionContext
	if prec, err = params.PrecisionContext(); err != nil {
		return nil, fmt.Errorf("cannot NewEncoder: %w", err)
	}

	return NewEncoderFromTransform(params.Structure(), tr, prec)
}

// NewEncoderFromTransform creates a new Encoder from an explicit transform and precision context.
func NewEncoderFromTransform(s *ring.Structure, tr Transform, prec *PrecisionContext) (*Encoder, error) {

	if s == nil || tr == nil || prec == nil {
		return nil, fmt.Errorf("cannot NewEncoderFromTransform: structure, transform and precision context must be non-nil: %w", ErrInvalidParameter)
	}

	if tr.Slots() != s.Slots() || tr.Degree() != s.Degree() {
		return nil, fmt.Errorf("cannot NewEncoderFromTransform: transform has %d slots and degree %d but structure has %d slots and degree %d: %w",
			tr.Slots(), tr.Degree(), s.Slots(), s.Degree(), ErrDimensionMismatch)
	}

	return &Encoder{
		structure: s,
		transform: tr,
		prec:      prec,
	}, nil
}

// ShallowCopy returns a shallow copy of the Encoder.
// The copy shares the read-only structure, transform and precision context.
func (ecd *Encoder) ShallowCopy() *Encoder {
	return &Encoder{
		structure: ecd.structure,
		transform: ecd.transform,
		prec:      ecd.prec,
	}
}

// Slots returns the number of slots.
func (ecd *Encoder) Slots() int {
	return ecd.structure.Slots()
}

// Degree returns the number of coefficients of the encoded polynomials.
func (ecd *Encoder) Degree() int {
	return ecd.structure.Degree()
}

// Structure returns the ring structure of the Encoder.
func (ecd *Encoder) Structure() *ring.Structure {
	return ecd.structure
}

// Transform returns the slot transform of the Encoder.
func (ecd *Encoder) Transform() Transform {
	return ecd.transform
}

// PrecisionContext returns the default precision context of the Encoder.
func (ecd *Encoder) PrecisionContext() *PrecisionContext {
	return ecd.prec
}

// Encode encodes a slot vector on a new polynomial with the default precision context.
// Accepted types for values are []complex128, []float64 and []int64, of length Slots().
func (ecd *Encoder) Encode(values interface{}) (*ring.Poly, error) {
	return ecd.EncodeAtPrecision(values, ecd.prec)
}

// EncodeAtPrecision encodes a slot vector on a new polynomial with the given precision context:
//  1. the values are mapped to real coefficients by the forward slot transform
//  2. each coefficient is multiplied by 2^r and rounded to the nearest integer, ties away from zero
//
// It returns an error wrapping ErrInvalidParameter if prec is nil,
// ErrDimensionMismatch if the length of values is not Slots(),
// ErrInsufficientLevel if r exceeds the capacity of the current level of the context,
// and ErrInvalidParameter if a value is not finite.
func (ecd *Encoder) EncodeAtPrecision(values interface{}, prec *PrecisionContext) (p *ring.Poly, err error) {

	if prec == nil {
		return nil, fmt.Errorf("cannot Encode: precision context is nil: %w", ErrInvalidParameter)
	}

	var slots []complex128
	if slots, err = ecd.toComplex(values); err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	if err = prec.ValidatePrecision(); err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	for i, v := range slots {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) || math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
			return nil, fmt.Errorf("cannot Encode: values[%d]=%v is not finite: %w", i, v, ErrInvalidParameter)
		}
	}

	var coeffs []float64
	if coeffs, err = ecd.transform.Forward(slots); err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	p = &ring.Poly{}
	if p.Coeffs, err = FloatToFixedPoint(coeffs, prec.scale); err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	return
}

// Decode decodes a polynomial with the default precision context on values.
// Accepted types for values are []complex128 and []float64, of length Slots().
// For []float64, the imaginary parts are discarded.
func (ecd *Encoder) Decode(p *ring.Poly, values interface{}) (err error) {
	return ecd.DecodeAtPrecision(p, ecd.prec, values)
}

// DecodeNew decodes a polynomial with the default precision context on a new slot vector.
func (ecd *Encoder) DecodeNew(p *ring.Poly) (values []complex128, err error) {
	values = make([]complex128, ecd.Slots())
	if err = ecd.Decode(p, values); err != nil {
		return nil, err
	}
	return
}

// DecodeAtPrecision decodes a polynomial with the given precision context on values:
//  1. each coefficient is divided by 2^r
//  2. the result is evaluated at the slot roots by the inverse slot transform
//
// It returns an error wrapping ErrInvalidParameter if prec is nil, and
// ErrDimensionMismatch if p does not have Degree() coefficients
// or if values does not have Slots() elements.
func (ecd *Encoder) DecodeAtPrecision(p *ring.Poly, prec *PrecisionContext, values interface{}) (err error) {

	if prec == nil {
		return fmt.Errorf("cannot Decode: precision context is nil: %w", ErrInvalidParameter)
	}

	if p == nil || p.N() != ecd.Degree() {
		n := 0
		if p != nil {
			n = p.N()
		}
		return fmt.Errorf("cannot Decode: polynomial has %d coefficients but degree is %d: %w", n, ecd.Degree(), ErrDimensionMismatch)
	}

	var slots []complex128
	if slots, err = ecd.transform.Inverse(FixedPointToFloat(p.Coeffs, prec.scale)); err != nil {
		return fmt.Errorf("cannot Decode: %w", err)
	}

	switch values := values.(type) {
	case []complex128:
		if len(values) != len(slots) {
			return fmt.Errorf("cannot Decode: len(values)=%d != %d: %w", len(values), len(slots), ErrDimensionMismatch)
		}
		copy(values, slots)
	case []float64:
		if len(values) != len(slots) {
			return fmt.Errorf("cannot Decode: len(values)=%d != %d: %w", len(values), len(slots), ErrDimensionMismatch)
		}
		for i := range values {
			values[i] = real(slots[i])
		}
	default:
		return fmt.Errorf("cannot Decode: invalid values.(type), accepted types are []complex128 and []float64 but is %T", values)
	}

	return
}

// RandomVector samples a new slot vector of the given kind.
// If prng is nil, the process-wide secure source is used.
// The sampled vector is not guaranteed to be non-zero.
func (ecd *Encoder) RandomVector(kind VectorKind, prng sampling.PRNG) (values []complex128, err error) {

	source := sampling.NewSource(prng)

	values = make([]complex128, ecd.Slots())

	switch kind {
	case Real:
		for i := range values {
			values[i] = complex(source.Float64(-1, 1), 0)
		}
	case Complex:
		// rejection sampling in the unit disc
		for i := range values {
			for {
				z := source.Complex128(-1, 1)
				if real(z)*real(z)+imag(z)*imag(z) <= 1 {
					values[i] = z
					break
				}
			}
		}
	case Integer:
		for i := range values {
			values[i] = complex(float64(source.Uint64n(2)), 0)
		}
	default:
		return nil, fmt.Errorf("cannot RandomVector: invalid kind %d: %w", kind, ErrInvalidParameter)
	}

	return
}

// RandomRealVector samples a new vector of Slots() values uniformly in [-1, 1].
func (ecd *Encoder) RandomRealVector(prng sampling.PRNG) []float64 {
	source := sampling.NewSource(prng)
	values := make([]float64, ecd.Slots())
	for i := range values {
		values[i] = source.Float64(-1, 1)
	}
	return values
}

// RandomIntegerVector samples a new vector of Slots() values uniformly in [0, bound).
func (ecd *Encoder) RandomIntegerVector(bound int64, prng sampling.PRNG) ([]int64, error) {

	if bound < 1 {
		return nil, fmt.Errorf("cannot RandomIntegerVector: bound must be positive but is %d: %w", bound, ErrInvalidParameter)
	}

	source := sampling.NewSource(prng)
	values := make([]int64, ecd.Slots())
	for i := range values {
		values[i] = int64(source.Uint64n(uint64(bound)))
	}
	return values, nil
}

func (ecd *Encoder) toComplex(values interface{}) (slots []complex128, err error) {

	switch values := values.(type) {
	case []complex128:
		slots = make([]complex128, len(values))
		copy(slots, values)
	case []float64:
		slots = make([]complex128, len(values))
		for i, v := range values {
			slots[i] = complex(v, 0)
		}
	case []int64:
		slots = make([]complex128, len(values))
		for i, v := range values {
			slots[i] = complex(float64(v), 0)
		}
	default:
		return nil, fmt.Errorf("invalid values.(type), accepted types are []complex128, []float64 and []int64 but is %T: %w", values, ErrInvalidParameter)
	}

	if len(slots) != ecd.Slots() {
		return nil, fmt.Errorf("len(values)=%d != %d: %w", len(slots), ecd.Slots(), ErrDimensionMismatch)
	}

	return
}
