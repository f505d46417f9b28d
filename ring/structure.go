package ring

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/TaihouKai/HElib/utils"
	"github.com/TaihouKai/HElib/utils/factorization"
)

// Structure is the algebraic structure of the m-th cyclotomic ring Z[X]/(Phi_m(X)),
// together with the set T of slot root exponents.
//
// The group (Z/mZ)^* is decomposed as a product of cyclic groups <g_0> x ... x <g_{k-1}>,
// one or two per prime power of m. T is a transversal of (Z/mZ)^*/<-1>: it contains
// exactly one element of each pair {t, m-t}. The i-th slot of an encoded polynomial
// c(X) is c(zeta^{T[i]}) with zeta = exp(2*pi*i/m).
//
// A Structure is immutable and can be shared by concurrent readers.
type Structure struct {
	m          int
	phi        int
	factors    []factorization.PrimePower
	generators []int
	orders     []int
	slots      []int
	exponents  [][]int
	evaluation []int
}

// NewStructure computes the Structure of the m-th cyclotomic ring.
// Returns an error wrapping ErrInvalidParameter if m < 2 or m > MaxCyclotomicIndex.
func NewStructure(m int) (s *Structure, err error) {

	if m < 2 || m > MaxCyclotomicIndex {
		return nil, fmt.Errorf("cannot NewStructure: m must be in [2, %d] but is %d: %w", MaxCyclotomicIndex, m, ErrInvalidParameter)
	}

	s = &Structure{m: m}

	s.factors = factorization.GetPrimePowers(uint64(m))
	s.phi = int(factorization.Totient(s.factors))

	if s.generators, s.orders, err = cyclicDecomposition(m, s.factors); err != nil {
		return nil, fmt.Errorf("cannot NewStructure: %w", err)
	}

	s.slots, s.exponents = slotTransversal(m, s.generators, s.orders)

	s.evaluation = make([]int, 0, s.phi)
	s.evaluation = append(s.evaluation, s.slots...)
	if m > 2 {
		for _, t := range s.slots {
			s.evaluation = append(s.evaluation, m-t)
		}
	}

	if err = s.check(); err != nil {
		return nil, fmt.Errorf("cannot NewStructure: %w", err)
	}

	return
}

// check verifies the invariants of a newly built Structure.
func (s *Structure) check() error {

	prod := 1
	for _, pp := range s.factors {
		prod *= int(pp.Value())
	}

	if prod != s.m {
		return fmt.Errorf("factorization of m=%d is incomplete", s.m)
	}

	for i, g := range s.generators {
		if utils.GCD(g, s.m) != 1 {
			return fmt.Errorf("generator %d = %d is not a unit mod m=%d", i, g, s.m)
		}
	}

	if len(s.slots) < 1 {
		return fmt.Errorf("m=%d has no slot", s.m)
	}

	if s.m > 2 && (s.phi&1 != 0 || 2*len(s.slots) != s.phi) {
		return fmt.Errorf("m=%d: expected phi(m)/2=%d slots but got %d", s.m, s.phi/2, len(s.slots))
	}

	if len(s.evaluation) != s.phi {
		return fmt.Errorf("m=%d: expected phi(m)=%d evaluation points but got %d", s.m, s.phi, len(s.evaluation))
	}

	return nil
}

// cyclicDecomposition returns generators and their orders such that (Z/mZ)^* is
// the internal direct product of the cyclic groups they generate.
// The generator 5 of the 2-part comes first, then the generators of the odd
// prime powers by increasing prime, then the generator -1 of the 2-part.
func cyclicDecomposition(m int, factors []factorization.PrimePower) (generators, orders []int, err error) {

	generators = []int{}
	orders = []int{}

	var minusOne []int

	for _, pp := range factors {

		q := int(pp.Value())

		if pp.Prime == 2 {

			if pp.Exponent >= 3 {
				generators = append(generators, crtLift(GaloisGen, q, m))
				orders = append(orders, q>>2)
			}

			if pp.Exponent >= 2 {
				minusOne = []int{crtLift(q-1, q, m), 2}
			}

			continue
		}

		var g int
		if g, err = primePowerPrimitiveRoot(pp); err != nil {
			return nil, nil, err
		}

		generators = append(generators, crtLift(g, q, m))
		orders = append(orders, q/int(pp.Prime)*int(pp.Prime-1))
	}

	if minusOne != nil {
		generators = append(generators, minusOne[0])
		orders = append(orders, minusOne[1])
	}

	return
}

// primePowerPrimitiveRoot returns a generator of (Z/p^eZ)^* for an odd prime p.
// A primitive root g mod p is also one mod p^e unless g^{p-1} = 1 mod p^2,
// in which case g+p is.
func primePowerPrimitiveRoot(pp factorization.PrimePower) (g int, err error) {

	var root uint64
	if root, _, err = PrimitiveRoot(pp.Prime, nil); err != nil {
		return
	}

	if pp.Exponent >= 2 {
		p2 := pp.Prime * pp.Prime
		if ModExp(root, pp.Prime-1, p2) == 1 {
			root += pp.Prime
		}
	}

	return int(root), nil
}

// crtLift returns G in [0, m) such that G = g mod q and G = 1 mod m/q.
func crtLift(g, q, m int) int {

	r := m / q

	if r == 1 {
		return g % q
	}

	// G = 1 + r * k with k = (g-1) * r^{-1} mod q
	k := MulMod(uint64(((g-1)%q+q)%q), modInverse(uint64(r%q), uint64(q)), uint64(q))

	return int((1 + uint64(r)*k) % uint64(m))
}

// modInverse returns x^{-1} mod q for x coprime to q.
func modInverse(x, q uint64) uint64 {

	var t, newT int64 = 0, 1
	var r, newR = int64(q), int64(x % q)

	for newR != 0 {
		quo := r / newR
		t, newT = newT, t-quo*newT
		r, newR = newR, r-quo*newR
	}

	if r != 1 {
		// Sanity check, inputs are coprime by construction.
		panic(fmt.Errorf("%d is not invertible mod %d", x, q))
	}

	if t < 0 {
		t += int64(q)
	}

	return uint64(t)
}

// slotTransversal enumerates the exponent vectors of the generators in mixed
// radix, last generator fastest, and keeps t = prod g_i^{e_i} mod m unless
// m-t has already been kept.
func slotTransversal(m int, generators, orders []int) (slots []int, exponents [][]int) {

	seen := make(map[int]bool)

	e := make([]int, len(generators))

	for {

		t := 1
		for i, g := range generators {
			t = int(MulMod(uint64(t), ModExp(uint64(g), uint64(e[i]), uint64(m)), uint64(m)))
		}

		if !seen[(m-t)%m] {
			seen[t] = true
			slots = append(slots, t)
			exponents = append(exponents, append([]int{}, e...))
		}

		i := len(e) - 1
		for ; i >= 0; i-- {
			if e[i]++; e[i] < orders[i] {
				break
			}
			e[i] = 0
		}

		if i < 0 {
			return
		}
	}
}

// M returns the cyclotomic index m.
func (s *Structure) M() int {
	return s.m
}

// Degree returns phi(m), the degree of the ring and the number of coefficients
// of its elements.
func (s *Structure) Degree() int {
	return s.phi
}

// Slots returns the number of complex slots: phi(m)/2 for m > 2 and 1 for m = 2.
func (s *Structure) Slots() int {
	return len(s.slots)
}

// Factors returns the prime power factorization of m.
func (s *Structure) Factors() []factorization.PrimePower {
	return append([]factorization.PrimePower{}, s.factors...)
}

// Generators returns the generators of the cyclic decomposition of (Z/mZ)^*.
func (s *Structure) Generators() []int {
	return append([]int{}, s.generators...)
}

// Orders returns the orders of the generators.
func (s *Structure) Orders() []int {
	return append([]int{}, s.orders...)
}

// SlotRoots returns T, the slot root exponents in slot order.
func (s *Structure) SlotRoots() []int {
	return append([]int{}, s.slots...)
}

// SlotRoot returns T[i].
func (s *Structure) SlotRoot(i int) int {
	return s.slots[i]
}

// SlotExponents returns the exponent vector e of the i-th slot,
// such that T[i] = prod_j g_j^{e_j} mod m.
func (s *Structure) SlotExponents(i int) []int {
	return append([]int{}, s.exponents[i]...)
}

// EvaluationExponents returns the phi(m) exponents at which a polynomial is
// evaluated to obtain its canonical embedding: T followed by m-t for each t in T.
// For m = 2 it returns [1].
func (s *Structure) EvaluationExponents() []int {
	return append([]int{}, s.evaluation...)
}

// IsPowerOfTwo returns true if m is a power of two.
func (s *Structure) IsPowerOfTwo() bool {
	return utils.IsPowerOfTwo(s.m)
}

// Equal returns true if both structures are identical.
func (s *Structure) Equal(other *Structure) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.m == other.m &&
		s.phi == other.phi &&
		cmp.Equal(s.factors, other.factors) &&
		cmp.Equal(s.generators, other.generators) &&
		cmp.Equal(s.orders, other.orders) &&
		cmp.Equal(s.slots, other.slots) &&
		cmp.Equal(s.exponents, other.exponents)
}

// Description is a read-only summary of a Structure.
type Description struct {
	M          int
	Degree     int
	Slots      int
	Factors    []factorization.PrimePower
	Generators []int
	Orders     []int
}

// Describe returns a read-only summary of the structure.
func (s *Structure) Describe() Description {
	return Description{
		M:          s.m,
		Degree:     s.phi,
		Slots:      s.Slots(),
		Factors:    s.Factors(),
		Generators: s.Generators(),
		Orders:     s.Orders(),
	}
}

// Factorization returns the factorization of m as a string, for example "2^4" or "3 * 5".
func (d Description) Factorization() string {
	parts := make([]string, len(d.Factors))
	for i, pp := range d.Factors {
		if pp.Exponent == 1 {
			parts[i] = fmt.Sprintf("%d", pp.Prime)
		} else {
			parts[i] = fmt.Sprintf("%d^%d", pp.Prime, pp.Exponent)
		}
	}
	return strings.Join(parts, " * ")
}

func (d Description) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "m = %d = %s\n", d.M, d.Factorization())
	fmt.Fprintf(&sb, "phi(m) = %d\n", d.Degree)
	fmt.Fprintf(&sb, "slots = %d\n", d.Slots)
	fmt.Fprintf(&sb, "generators = %v\n", d.Generators)
	fmt.Fprintf(&sb, "orders = %v\n", d.Orders)
	return sb.String()
}
