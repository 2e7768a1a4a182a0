package numfield

import (
	"errors"
	"fmt"
	"math/big"

	"anf-kernel/internal/zz"
	"anf-kernel/lattice"
	"anf-kernel/structure"
)

// ErrZeroIdeal is returned by operations that are undefined on the zero ideal.
var ErrZeroIdeal = errors.New("numfield: undefined for the zero ideal")

// Ideal is an ideal of a ring of integers: either ZeroIdeal or NonZeroIdeal.
type Ideal interface {
	isIdeal()
	String() string
}

// ZeroIdeal is the zero ideal.
type ZeroIdeal struct{}

// NonZeroIdeal is a non-zero ideal, stored as a full-rank sublattice of the
// coordinate space of the integral basis.
type NonZeroIdeal struct {
	lat lattice.Lattice
}

func (ZeroIdeal) isIdeal()    {}
func (NonZeroIdeal) isIdeal() {}

func (ZeroIdeal) String() string { return "(0)" }

func (a NonZeroIdeal) String() string { return a.lat.String() }

// Lattice returns the canonical lattice of the ideal.
func (a NonZeroIdeal) Lattice() lattice.Lattice { return a.lat }

// newIdeal wraps a full-rank lattice, asserting closure under multiplication
// by the basis when checks are on.
func (r *RingOfIntegers) newIdeal(lat lattice.Lattice) Ideal {
	if lat.Rank() == 0 {
		return ZeroIdeal{}
	}
	if !lat.IsFullRank() {
		panic(fmt.Sprintf("numfield: non-zero ideal lattice of rank %d in degree %d", lat.Rank(), r.Degree()))
	}
	if r.field.opts.checks() {
		r.checkIdeal(lat)
	}
	return NonZeroIdeal{lat: lat}
}

func (r *RingOfIntegers) checkIdeal(lat lattice.Lattice) {
	n := r.Degree()
	for _, row := range lat.Basis() {
		for i := 0; i < n; i++ {
			if !lat.Contains(r.mulCoords(row, r.BasisElement(i).c)) {
				panic(fmt.Sprintf("numfield: lattice %s is not closed under multiplication by basis element %d", lat, i))
			}
		}
	}
}

// ZeroIdealValue returns the zero ideal.
func (r *RingOfIntegers) ZeroIdealValue() Ideal { return ZeroIdeal{} }

// UnitIdeal returns O_K itself.
func (r *RingOfIntegers) UnitIdeal() Ideal { return NonZeroIdeal{lat: lattice.Full(r.Degree())} }

// PrincipalIdeal returns aO_K.
func (r *RingOfIntegers) PrincipalIdeal(a Element) Ideal {
	if r.IsZero(a) {
		return ZeroIdeal{}
	}
	n := r.Degree()
	span := make([][]*big.Int, n)
	for i := 0; i < n; i++ {
		span[i] = r.mulCoords(a.c, r.BasisElement(i).c)
	}
	return r.newIdeal(lattice.FromSpan(n, span))
}

// IdealFromIntegerSpan returns the ideal whose Z-span is span. The span must
// already be an ideal: zero or of full rank and closed under multiplication.
func (r *RingOfIntegers) IdealFromIntegerSpan(span []Element) Ideal {
	vecs := make([][]*big.Int, len(span))
	for i, e := range span {
		vecs[i] = e.c
	}
	return r.newIdeal(lattice.FromSpan(r.Degree(), vecs))
}

// IdealFromGenerators returns the ideal generated by gens over O_K.
func (r *RingOfIntegers) IdealFromGenerators(gens ...Element) Ideal {
	n := r.Degree()
	var vecs [][]*big.Int
	for _, g := range gens {
		for i := 0; i < n; i++ {
			vecs = append(vecs, r.mulCoords(g.c, r.BasisElement(i).c))
		}
	}
	return r.newIdeal(lattice.FromSpan(n, vecs))
}

// IntegerBasis returns a Z-basis of the ideal; nil for the zero ideal.
func (r *RingOfIntegers) IntegerBasis(a Ideal) []Element {
	nz, ok := a.(NonZeroIdeal)
	if !ok {
		return nil
	}
	rows := nz.lat.Basis()
	out := make([]Element, len(rows))
	for i, row := range rows {
		out[i] = Element{c: row}
	}
	return out
}

func (r *RingOfIntegers) IdealEqual(a, b Ideal) bool {
	switch a := a.(type) {
	case ZeroIdeal:
		_, ok := b.(ZeroIdeal)
		return ok
	case NonZeroIdeal:
		b, ok := b.(NonZeroIdeal)
		return ok && a.lat.Equal(b.lat)
	}
	panic("numfield: unknown ideal variant")
}

// IdealContains reports whether b ⊆ a.
func (r *RingOfIntegers) IdealContains(a, b Ideal) bool {
	switch b := b.(type) {
	case ZeroIdeal:
		return true
	case NonZeroIdeal:
		a, ok := a.(NonZeroIdeal)
		return ok && a.lat.ContainsLattice(b.lat)
	}
	panic("numfield: unknown ideal variant")
}

// IdealContainsElement reports whether x ∈ a.
func (r *RingOfIntegers) IdealContainsElement(a Ideal, x Element) bool {
	switch a := a.(type) {
	case ZeroIdeal:
		return r.IsZero(x)
	case NonZeroIdeal:
		return a.lat.Contains(x.c)
	}
	panic("numfield: unknown ideal variant")
}

func (r *RingOfIntegers) IdealIntersect(a, b Ideal) Ideal {
	an, ok1 := a.(NonZeroIdeal)
	bn, ok2 := b.(NonZeroIdeal)
	if !ok1 || !ok2 {
		return ZeroIdeal{}
	}
	return r.newIdeal(an.lat.Intersect(bn.lat))
}

func (r *RingOfIntegers) IdealAdd(a, b Ideal) Ideal {
	an, ok1 := a.(NonZeroIdeal)
	bn, ok2 := b.(NonZeroIdeal)
	switch {
	case !ok1:
		return b
	case !ok2:
		return a
	}
	return r.newIdeal(an.lat.Add(bn.lat))
}

// IdealMul returns the ideal spanned by the n^2 products of the two bases.
func (r *RingOfIntegers) IdealMul(a, b Ideal) Ideal {
	an, ok1 := a.(NonZeroIdeal)
	bn, ok2 := b.(NonZeroIdeal)
	if !ok1 || !ok2 {
		return ZeroIdeal{}
	}
	ab, bb := an.lat.Basis(), bn.lat.Basis()
	span := make([][]*big.Int, 0, len(ab)*len(bb))
	for _, x := range ab {
		for _, y := range bb {
			span = append(span, r.mulCoords(x, y))
		}
	}
	return r.newIdeal(lattice.FromSpan(r.Degree(), span))
}

// IdealProduct multiplies a list of ideals; the empty product is O_K.
func (r *RingOfIntegers) IdealProduct(ideals []Ideal) Ideal {
	return structure.IdealProduct[Element, Ideal](r, ideals)
}

// IdealPow returns a^k for k >= 0.
func (r *RingOfIntegers) IdealPow(a Ideal, k int) Ideal {
	return structure.IdealPow[Element, Ideal](r, a, k)
}

// IdealNorm returns [O_K : a].
func (r *RingOfIntegers) IdealNorm(a Ideal) (*big.Int, error) {
	nz, ok := a.(NonZeroIdeal)
	if !ok {
		return nil, ErrZeroIdeal
	}
	idx, _ := nz.lat.Index()
	return idx, nil
}

// QuotientInvariants returns the elementary divisors d_1 | d_2 | ... greater
// than one with O_K / a isomorphic to the product of the Z/d_i.
func (r *RingOfIntegers) QuotientInvariants(a Ideal) ([]*big.Int, error) {
	nz, ok := a.(NonZeroIdeal)
	if !ok {
		return nil, ErrZeroIdeal
	}
	var out []*big.Int
	for _, d := range nz.lat.Invariants() {
		if d.Cmp(big.NewInt(1)) > 0 {
			out = append(out, d)
		}
	}
	return out, nil
}

// MinimumInteger returns the positive generator of a ∩ Z. It divides the norm
// of a, so the divisors of the norm are tried in increasing order.
func (r *RingOfIntegers) MinimumInteger(a Ideal) (*big.Int, error) {
	norm, err := r.IdealNorm(a)
	if err != nil {
		return nil, err
	}
	_, primes, err := zz.Factor(norm)
	if err != nil {
		return nil, fmt.Errorf("numfield: factoring ideal norm %s: %w", norm, err)
	}
	for _, d := range zz.Divisors(primes) {
		if r.IdealContainsElement(a, r.FromInt(d)) {
			return d, nil
		}
	}
	panic(fmt.Sprintf("numfield: norm %s does not lie in its ideal", norm))
}
