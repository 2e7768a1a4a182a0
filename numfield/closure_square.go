package numfield

import (
	"math/big"

	"anf-kernel/poly"
	"anf-kernel/structure"
)

// IntegralClosureSquare returns the square Z -> O_K, Q -> K with the field's
// minimal polynomial and integral multiple attached.
func (r *RingOfIntegers) IntegralClosureSquare() *structure.IntegralClosureSquare[*big.Int, Element, *big.Rat, poly.Poly] {
	k := r.field
	sq, err := structure.NewIntegralClosureSquare(structure.IntegralClosureSquare[*big.Int, Element, *big.Rat, poly.Poly]{
		ZRing:  structure.Integers{},
		RRing:  r,
		QField: structure.Rationals{},
		KField: k,
		ZToR: structure.Hom[*big.Int, Element]{
			Image: r.FromInt,
			TryPreimage: func(e Element) (*big.Int, bool) {
				a := r.ToANF(e)
				if a.Degree() > 0 {
					return nil, false
				}
				return structure.IntegerInclusion.TryPreimage(a.Coeff(0))
			},
		},
		QToK: structure.Hom[*big.Rat, poly.Poly]{
			Image: k.FromRat,
			TryPreimage: func(a poly.Poly) (*big.Rat, bool) {
				a = k.Reduce(a)
				if a.Degree() > 0 {
					return nil, false
				}
				return a.Coeff(0), true
			},
		},
		ZToQ: structure.IntegerInclusion,
		RToK: structure.Hom[Element, poly.Poly]{
			Image:       r.ToANF,
			TryPreimage: r.TryFromANF,
		},
		MinPoly:     func(a poly.Poly) []*big.Rat { return k.MinPoly(a).Coeffs() },
		Integralize: func(a poly.Poly) *big.Int { return k.MinPoly(a).Denominator() },
	})
	if err != nil {
		panic(err)
	}
	return sq
}

// MinPolyOverZ returns the monic integer minimal polynomial of a, lowest
// degree coefficient first.
func (r *RingOfIntegers) MinPolyOverZ(a Element) []*big.Int {
	return r.IntegralClosureSquare().MinPolyROverZ(a)
}
