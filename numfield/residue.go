package numfield

import (
	"errors"
	"fmt"
	"math/big"

	"anf-kernel/internal/kfield"
)

// ErrNoResidueField is returned for prime factors that were not produced by
// the Dedekind-Kummer criterion and so carry no residue polynomial.
var ErrNoResidueField = errors.New("numfield: prime factor has no residue polynomial")

// ResidueField is O_K/P for a prime P over p, presented as F_p[t]/(chi) where t
// is the image of the integral generator.
type ResidueField struct {
	*kfield.Field
	ring  *RingOfIntegers
	gen   *generatorData
	prime PrimeIdealFactor
}

// ResidueField returns the residue field of a prime factor from SplitPrime.
func (r *RingOfIntegers) ResidueField(f PrimeIdealFactor) (*ResidueField, error) {
	if f.chi == nil {
		return nil, ErrNoResidueField
	}
	gen, err := r.generator()
	if err != nil {
		return nil, err
	}
	k, err := kfield.NewField(f.P.Uint64(), f.chi)
	if err != nil {
		return nil, fmt.Errorf("numfield: residue field at %s: %w", f.Prime, err)
	}
	return &ResidueField{Field: k, ring: r, gen: gen, prime: f}, nil
}

// Prime returns the prime ideal the field is attached to.
func (rf *ResidueField) Prime() PrimeIdealFactor { return rf.prime }

// Reduce maps a ring element to O_K/P. Writing a = sum c_j theta^j with
// theta = d*x, each c_j = a_j/d^j has a denominator prime to p.
func (rf *ResidueField) Reduce(a Element) kfield.Elem {
	p := new(big.Int).SetUint64(rf.P)
	x := rf.ring.ToANF(a)
	n := rf.ring.Degree()
	out := make(kfield.Poly, n)
	dj := big.NewInt(1)
	for j := 0; j < n; j++ {
		c := new(big.Rat).Quo(x.Coeff(j), new(big.Rat).SetInt(dj))
		den := new(big.Int).Mod(c.Denom(), p)
		if den.Sign() == 0 {
			panic(fmt.Sprintf("numfield: coordinate %s of %s is not %s-integral", c.RatString(), a, p))
		}
		num := new(big.Int).Mod(c.Num(), p).Uint64()
		out[j] = kfield.MulMod(num, kfield.Inv(den.Uint64(), rf.P), rf.P)
		dj.Mul(dj, rf.gen.scale)
	}
	return rf.FromPoly(out)
}
