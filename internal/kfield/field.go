// Package kfield implements arithmetic over prime fields F_p: polynomials in
// F_p[x] and their factorization, finite fields F_p[x]/(chi) and dense linear
// algebra over F_p. Moduli are word-sized primes.
package kfield

import (
	"fmt"
	"math/big"
)

// Field describes F_{p^f} = F_p[X]/(chi(X)) in the power basis of X.
type Field struct {
	P   uint64
	F   int
	Chi Poly
	r   PolyRing
}

// Elem is a field element given by its F coordinates in the power basis.
type Elem struct {
	Limb []uint64
}

// NewField builds F_p[X]/(chi). chi is made monic and must be irreducible.
func NewField(p uint64, chi Poly) (*Field, error) {
	r, err := NewPolyRing(p)
	if err != nil {
		return nil, err
	}
	chi = r.Monic(chi)
	if Deg(chi) < 1 {
		return nil, fmt.Errorf("kfield: modulus must have positive degree")
	}
	if !r.IsIrreducible(chi) {
		return nil, fmt.Errorf("kfield: %s is reducible mod %d", r.String(chi), p)
	}
	return &Field{P: p, F: Deg(chi), Chi: chi, r: r}, nil
}

// Size returns p^f.
func (k *Field) Size() *big.Int {
	return new(big.Int).Exp(new(big.Int).SetUint64(k.P), big.NewInt(int64(k.F)), nil)
}

func (k *Field) Zero() Elem { return Elem{Limb: make([]uint64, k.F)} }

func (k *Field) One() Elem {
	e := k.Zero()
	e.Limb[0] = 1 % k.P
	return e
}

// FromPoly reduces an F_p[X] polynomial modulo chi.
func (k *Field) FromPoly(a Poly) Elem {
	rem := k.r.Mod(a, k.Chi)
	e := k.Zero()
	copy(e.Limb, rem)
	return e
}

func (k *Field) toPoly(e Elem) Poly { return k.r.Trim(e.Limb) }

func (k *Field) Add(a, b Elem) Elem { return k.FromPoly(k.r.Add(a.Limb, b.Limb)) }

func (k *Field) Sub(a, b Elem) Elem { return k.FromPoly(k.r.Sub(a.Limb, b.Limb)) }

func (k *Field) Mul(a, b Elem) Elem { return k.FromPoly(k.r.Mul(a.Limb, b.Limb)) }

func (k *Field) IsZero(e Elem) bool { return len(k.toPoly(e)) == 0 }

func (k *Field) Equal(a, b Elem) bool { return k.r.Equal(a.Limb, b.Limb) }

// Pow returns base^exp for a non-negative exp.
func (k *Field) Pow(base Elem, exp *big.Int) Elem {
	return k.FromPoly(k.r.PowMod(k.toPoly(base), exp, k.Chi))
}

// Inv returns a^(p^f-2). It panics on zero.
func (k *Field) Inv(a Elem) Elem {
	if k.IsZero(a) {
		panic("kfield: inverse of zero element")
	}
	exp := k.Size()
	exp.Sub(exp, big.NewInt(2))
	return k.Pow(a, exp)
}

func (k *Field) String(e Elem) string {
	return fmt.Sprintf("%s mod (%s, %d)", k.r.String(k.toPoly(e)), k.r.String(k.Chi), k.P)
}
