// Package structure defines the algebraic capability interfaces the number
// field code is written against, together with the integers and rationals as
// concrete instances.
//
// The interfaces nest: every Field is an IntegralDomain, which is a Ring, which
// is a Semiring. Implementations are stateless handles over an element type E;
// elements themselves carry no behaviour.
package structure

// Semiring is a commutative semiring over E.
type Semiring[E any] interface {
	Zero() E
	One() E
	Add(a, b E) E
	Mul(a, b E) E
	Equal(a, b E) bool
}

// Ring adds additive inverses.
type Ring[E any] interface {
	Semiring[E]
	Neg(a E) E
	Sub(a, b E) E
}

// IntegralDomain is a ring without zero divisors.
type IntegralDomain[E any] interface {
	Ring[E]
	IsZero(a E) bool
}

// Field is an integral domain in which every non-zero element is invertible.
type Field[E any] interface {
	IntegralDomain[E]
	Inv(a E) (E, error)
}

// EuclideanDomain provides division with remainder.
type EuclideanDomain[E any] interface {
	IntegralDomain[E]
	QuoRem(a, b E) (q, r E)
}

// DedekindDomain is an integral domain whose ideals, of type I, can be added,
// multiplied, intersected and compared.
type DedekindDomain[E, I any] interface {
	IntegralDomain[E]
	PrincipalIdeal(a E) I
	ZeroIdealValue() I
	UnitIdeal() I
	IdealAdd(a, b I) I
	IdealMul(a, b I) I
	IdealIntersect(a, b I) I
	IdealEqual(a, b I) bool
	IdealContains(a, b I) bool
	IdealContainsElement(a I, x E) bool
}

// Pow returns a^k by square and multiply. It panics for negative k.
func Pow[E any](r Semiring[E], a E, k int) E {
	if k < 0 {
		panic("structure: negative exponent")
	}
	out := r.One()
	for k > 0 {
		if k&1 == 1 {
			out = r.Mul(out, a)
		}
		k >>= 1
		if k > 0 {
			a = r.Mul(a, a)
		}
	}
	return out
}

// IdealProduct multiplies ideals, returning the unit ideal for an empty list.
func IdealProduct[E, I any](d DedekindDomain[E, I], ideals []I) I {
	out := d.UnitIdeal()
	for _, a := range ideals {
		out = d.IdealMul(out, a)
	}
	return out
}

// IdealPow returns a^k. It panics for negative k.
func IdealPow[E, I any](d DedekindDomain[E, I], a I, k int) I {
	if k < 0 {
		panic("structure: negative exponent")
	}
	out := d.UnitIdeal()
	for k > 0 {
		if k&1 == 1 {
			out = d.IdealMul(out, a)
		}
		k >>= 1
		if k > 0 {
			a = d.IdealMul(a, a)
		}
	}
	return out
}
