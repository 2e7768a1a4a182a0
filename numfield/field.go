// Package numfield implements algebraic number fields Q[x]/(m), their rings of
// integers and the ideals of those rings.
//
// Field elements are poly.Poly values reduced modulo the monic modulus. The
// ring of integers is described by an integral basis computed once per field;
// its elements are integer coordinate vectors in that basis, and its non-zero
// ideals are full-rank sublattices of the coordinate space.
package numfield

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"anf-kernel/linalg"
	"anf-kernel/poly"
	"anf-kernel/structure"
)

var (
	ErrDegree         = errors.New("numfield: modulus must have degree at least 1")
	ErrNotSquarefree  = errors.New("numfield: modulus is not squarefree")
	ErrDivisionByZero = errors.New("numfield: division by zero")
	ErrNotInvertible  = errors.New("numfield: element is not invertible (modulus is reducible)")
)

// Field is Q[x]/(m) for a monic irreducible m. It is safe for concurrent use.
type Field struct {
	mod  poly.Poly
	n    int
	opts Options

	basisOnce sync.Once
	basis     IntegralBasis
	basisErr  error

	ringOnce sync.Once
	ring     *RingOfIntegers
	ringErr  error
}

var _ structure.Field[poly.Poly] = (*Field)(nil)

// NewField returns Q[x]/(m) with default options. m is made monic.
func NewField(m poly.Poly) (*Field, error) {
	return NewFieldWithOptions(m, Options{})
}

// NewFieldWithOptions is NewField with explicit options.
func NewFieldWithOptions(m poly.Poly, opts Options) (*Field, error) {
	if m.Degree() < 1 {
		return nil, ErrDegree
	}
	m = m.Monic()
	if poly.GCD(m, m.Derivative()).Degree() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotSquarefree, m)
	}
	opts.ApplyDefaults()
	return &Field{mod: m, n: m.Degree(), opts: opts}, nil
}

// Degree returns [K : Q].
func (k *Field) Degree() int { return k.n }

// Modulus returns the monic defining polynomial.
func (k *Field) Modulus() poly.Poly { return k.mod }

func (k *Field) String() string { return fmt.Sprintf("Q[x]/(%s)", k.mod) }

// Reduce returns the canonical representative of p modulo m.
func (k *Field) Reduce(p poly.Poly) poly.Poly { return p.Mod(k.mod) }

func (k *Field) Zero() poly.Poly { return poly.Zero() }

func (k *Field) One() poly.Poly { return k.Reduce(poly.One()) }

// Generator returns the class of x.
func (k *Field) Generator() poly.Poly { return k.Reduce(poly.X()) }

func (k *Field) FromInt(a *big.Int) poly.Poly { return poly.Const(new(big.Rat).SetInt(a)) }

func (k *Field) FromRat(a *big.Rat) poly.Poly { return poly.Const(a) }

func (k *Field) Add(a, b poly.Poly) poly.Poly { return a.Add(b) }

func (k *Field) Sub(a, b poly.Poly) poly.Poly { return a.Sub(b) }

func (k *Field) Neg(a poly.Poly) poly.Poly { return a.Neg() }

func (k *Field) Mul(a, b poly.Poly) poly.Poly { return k.Reduce(a.Mul(b)) }

func (k *Field) Equal(a, b poly.Poly) bool { return k.Reduce(a).Equal(k.Reduce(b)) }

func (k *Field) IsZero(a poly.Poly) bool { return k.Reduce(a).IsZero() }

// Pow returns a^e for e >= 0.
func (k *Field) Pow(a poly.Poly, e int) poly.Poly {
	return structure.Pow[poly.Poly](k, k.Reduce(a), e)
}

// Inv returns a^-1 by extended Euclid against the modulus.
func (k *Field) Inv(a poly.Poly) (poly.Poly, error) {
	a = k.Reduce(a)
	if a.IsZero() {
		return poly.Poly{}, ErrDivisionByZero
	}
	g, s, _ := poly.ExtGCD(a, k.mod)
	if g.Degree() != 0 {
		return poly.Poly{}, fmt.Errorf("%w: gcd %s", ErrNotInvertible, g)
	}
	return k.Reduce(s), nil
}

// Div returns a/b.
func (k *Field) Div(a, b poly.Poly) (poly.Poly, error) {
	inv, err := k.Inv(b)
	if err != nil {
		return poly.Poly{}, err
	}
	return k.Mul(a, inv), nil
}

// ToVector returns the power basis coordinates of a.
func (k *Field) ToVector(a poly.Poly) []*big.Rat {
	a = k.Reduce(a)
	out := make([]*big.Rat, k.n)
	for i := range out {
		out[i] = a.Coeff(i)
	}
	return out
}

// FromVector is the inverse of ToVector.
func (k *Field) FromVector(v []*big.Rat) poly.Poly {
	if len(v) != k.n {
		panic(fmt.Sprintf("numfield: vector of length %d in degree %d", len(v), k.n))
	}
	return poly.New(v...)
}

// MulMatrix returns the matrix of multiplication by a in the power basis,
// acting on row vectors: row i holds the coordinates of a*x^i.
func (k *Field) MulMatrix(a poly.Poly) linalg.RatMatrix {
	rows := make([][]*big.Rat, k.n)
	cur := k.Reduce(a)
	x := k.Generator()
	for i := 0; i < k.n; i++ {
		rows[i] = k.ToVector(cur)
		cur = k.Mul(cur, x)
	}
	return linalg.RatFromRows(k.n, rows)
}

// Trace returns the trace of a over Q.
func (k *Field) Trace(a poly.Poly) *big.Rat { return k.MulMatrix(a).Trace() }

// Norm returns the norm of a over Q.
func (k *Field) Norm(a poly.Poly) *big.Rat { return k.MulMatrix(a).Det() }

// CharPoly returns the characteristic polynomial of multiplication by a,
// computed with the Faddeev-LeVerrier recurrence.
func (k *Field) CharPoly(a poly.Poly) poly.Poly {
	n := k.n
	m := k.MulMatrix(a)
	coeffs := make([]*big.Rat, n+1)
	coeffs[n] = big.NewRat(1, 1)
	mk := linalg.NewRatMatrix(n, n)
	for i := 1; i <= n; i++ {
		prod := m.Mul(mk)
		for j := 0; j < n; j++ {
			prod.A[j][j].Add(prod.A[j][j], coeffs[n-i+1])
		}
		mk = prod
		tr := m.Mul(mk).Trace()
		coeffs[n-i] = tr.Mul(tr, big.NewRat(-1, int64(i)))
	}
	return poly.New(coeffs...)
}

// MinPoly returns the monic minimal polynomial of a over Q: the first linear
// relation among 1, a, a^2, ...
func (k *Field) MinPoly(a poly.Poly) poly.Poly {
	a = k.Reduce(a)
	powers := [][]*big.Rat{k.ToVector(k.One())}
	cur := k.One()
	for d := 1; d <= k.n; d++ {
		cur = k.Mul(cur, a)
		powers = append(powers, k.ToVector(cur))
		// Columns are the powers; a kernel vector is a relation among them.
		cols := linalg.RatFromRows(k.n, powers).Transpose()
		ns := cols.Nullspace()
		if len(ns) == 0 {
			continue
		}
		rel := ns[0]
		lead := rel[d]
		if lead.Sign() == 0 {
			panic("numfield: minimal polynomial relation without leading term")
		}
		return poly.New(rel...).Scale(new(big.Rat).Inv(lead))
	}
	panic("numfield: no polynomial relation up to the field degree")
}

// IsAlgebraicInteger reports whether a is integral over Z: its trace, norm and
// every coefficient of its minimal polynomial are integers.
func (k *Field) IsAlgebraicInteger(a poly.Poly) bool {
	if !k.Trace(a).IsInt() || !k.Norm(a).IsInt() {
		return false
	}
	return k.MinPoly(a).IsInteger()
}

// IntegralMultiple returns d*a and d, where d is the lcm of the denominators of
// the minimal polynomial of a; d*a is an algebraic integer.
func (k *Field) IntegralMultiple(a poly.Poly) (poly.Poly, *big.Int) {
	d := k.MinPoly(a).Denominator()
	return k.Reduce(a).Scale(new(big.Rat).SetInt(d)), d
}

// TraceFormMatrix returns (Tr(e_i e_j))_{ij}.
func (k *Field) TraceFormMatrix(elems []poly.Poly) linalg.RatMatrix {
	m := linalg.NewRatMatrix(len(elems), len(elems))
	for i := range elems {
		for j := i; j < len(elems); j++ {
			t := k.Trace(k.Mul(elems[i], elems[j]))
			m.A[i][j].Set(t)
			m.A[j][i].Set(t)
		}
	}
	return m
}

// Discriminant returns det(TraceFormMatrix(elems)).
func (k *Field) Discriminant(elems []poly.Poly) *big.Rat {
	return k.TraceFormMatrix(elems).Det()
}
