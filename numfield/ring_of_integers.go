package numfield

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"anf-kernel/linalg"
	"anf-kernel/poly"
	"anf-kernel/structure"
)

// Element is an element of a ring of integers, given by its integer
// coordinates in the integral basis. Elements are immutable.
type Element struct {
	c []*big.Int
}

// Coefficients returns a copy of the coordinates.
func (e Element) Coefficients() []*big.Int { return cloneInts(e.c) }

func (e Element) String() string {
	parts := make([]string, len(e.c))
	for i, v := range e.c {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RingOfIntegers is O_K with a fixed integral basis. It is safe for concurrent use.
type RingOfIntegers struct {
	field *Field
	basis []poly.Poly
	disc  *big.Int

	// coords maps power basis coordinates to basis coordinates (row vectors).
	coords linalg.RatMatrix
	// table[i][j] holds the coordinates of basis[i]*basis[j].
	table [][][]*big.Int
	one   Element

	genOnce sync.Once
	gen     *generatorData
	genErr  error

	mu     sync.Mutex
	splits map[string][]PrimeIdealFactor
}

var _ structure.DedekindDomain[Element, Ideal] = (*RingOfIntegers)(nil)

// RingOfIntegers returns O_K, computing the integral basis on first use.
func (k *Field) RingOfIntegers() (*RingOfIntegers, error) {
	k.ringOnce.Do(func() {
		ib, err := k.IntegralBasis()
		if err != nil {
			k.ringErr = err
			return
		}
		k.ring, k.ringErr = NewRingOfIntegers(k, ib.Elements, ib.Discriminant)
	})
	return k.ring, k.ringErr
}

// NewRingOfIntegers builds O_K from a caller supplied integral basis and
// discriminant. The basis must be n independent elements; with invariant
// checks on, integrality and the discriminant are verified as well.
func NewRingOfIntegers(k *Field, basis []poly.Poly, disc *big.Int) (*RingOfIntegers, error) {
	n := k.Degree()
	if len(basis) != n {
		return nil, fmt.Errorf("%w: got %d elements", ErrInvalidBasis, len(basis))
	}
	elems := make([]poly.Poly, n)
	rows := make([][]*big.Rat, n)
	for i, b := range basis {
		elems[i] = k.Reduce(b)
		rows[i] = k.ToVector(elems[i])
	}
	inv, err := linalg.RatFromRows(n, rows).Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasis, err)
	}
	if k.opts.checks() {
		k.assertIntegral(elems)
		if got := k.integerDiscriminant(elems); got.Cmp(disc) != 0 {
			return nil, fmt.Errorf("%w: discriminant %s, basis gives %s", ErrInvalidBasis, disc, got)
		}
	}
	r := &RingOfIntegers{
		field:  k,
		basis:  elems,
		disc:   new(big.Int).Set(disc),
		coords: inv,
		splits: make(map[string][]PrimeIdealFactor),
	}
	r.table = make([][][]*big.Int, n)
	for i := 0; i < n; i++ {
		r.table[i] = make([][]*big.Int, n)
		for j := 0; j < n; j++ {
			if j < i {
				r.table[i][j] = r.table[j][i]
				continue
			}
			e, ok := r.TryFromANF(k.Mul(elems[i], elems[j]))
			if !ok {
				return nil, fmt.Errorf("%w: product of basis elements %d and %d leaves the span", ErrInvalidBasis, i, j)
			}
			r.table[i][j] = e.c
		}
	}
	one, ok := r.TryFromANF(k.One())
	if !ok {
		return nil, fmt.Errorf("%w: 1 is not in the span", ErrInvalidBasis)
	}
	r.one = one
	return r, nil
}

func (r *RingOfIntegers) Degree() int { return r.field.Degree() }

func (r *RingOfIntegers) Field() *Field { return r.field }

// Basis returns the integral basis as field elements.
func (r *RingOfIntegers) Basis() []poly.Poly { return append([]poly.Poly(nil), r.basis...) }

// Discriminant returns the field discriminant.
func (r *RingOfIntegers) Discriminant() *big.Int { return new(big.Int).Set(r.disc) }

// BasisElement returns the i-th basis element as a ring element.
func (r *RingOfIntegers) BasisElement(i int) Element {
	c := zeroInts(r.Degree())
	c[i].SetInt64(1)
	return Element{c: c}
}

// FromCoefficients builds an element from its basis coordinates.
func (r *RingOfIntegers) FromCoefficients(c []*big.Int) Element {
	if len(c) != r.Degree() {
		panic(fmt.Sprintf("numfield: %d coefficients in degree %d", len(c), r.Degree()))
	}
	return Element{c: cloneInts(c)}
}

// ToANF maps an element into the field.
func (r *RingOfIntegers) ToANF(e Element) poly.Poly {
	out := poly.Zero()
	for i, v := range e.c {
		if v.Sign() != 0 {
			out = out.Add(r.basis[i].Scale(new(big.Rat).SetInt(v)))
		}
	}
	return out
}

// TryFromANF returns the coordinates of a field element, with ok=false when
// it is not in the integer span of the basis.
func (r *RingOfIntegers) TryFromANF(a poly.Poly) (Element, bool) {
	v := r.coords.VecMul(r.field.ToVector(a))
	out := make([]*big.Int, len(v))
	for i, x := range v {
		if !x.IsInt() {
			return Element{}, false
		}
		out[i] = new(big.Int).Set(x.Num())
	}
	return Element{c: out}, true
}

func (r *RingOfIntegers) FromInt(a *big.Int) Element {
	c := cloneInts(r.one.c)
	for _, v := range c {
		v.Mul(v, a)
	}
	return Element{c: c}
}

func (r *RingOfIntegers) Zero() Element { return Element{c: zeroInts(r.Degree())} }

func (r *RingOfIntegers) One() Element { return Element{c: cloneInts(r.one.c)} }

func (r *RingOfIntegers) Add(a, b Element) Element {
	out := make([]*big.Int, len(a.c))
	for i := range out {
		out[i] = new(big.Int).Add(a.c[i], b.c[i])
	}
	return Element{c: out}
}

func (r *RingOfIntegers) Neg(a Element) Element {
	out := make([]*big.Int, len(a.c))
	for i := range out {
		out[i] = new(big.Int).Neg(a.c[i])
	}
	return Element{c: out}
}

func (r *RingOfIntegers) Sub(a, b Element) Element { return r.Add(a, r.Neg(b)) }

// Mul multiplies through the field; the product of integral elements is
// integral, so the way back cannot fail.
func (r *RingOfIntegers) Mul(a, b Element) Element {
	out, ok := r.TryFromANF(r.field.Mul(r.ToANF(a), r.ToANF(b)))
	if !ok {
		panic("numfield: product of integral elements is not integral")
	}
	return out
}

func (r *RingOfIntegers) Equal(a, b Element) bool {
	for i := range a.c {
		if a.c[i].Cmp(b.c[i]) != 0 {
			return false
		}
	}
	return true
}

func (r *RingOfIntegers) IsZero(a Element) bool {
	for _, v := range a.c {
		if v.Sign() != 0 {
			return false
		}
	}
	return true
}

// Pow returns a^k for k >= 0.
func (r *RingOfIntegers) Pow(a Element, k int) Element {
	return structure.Pow[Element](r, a, k)
}

// Trace returns the trace of a, an integer.
func (r *RingOfIntegers) Trace(a Element) *big.Int {
	return new(big.Int).Set(r.field.Trace(r.ToANF(a)).Num())
}

// Norm returns the norm of a, an integer.
func (r *RingOfIntegers) Norm(a Element) *big.Int {
	return new(big.Int).Set(r.field.Norm(r.ToANF(a)).Num())
}

// mulCoords multiplies coordinate vectors through the multiplication table.
func (r *RingOfIntegers) mulCoords(a, b []*big.Int) []*big.Int {
	n := r.Degree()
	out := zeroInts(n)
	t := new(big.Int)
	ab := new(big.Int)
	for i := 0; i < n; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if b[j].Sign() == 0 {
				continue
			}
			ab.Mul(a[i], b[j])
			for k, v := range r.table[i][j] {
				if v.Sign() != 0 {
					out[k].Add(out[k], t.Mul(ab, v))
				}
			}
		}
	}
	return out
}

func zeroInts(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	return out
}

func cloneInts(xs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = new(big.Int).Set(x)
	}
	return out
}
