// Package poly implements dense univariate polynomials over Q.
//
// A Poly is an immutable value: no operation mutates its receiver or arguments,
// so values may be shared freely.
package poly

import (
	"fmt"
	"math/big"
	"strings"

	"anf-kernel/internal/zz"
)

// Poly is a polynomial with rational coefficients in increasing degree order.
// The zero polynomial has no coefficients; otherwise the last one is non-zero.
type Poly struct {
	c []*big.Rat
}

// New builds a polynomial from coefficients c[0] + c[1] x + ...
func New(coeffs ...*big.Rat) Poly {
	out := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			out[i] = new(big.Rat)
		} else {
			out[i] = new(big.Rat).Set(c)
		}
	}
	return trim(out)
}

// FromInts builds a polynomial with small integer coefficients.
func FromInts(coeffs ...int64) Poly {
	out := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		out[i] = new(big.Rat).SetInt64(c)
	}
	return trim(out)
}

func trim(c []*big.Rat) Poly {
	n := len(c)
	for n > 0 && c[n-1].Sign() == 0 {
		n--
	}
	return Poly{c: c[:n:n]}
}

func Zero() Poly { return Poly{} }

func One() Poly { return FromInts(1) }

// X returns the indeterminate.
func X() Poly { return FromInts(0, 1) }

// Const returns the constant polynomial r.
func Const(r *big.Rat) Poly { return New(r) }

// Degree returns the degree, or -1 for the zero polynomial.
func (p Poly) Degree() int { return len(p.c) - 1 }

func (p Poly) IsZero() bool { return len(p.c) == 0 }

// Coeff returns a copy of the coefficient of x^i.
func (p Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p.c) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.c[i])
}

// Coeffs returns copies of all coefficients, lowest degree first.
func (p Poly) Coeffs() []*big.Rat {
	out := make([]*big.Rat, len(p.c))
	for i, c := range p.c {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

func (p Poly) Equal(q Poly) bool {
	if len(p.c) != len(q.c) {
		return false
	}
	for i := range p.c {
		if p.c[i].Cmp(q.c[i]) != 0 {
			return false
		}
	}
	return true
}

func (p Poly) Add(q Poly) Poly {
	n := max(len(p.c), len(q.c))
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(p.c) {
			out[i].Add(out[i], p.c[i])
		}
		if i < len(q.c) {
			out[i].Add(out[i], q.c[i])
		}
	}
	return trim(out)
}

func (p Poly) Neg() Poly {
	out := make([]*big.Rat, len(p.c))
	for i, c := range p.c {
		out[i] = new(big.Rat).Neg(c)
	}
	return Poly{c: out}
}

func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

// Scale multiplies every coefficient by r.
func (p Poly) Scale(r *big.Rat) Poly {
	out := make([]*big.Rat, len(p.c))
	for i, c := range p.c {
		out[i] = new(big.Rat).Mul(c, r)
	}
	return trim(out)
}

func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	out := make([]*big.Rat, len(p.c)+len(q.c)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i, a := range p.c {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q.c {
			out[i+j].Add(out[i+j], t.Mul(a, b))
		}
	}
	return trim(out)
}

// Pow returns p^k for k >= 0.
func (p Poly) Pow(k int) Poly {
	if k < 0 {
		panic("poly: negative exponent")
	}
	out := One()
	base := p
	for k > 0 {
		if k&1 == 1 {
			out = out.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	return out
}

// DivMod returns q, r with p = q*d + r and deg r < deg d. It panics when d is zero.
func (p Poly) DivMod(d Poly) (Poly, Poly) {
	if d.IsZero() {
		panic("poly: division by zero polynomial")
	}
	if len(p.c) < len(d.c) {
		return Poly{}, p
	}
	rem := p.Coeffs()
	quo := make([]*big.Rat, len(p.c)-len(d.c)+1)
	lead := d.c[len(d.c)-1]
	t := new(big.Rat)
	for i := len(rem) - 1; i >= len(d.c)-1; i-- {
		shift := i - (len(d.c) - 1)
		coeff := new(big.Rat).Quo(rem[i], lead)
		quo[shift] = coeff
		if coeff.Sign() == 0 {
			continue
		}
		for j, dj := range d.c {
			rem[shift+j].Sub(rem[shift+j], t.Mul(coeff, dj))
		}
	}
	return trim(quo), trim(rem[:len(d.c)-1])
}

// Mod returns the remainder of p by d.
func (p Poly) Mod(d Poly) Poly {
	_, r := p.DivMod(d)
	return r
}

// Monic divides by the leading coefficient. The zero polynomial is returned as is.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p
	}
	return p.Scale(new(big.Rat).Inv(p.c[len(p.c)-1]))
}

// GCD returns the monic greatest common divisor, or zero when both are zero.
func GCD(a, b Poly) Poly {
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a.Monic()
}

// ExtGCD returns g = gcd(a, b) (monic) and s, t with s*a + t*b = g.
func ExtGCD(a, b Poly) (g, s, t Poly) {
	r0, r1 := a, b
	s0, s1 := One(), Zero()
	t0, t1 := Zero(), One()
	for !r1.IsZero() {
		q, r := r0.DivMod(r1)
		r0, r1 = r1, r
		s0, s1 = s1, s0.Sub(q.Mul(s1))
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	if r0.IsZero() {
		return r0, s0, t0
	}
	inv := new(big.Rat).Inv(r0.c[len(r0.c)-1])
	return r0.Scale(inv), s0.Scale(inv), t0.Scale(inv)
}

func (p Poly) Derivative() Poly {
	if len(p.c) <= 1 {
		return Poly{}
	}
	out := make([]*big.Rat, len(p.c)-1)
	for i := 1; i < len(p.c); i++ {
		out[i-1] = new(big.Rat).Mul(p.c[i], new(big.Rat).SetInt64(int64(i)))
	}
	return trim(out)
}

// IsInteger reports whether every coefficient is an integer.
func (p Poly) IsInteger() bool {
	for _, c := range p.c {
		if !c.IsInt() {
			return false
		}
	}
	return true
}

// Denominator returns the lcm of the coefficient denominators.
func (p Poly) Denominator() *big.Int { return zz.DenominatorLCM(p.c) }

// IntCoeffs returns the coefficients as integers, with ok=false when one of
// them is not integral.
func (p Poly) IntCoeffs() ([]*big.Int, bool) {
	out := make([]*big.Int, len(p.c))
	for i, c := range p.c {
		if !c.IsInt() {
			return nil, false
		}
		out[i] = new(big.Int).Set(c.Num())
	}
	return out, true
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.c) - 1; i >= 0; i-- {
		c := p.c[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case first && c.Sign() < 0:
			b.WriteString("-")
		case !first && c.Sign() < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		coeff := abs.RatString()
		switch {
		case i == 0:
			b.WriteString(coeff)
		case coeff == "1":
			b.WriteString(monomial(i))
		default:
			fmt.Fprintf(&b, "%s%s", coeff, monomial(i))
		}
	}
	return b.String()
}

func monomial(i int) string {
	if i == 1 {
		return "x"
	}
	return fmt.Sprintf("x^%d", i)
}
