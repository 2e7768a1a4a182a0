package kfield

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a polynomial over F_q with coefficients in increasing degree order.
// Canonical polynomials are trimmed: the zero polynomial is the empty slice and
// a non-zero polynomial has a non-zero last coefficient.
type Poly []uint64

// PolyRing is F_q[x] for a prime q.
type PolyRing struct {
	Q uint64
}

// NewPolyRing returns F_q[x]. q must be prime; it is not re-checked here.
func NewPolyRing(q uint64) (PolyRing, error) {
	if q < 2 {
		return PolyRing{}, fmt.Errorf("kfield: modulus %d is not a prime", q)
	}
	return PolyRing{Q: q}, nil
}

// Deg returns the degree of a, or -1 for the zero polynomial.
func Deg(a Poly) int { return len(a) - 1 }

// Trim reduces the coefficients of a and strips leading zeros.
func (r PolyRing) Trim(a Poly) Poly {
	idx := len(a) - 1
	for idx >= 0 && a[idx]%r.Q == 0 {
		idx--
	}
	out := make(Poly, idx+1)
	for i := 0; i <= idx; i++ {
		out[i] = a[i] % r.Q
	}
	return out
}

// FromBig reduces integer coefficients modulo q.
func (r PolyRing) FromBig(coeffs []*big.Int) Poly {
	qb := new(big.Int).SetUint64(r.Q)
	out := make(Poly, len(coeffs))
	t := new(big.Int)
	for i, c := range coeffs {
		out[i] = t.Mod(c, qb).Uint64()
	}
	return r.Trim(out)
}

// Const returns the constant polynomial c.
func (r PolyRing) Const(c uint64) Poly { return r.Trim(Poly{c}) }

// X returns the polynomial x.
func (r PolyRing) X() Poly { return r.Trim(Poly{0, 1}) }

func (r PolyRing) Equal(a, b Poly) bool {
	a, b = r.Trim(a), r.Trim(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r PolyRing) IsOne(a Poly) bool {
	a = r.Trim(a)
	return len(a) == 1 && a[0] == 1
}

func (r PolyRing) Add(a, b Poly) Poly {
	n := max(len(a), len(b))
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		var ai, bi uint64
		if i < len(a) {
			ai = a[i] % r.Q
		}
		if i < len(b) {
			bi = b[i] % r.Q
		}
		out[i] = modAdd(ai, bi, r.Q)
	}
	return r.Trim(out)
}

func (r PolyRing) Sub(a, b Poly) Poly {
	n := max(len(a), len(b))
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		var ai, bi uint64
		if i < len(a) {
			ai = a[i] % r.Q
		}
		if i < len(b) {
			bi = b[i] % r.Q
		}
		out[i] = modSub(ai, bi, r.Q)
	}
	return r.Trim(out)
}

// Scale multiplies a by the scalar c.
func (r PolyRing) Scale(a Poly, c uint64) Poly {
	out := make(Poly, len(a))
	for i := range a {
		out[i] = modMul(a[i]%r.Q, c%r.Q, r.Q)
	}
	return r.Trim(out)
}

func (r PolyRing) Mul(a, b Poly) Poly {
	a, b = r.Trim(a), r.Trim(b)
	if len(a) == 0 || len(b) == 0 {
		return Poly{}
	}
	out := make(Poly, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			if bj == 0 {
				continue
			}
			out[i+j] = modAdd(out[i+j], modMul(ai, bj, r.Q), r.Q)
		}
	}
	return r.Trim(out)
}

// DivMod returns (quotient, remainder) of a by b. It panics when b is zero.
func (r PolyRing) DivMod(a, b Poly) (Poly, Poly) {
	A := r.Trim(a)
	B := r.Trim(b)
	if len(B) == 0 {
		panic("kfield: divide by zero polynomial")
	}
	if len(A) < len(B) {
		return Poly{}, A
	}
	rem := append(Poly(nil), A...)
	quotient := make(Poly, len(A)-len(B)+1)
	invLead := modInv(B[len(B)-1], r.Q)
	for i := len(A) - 1; i >= len(B)-1; i-- {
		coeff := rem[i]
		if coeff == 0 {
			continue
		}
		coeff = modMul(coeff, invLead, r.Q)
		shift := i - (len(B) - 1)
		quotient[shift] = coeff
		for j := 0; j < len(B); j++ {
			rem[shift+j] = modSub(rem[shift+j], modMul(coeff, B[j], r.Q), r.Q)
		}
	}
	return r.Trim(quotient), r.Trim(rem[:len(B)-1])
}

func (r PolyRing) Mod(a, b Poly) Poly {
	_, rem := r.DivMod(a, b)
	return rem
}

// Quo returns a/b, panicking when b does not divide a.
func (r PolyRing) Quo(a, b Poly) Poly {
	q, rem := r.DivMod(a, b)
	if len(rem) != 0 {
		panic("kfield: inexact polynomial division")
	}
	return q
}

// Monic scales a non-zero polynomial to leading coefficient one.
func (r PolyRing) Monic(a Poly) Poly {
	a = r.Trim(a)
	if len(a) == 0 {
		return a
	}
	return r.Scale(a, modInv(a[len(a)-1], r.Q))
}

// GCD returns the monic gcd of a and b (zero when both are zero).
func (r PolyRing) GCD(a, b Poly) Poly {
	A, B := r.Trim(a), r.Trim(b)
	for len(B) != 0 {
		A, B = B, r.Mod(A, B)
	}
	return r.Monic(A)
}

func (r PolyRing) Derivative(a Poly) Poly {
	if len(a) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(a)-1)
	for i := 1; i < len(a); i++ {
		out[i-1] = modMul(a[i]%r.Q, uint64(i)%r.Q, r.Q)
	}
	return r.Trim(out)
}

// PowMod returns base^exp mod m.
func (r PolyRing) PowMod(base Poly, exp *big.Int, m Poly) Poly {
	result := r.Mod(r.Const(1), m)
	b := r.Mod(base, m)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result = r.Mod(r.Mul(result, result), m)
		if exp.Bit(i) == 1 {
			result = r.Mod(r.Mul(result, b), m)
		}
	}
	return result
}

// Pow returns a^k without reduction.
func (r PolyRing) Pow(a Poly, k int) Poly {
	out := r.Const(1)
	for i := 0; i < k; i++ {
		out = r.Mul(out, a)
	}
	return out
}

func (r PolyRing) String(a Poly) string {
	a = r.Trim(a)
	if len(a) == 0 {
		return "0"
	}
	var terms []string
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] == 0 {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, fmt.Sprintf("%d", a[i]))
		case 1:
			terms = append(terms, fmt.Sprintf("%d*x", a[i]))
		default:
			terms = append(terms, fmt.Sprintf("%d*x^%d", a[i], i))
		}
	}
	return strings.Join(terms, " + ")
}
