package structure

import (
	"errors"
	"math/big"
)

// ErrDivisionByZero is returned when inverting zero.
var ErrDivisionByZero = errors.New("structure: division by zero")

// Integers is Z on *big.Int. Results are freshly allocated.
type Integers struct{}

func (Integers) Zero() *big.Int             { return new(big.Int) }
func (Integers) One() *big.Int              { return big.NewInt(1) }
func (Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (Integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func (Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func (Integers) Neg(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }
func (Integers) Equal(a, b *big.Int) bool   { return a.Cmp(b) == 0 }
func (Integers) IsZero(a *big.Int) bool     { return a.Sign() == 0 }

// QuoRem divides with a non-negative remainder. It panics when b is zero.
func (Integers) QuoRem(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int), new(big.Int)
	q.DivMod(a, b, r)
	return q, r
}

// GCD returns the non-negative gcd.
func (Integers) GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// Rationals is Q on *big.Rat. Results are freshly allocated.
type Rationals struct{}

func (Rationals) Zero() *big.Rat             { return new(big.Rat) }
func (Rationals) One() *big.Rat              { return big.NewRat(1, 1) }
func (Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (Rationals) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (Rationals) Equal(a, b *big.Rat) bool   { return a.Cmp(b) == 0 }
func (Rationals) IsZero(a *big.Rat) bool     { return a.Sign() == 0 }

func (Rationals) Inv(a *big.Rat) (*big.Rat, error) {
	if a.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Inv(a), nil
}

// IntegerInclusion is the field-of-fractions map Z -> Q.
var IntegerInclusion = Hom[*big.Int, *big.Rat]{
	Image: func(z *big.Int) *big.Rat { return new(big.Rat).SetInt(z) },
	TryPreimage: func(q *big.Rat) (*big.Int, bool) {
		if !q.IsInt() {
			return nil, false
		}
		return new(big.Int).Set(q.Num()), true
	},
}

var (
	_ EuclideanDomain[*big.Int] = Integers{}
	_ Field[*big.Rat]           = Rationals{}
)
