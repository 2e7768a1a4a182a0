// Package zz collects the exact integer helpers shared by the number field code:
// canonical Bezout coefficients, gcd/lcm over lists, primality and factorization.
package zz

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/tuneinsight/lattigo/v4/ring"
	"github.com/tuneinsight/lattigo/v6/utils/factorization"
)

// trialBound is the largest trial divisor tried before handing the cofactor
// to the generic factorization routine.
const trialBound = 1 << 12

// ErrFactorZero is returned when asked to factor zero.
var ErrFactorZero = errors.New("zz: cannot factor zero")

// PrimePower is one factor p^K of an integer factorization.
type PrimePower struct {
	P *big.Int
	K int
}

// IsPrime reports whether n is a (probable) prime. Word-size inputs are decided
// by the lattigo primality test.
func IsPrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.IsUint64() {
		v := n.Uint64()
		if v < 2 {
			return false
		}
		return ring.IsPrime(v)
	}
	return n.ProbablyPrime(32)
}

// Factor returns the sign of n and its prime factorization with primes in
// increasing order. Factor(1) and Factor(-1) return an empty list.
func Factor(n *big.Int) (sign int, factors []PrimePower, err error) {
	if n.Sign() == 0 {
		return 0, nil, ErrFactorZero
	}
	sign = n.Sign()
	m := new(big.Int).Abs(n)
	counts := map[string]*PrimePower{}
	add := func(p *big.Int, k int) {
		key := p.String()
		if pp, ok := counts[key]; ok {
			pp.K += k
			return
		}
		counts[key] = &PrimePower{P: new(big.Int).Set(p), K: k}
	}

	// Small primes first; the cofactor handed on is free of factors below trialBound.
	d := big.NewInt(2)
	q, r := new(big.Int), new(big.Int)
	for d.Int64() < trialBound {
		if new(big.Int).Mul(d, d).Cmp(m) > 0 {
			break
		}
		k := 0
		for {
			q.QuoRem(m, d, r)
			if r.Sign() != 0 {
				break
			}
			m.Set(q)
			k++
		}
		if k > 0 {
			add(d, k)
		}
		if d.Int64() == 2 {
			d.SetInt64(3)
		} else {
			d.Add(d, big.NewInt(2))
		}
	}
	if m.Cmp(big.NewInt(1)) != 0 {
		if err := factorCofactor(m, add); err != nil {
			return 0, nil, err
		}
	}

	factors = make([]PrimePower, 0, len(counts))
	for _, pp := range counts {
		factors = append(factors, *pp)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].P.Cmp(factors[j].P) < 0 })
	return sign, factors, nil
}

// factorCofactor splits m > 1 into primes using the lattigo factorization
// package, accounting for multiplicities which it does not report.
func factorCofactor(m *big.Int, add func(*big.Int, int)) error {
	rest := new(big.Int).Set(m)
	for rest.Cmp(big.NewInt(1)) != 0 {
		if IsPrime(rest) {
			add(rest, 1)
			return nil
		}
		if base, k := perfectPower(rest); k > 1 {
			return factorCofactor(base, func(p *big.Int, j int) { add(p, j*k) })
		}
		progress := false
		for _, p := range factorization.GetFactors(new(big.Int).Set(rest)) {
			if p.Cmp(big.NewInt(1)) <= 0 || !IsPrime(p) {
				continue
			}
			k := 0
			q, r := new(big.Int), new(big.Int)
			for {
				q.QuoRem(rest, p, r)
				if r.Sign() != 0 {
					break
				}
				rest.Set(q)
				k++
			}
			if k > 0 {
				add(p, k)
				progress = true
			}
		}
		if !progress {
			return fmt.Errorf("zz: no factor found for %s", rest.String())
		}
	}
	return nil
}

// perfectPower returns base, k with n = base^k and k as large as possible, or
// n, 1 when n > 1 is not a perfect power.
func perfectPower(n *big.Int) (*big.Int, int) {
	for k := n.BitLen(); k >= 2; k-- {
		r := Root(n, k)
		if r.Cmp(big.NewInt(1)) > 0 && new(big.Int).Exp(r, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
			return r, k
		}
	}
	return n, 1
}

// Root returns floor(n^(1/k)) for n >= 0 and k >= 1.
func Root(n *big.Int, k int) *big.Int {
	if k == 1 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}
	bk := big.NewInt(int64(k))
	km1 := big.NewInt(int64(k - 1))
	// Newton's iteration from above decreases until it reaches the floor.
	x := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/k+1))
	for {
		y := new(big.Int).Exp(x, km1, nil)
		y.Quo(n, y)
		y.Add(y, new(big.Int).Mul(km1, x))
		y.Quo(y, bk)
		if y.Cmp(x) >= 0 {
			return x
		}
		x = y
	}
}

// Divisors returns all positive divisors of a factored integer in increasing order.
func Divisors(factors []PrimePower) []*big.Int {
	out := []*big.Int{big.NewInt(1)}
	for _, pp := range factors {
		cur := len(out)
		pk := big.NewInt(1)
		for k := 1; k <= pp.K; k++ {
			pk = new(big.Int).Mul(pk, pp.P)
			for i := 0; i < cur; i++ {
				out = append(out, new(big.Int).Mul(out[i], pk))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// Valuation returns the exponent of the prime p in n != 0.
func Valuation(n, p *big.Int) int {
	m := new(big.Int).Abs(n)
	q, r := new(big.Int), new(big.Int)
	k := 0
	for m.Sign() != 0 {
		q.QuoRem(m, p, r)
		if r.Sign() != 0 {
			break
		}
		m.Set(q)
		k++
	}
	return k
}
