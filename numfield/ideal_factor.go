package numfield

import (
	"fmt"
	"math/big"

	"anf-kernel/internal/zz"
	"anf-kernel/prof"
)

// Factorization is a product of distinct prime ideals with positive exponents,
// ordered by rational prime and then by the order SplitPrime reports them in.
type Factorization []PrimeIdealFactor

// FactorIdeal writes a non-zero ideal as a product of prime ideals. The zero
// ideal gives ErrZeroIdeal and the unit ideal the empty factorization. A norm
// that cannot be factored, or a prime above ErrPrimeTooLarge's range, is
// reported as an error wrapping the cause.
func (r *RingOfIntegers) FactorIdeal(a Ideal) (Factorization, error) {
	norm, err := r.IdealNorm(a)
	if err != nil {
		return nil, err
	}
	defer prof.Start("numfield.FactorIdeal")()
	_, primes, err := zz.Factor(norm)
	if err != nil {
		return nil, fmt.Errorf("numfield: factoring ideal norm %s: %w", norm, err)
	}
	out := Factorization{}
	for _, pk := range primes {
		split, err := r.SplitPrime(pk.P)
		if err != nil {
			return nil, fmt.Errorf("numfield: factoring ideal of norm %s: %w", norm, err)
		}
		remaining := pk.K
		for _, f := range split {
			if remaining < f.F {
				continue
			}
			v := r.valuation(a, f.Prime, remaining/f.F)
			if v == 0 {
				continue
			}
			remaining -= v * f.F
			f.Exponent = v
			out = append(out, f)
		}
		if remaining != 0 {
			panic(fmt.Sprintf("numfield: prime ideals over %s account for %d of %d in the norm", pk.P, pk.K-remaining, pk.K))
		}
	}
	if r.field.opts.checks() && !r.IdealEqual(r.ExpandFactorization(out), a) {
		panic(fmt.Sprintf("numfield: factorization of %s does not multiply back", a))
	}
	dbg("factored ideal of norm %s into %d primes", norm, len(out))
	return out, nil
}

// ExpandFactorization multiplies a factorization back out.
func (r *RingOfIntegers) ExpandFactorization(fs Factorization) Ideal {
	acc := r.UnitIdeal()
	for _, f := range fs {
		acc = r.IdealMul(acc, r.IdealPow(f.Prime, f.Exponent))
	}
	return acc
}

// EulerPhi returns the order of (O_K/a)^*. It fails where FactorIdeal does.
func (r *RingOfIntegers) EulerPhi(a Ideal) (*big.Int, error) {
	fs, err := r.FactorIdeal(a)
	if err != nil {
		return nil, err
	}
	out := big.NewInt(1)
	one := big.NewInt(1)
	for _, f := range fs {
		q := f.Norm()
		out.Mul(out, new(big.Int).Sub(q, one))
		out.Mul(out, new(big.Int).Exp(q, big.NewInt(int64(f.Exponent-1)), nil))
	}
	return out, nil
}
