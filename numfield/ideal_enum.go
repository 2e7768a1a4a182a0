package numfield

import (
	"fmt"
	"iter"
	"math/big"

	"anf-kernel/internal/partition"
	"anf-kernel/internal/zz"
)

// AllIdealsNormEq yields every ideal of norm n. The zero ideal is taken to be
// the only ideal of norm 0; negative n yields nothing. The sequence is finite
// and may be ranged over more than once. If n cannot be factored, or has a
// prime factor SplitPrime rejects, the sequence yields a single nil ideal with
// the error and stops.
func (r *RingOfIntegers) AllIdealsNormEq(n *big.Int) iter.Seq2[Ideal, error] {
	n = new(big.Int).Set(n)
	return func(yield func(Ideal, error) bool) {
		switch n.Sign() {
		case -1:
			return
		case 0:
			yield(ZeroIdeal{}, nil)
			return
		}
		_, primes, err := zz.Factor(n)
		if err != nil {
			yield(nil, fmt.Errorf("numfield: ideals of norm %s: %w", n, err))
			return
		}
		choices := make([][]Ideal, len(primes))
		for i, pk := range primes {
			choices[i], err = r.idealsOfPrimePowerNorm(pk.P, pk.K)
			if err != nil {
				yield(nil, fmt.Errorf("numfield: ideals of norm %s: %w", n, err))
				return
			}
			if len(choices[i]) == 0 {
				return
			}
		}
		r.productOf(choices, r.UnitIdeal(), func(a Ideal) bool { return yield(a, nil) })
	}
}

// idealsOfPrimePowerNorm returns the ideals of norm p^k: one for each way of
// writing k as a sum of residue degrees of the primes over p.
func (r *RingOfIntegers) idealsOfPrimePowerNorm(p *big.Int, k int) ([]Ideal, error) {
	split, err := r.SplitPrime(p)
	if err != nil {
		return nil, err
	}
	pool := make([]int, len(split))
	for i, f := range split {
		pool[i] = f.F
	}
	var out []Ideal
	for way := range partition.PartPool(k, pool) {
		acc := r.UnitIdeal()
		for _, idx := range way {
			acc = r.IdealMul(acc, split[idx].Prime)
		}
		out = append(out, acc)
	}
	return out, nil
}

func (r *RingOfIntegers) productOf(choices [][]Ideal, acc Ideal, yield func(Ideal) bool) bool {
	if len(choices) == 0 {
		return yield(acc)
	}
	for _, c := range choices[0] {
		if !r.productOf(choices[1:], r.IdealMul(acc, c), yield) {
			return false
		}
	}
	return true
}

// AllNonzeroIdealsNormLe yields the non-zero ideals of norm at most bound, in
// increasing norm. It stops after the first error, as AllIdealsNormEq does.
func (r *RingOfIntegers) AllNonzeroIdealsNormLe(bound *big.Int) iter.Seq2[Ideal, error] {
	bound = new(big.Int).Set(bound)
	return func(yield func(Ideal, error) bool) {
		for n := big.NewInt(1); n.Cmp(bound) <= 0; n = new(big.Int).Add(n, big.NewInt(1)) {
			if !r.yieldNorm(n, yield) {
				return
			}
		}
	}
}

// AllNonzeroIdeals yields every non-zero ideal in increasing norm. The
// sequence ends only on error; otherwise the caller stops it by breaking out
// of the range.
func (r *RingOfIntegers) AllNonzeroIdeals() iter.Seq2[Ideal, error] {
	return func(yield func(Ideal, error) bool) {
		for n := big.NewInt(1); ; n = new(big.Int).Add(n, big.NewInt(1)) {
			if !r.yieldNorm(n, yield) {
				return
			}
		}
	}
}

// AllIdeals is AllNonzeroIdeals preceded by the zero ideal.
func (r *RingOfIntegers) AllIdeals() iter.Seq2[Ideal, error] {
	return func(yield func(Ideal, error) bool) {
		if !yield(ZeroIdeal{}, nil) {
			return
		}
		for a, err := range r.AllNonzeroIdeals() {
			if !yield(a, err) {
				return
			}
		}
	}
}

// yieldNorm forwards the ideals of norm n and reports whether to continue.
func (r *RingOfIntegers) yieldNorm(n *big.Int, yield func(Ideal, error) bool) bool {
	for a, err := range r.AllIdealsNormEq(n) {
		if !yield(a, err) || err != nil {
			return false
		}
	}
	return true
}
