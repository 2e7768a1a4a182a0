package numfield

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"anf-kernel/internal/zz"
	"anf-kernel/linalg"
	"anf-kernel/poly"
	"anf-kernel/prof"
)

var (
	ErrSearchTooLarge = errors.New("numfield: integral basis search prime exceeds MaxSearchPrime")
	ErrInvalidBasis   = errors.New("numfield: basis must be n linearly independent algebraic integers")
)

// IntegralBasis is a Z-basis of the ring of integers together with the field
// discriminant. The basis is in Hermite form: Elements[i] has degree i in the
// power basis, whatever guess it was refined from.
type IntegralBasis struct {
	Elements     []poly.Poly
	Discriminant *big.Int
}

// IntegralBasis returns the integral basis of k, computing it on first use.
func (k *Field) IntegralBasis() (IntegralBasis, error) {
	k.basisOnce.Do(func() {
		k.basis, k.basisErr = k.refine(k.seedBasis())
	})
	if k.basisErr != nil {
		return IntegralBasis{}, k.basisErr
	}
	return k.basis.clone(), nil
}

// RefineIntegralBasis runs the refinement loop from guess, which must consist of
// n linearly independent algebraic integers. The result is brought to Hermite
// form, so a basis returned by IntegralBasis comes back unchanged.
func (k *Field) RefineIntegralBasis(guess []poly.Poly) (IntegralBasis, error) {
	if len(guess) != k.n {
		return IntegralBasis{}, fmt.Errorf("%w: got %d elements", ErrInvalidBasis, len(guess))
	}
	reduced := make([]poly.Poly, len(guess))
	for i, g := range guess {
		reduced[i] = k.Reduce(g)
		if !k.IsAlgebraicInteger(reduced[i]) {
			return IntegralBasis{}, fmt.Errorf("%w: %s is not integral", ErrInvalidBasis, g)
		}
	}
	if k.Discriminant(reduced).Sign() == 0 {
		return IntegralBasis{}, fmt.Errorf("%w: elements are dependent", ErrInvalidBasis)
	}
	return k.refine(reduced)
}

// seedBasis returns the integral multiples of 1, x, ..., x^(n-1).
func (k *Field) seedBasis() []poly.Poly {
	out := make([]poly.Poly, k.n)
	cur := k.One()
	for i := 0; i < k.n; i++ {
		out[i], _ = k.IntegralMultiple(cur)
		cur = k.Mul(cur, k.Generator())
	}
	return out
}

func (k *Field) refine(guess []poly.Poly) (IntegralBasis, error) {
	defer prof.Track(time.Now(), "numfield.IntegralBasis")
	for round := 0; ; round++ {
		disc := k.integerDiscriminant(guess)
		dbg("integral basis round %d: disc=%s", round, disc)
		_, factors, err := zz.Factor(disc)
		if err != nil {
			return IntegralBasis{}, fmt.Errorf("numfield: factoring discriminant %s: %w", disc, err)
		}
		improved := false
		for _, pk := range factors {
			if pk.K < 2 {
				continue
			}
			if k.opts.MaxSearchPrime != 0 && (!pk.P.IsUint64() || pk.P.Uint64() > k.opts.MaxSearchPrime) {
				log.Warnf("refusing p^n search for p=%s in degree %d", pk.P, k.n)
				return IntegralBasis{}, fmt.Errorf("%w: p=%s", ErrSearchTooLarge, pk.P)
			}
			if !pk.P.IsInt64() {
				return IntegralBasis{}, fmt.Errorf("%w: p=%s does not fit a machine word", ErrSearchTooLarge, pk.P)
			}
			alpha, ok := k.searchIntegral(guess, pk.P.Int64())
			if !ok {
				continue
			}
			dbg("integral basis round %d: p=%s gives %s", round, pk.P, alpha)
			guess = k.hermiteBasis(append(guess, alpha))
			improved = true
			break
		}
		if !improved {
			out := IntegralBasis{Elements: k.hermiteBasis(guess), Discriminant: disc}
			if k.opts.checks() {
				k.assertIntegral(out.Elements)
			}
			return out, nil
		}
	}
}

// integerDiscriminant returns the trace form determinant, which for a Z-basis
// of algebraic integers is a non-zero integer.
func (k *Field) integerDiscriminant(elems []poly.Poly) *big.Int {
	d := k.Discriminant(elems)
	if d.Sign() == 0 || !d.IsInt() {
		panic(fmt.Sprintf("numfield: discriminant %s of a basis is not a non-zero integer", d.RatString()))
	}
	return new(big.Int).Set(d.Num())
}

// searchIntegral looks for a non-zero x in [0,p)^n with (1/p) sum x_i g_i
// integral. Trace integrality is linear and is checked before the norm and
// the minimal polynomial.
func (k *Field) searchIntegral(guess []poly.Poly, p int64) (poly.Poly, bool) {
	defer prof.Track(time.Now(), "numfield.searchIntegral")
	n := len(guess)
	traces := make([]*big.Rat, n)
	for i, g := range guess {
		traces[i] = k.Trace(g)
	}
	inv := big.NewRat(1, p)
	x := make([]int64, n)
	for {
		// Odometer increment; the all-zero vector is skipped.
		i := 0
		for i < n {
			x[i]++
			if x[i] < p {
				break
			}
			x[i] = 0
			i++
		}
		if i == n {
			return poly.Poly{}, false
		}
		tr := new(big.Rat)
		for j, xj := range x {
			if xj != 0 {
				tr.Add(tr, new(big.Rat).Mul(traces[j], big.NewRat(xj, 1)))
			}
		}
		if !tr.Mul(tr, inv).IsInt() {
			continue
		}
		alpha := poly.Zero()
		for j, xj := range x {
			if xj != 0 {
				alpha = alpha.Add(guess[j].Scale(big.NewRat(xj, p)))
			}
		}
		if k.IsAlgebraicInteger(alpha) {
			return alpha, true
		}
	}
}

// hermiteBasis clears denominators of elems, takes the reduced Hermite form of
// the coordinate rows with the column order reversed, and returns the n
// resulting elements ordered so that element i has degree i.
func (k *Field) hermiteBasis(elems []poly.Poly) []poly.Poly {
	n := k.n
	rows := make([][]*big.Rat, len(elems))
	var all []*big.Rat
	for i, e := range elems {
		rows[i] = k.ToVector(e)
		all = append(all, rows[i]...)
	}
	d := zz.DenominatorLCM(all)
	ints := make([][]*big.Int, len(elems))
	for i, row := range rows {
		ints[i] = make([]*big.Int, n)
		for j, c := range row {
			v := new(big.Rat).Mul(c, new(big.Rat).SetInt(d))
			ints[i][n-1-j] = new(big.Int).Set(v.Num())
		}
	}
	h, _, _ := linalg.RowHermite(linalg.IntFromRows(n, ints))
	hr := linalg.NonZeroRows(h)
	if len(hr) != n {
		panic(fmt.Sprintf("numfield: refined basis has rank %d, want %d", len(hr), n))
	}
	out := make([]poly.Poly, n)
	dr := new(big.Rat).SetInt(d)
	for i, row := range hr {
		coeffs := make([]*big.Rat, n)
		for j := range coeffs {
			coeffs[j] = new(big.Rat).Quo(new(big.Rat).SetInt(row[n-1-j]), dr)
		}
		out[n-1-i] = poly.New(coeffs...)
	}
	return out
}

func (k *Field) assertIntegral(elems []poly.Poly) {
	for _, e := range elems {
		if !k.IsAlgebraicInteger(e) {
			panic(fmt.Sprintf("numfield: basis element %s is not an algebraic integer", e))
		}
	}
}

func (b IntegralBasis) clone() IntegralBasis {
	return IntegralBasis{
		Elements:     append([]poly.Poly(nil), b.Elements...),
		Discriminant: new(big.Int).Set(b.Discriminant),
	}
}
