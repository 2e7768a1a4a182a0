package numfield

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"anf-kernel/internal/kfield"
	"anf-kernel/internal/zz"
	"anf-kernel/lattice"
	"anf-kernel/poly"
	"anf-kernel/prof"
)

var (
	ErrNotPrime      = errors.New("numfield: not a prime")
	ErrPrimeTooLarge = errors.New("numfield: prime does not fit a machine word")
)

// PrimeIdealFactor is a prime ideal over the rational prime P with residue
// degree F and ramification index E. Exponent is its multiplicity in the
// factorization it belongs to; for SplitPrime it equals E.
type PrimeIdealFactor struct {
	Prime    Ideal
	P        *big.Int
	F        int
	E        int
	Exponent int

	// chi is the factor of the generator's minimal polynomial mod P that
	// produced this prime, when it came from the Dedekind-Kummer criterion.
	chi kfield.Poly
}

// Norm returns P^F.
func (f PrimeIdealFactor) Norm() *big.Int {
	return new(big.Int).Exp(f.P, big.NewInt(int64(f.F)), nil)
}

// generatorData describes theta = scale*x, an integral generator of K.
type generatorData struct {
	theta   poly.Poly
	scale   *big.Int
	minPoly []*big.Int
	index   *big.Int
}

func (r *RingOfIntegers) generator() (*generatorData, error) {
	r.genOnce.Do(func() {
		k := r.field
		sq := r.IntegralClosureSquare()
		num, den := sq.NumeratorAndDenominator(k.Generator())
		theta := r.ToANF(num)
		scale, ok := sq.ZToR.TryPreimage(den)
		if !ok {
			r.genErr = fmt.Errorf("numfield: denominator %s of the generator is not an integer", den)
			return
		}
		coeffs, ok := k.MinPoly(theta).IntCoeffs()
		if !ok {
			r.genErr = fmt.Errorf("numfield: integral generator %s has a non-integral minimal polynomial", theta)
			return
		}
		powers := make([]poly.Poly, k.Degree())
		cur := k.One()
		for i := range powers {
			powers[i] = cur
			cur = k.Mul(cur, theta)
		}
		ratio := new(big.Int).Quo(k.integerDiscriminant(powers), r.disc)
		index := new(big.Int).Sqrt(ratio)
		if new(big.Int).Mul(index, index).Cmp(ratio) != 0 {
			r.genErr = fmt.Errorf("numfield: disc(Z[theta])/disc(K) = %s is not a square", ratio)
			return
		}
		r.gen = &generatorData{theta: theta, scale: scale, minPoly: coeffs, index: index}
	})
	return r.gen, r.genErr
}

// SplitPrime returns the prime ideals over p with their residue degrees and
// ramification indices, so that pO_K is the product of the P^E. Results are
// cached per ring.
func (r *RingOfIntegers) SplitPrime(p *big.Int) ([]PrimeIdealFactor, error) {
	if p.Sign() <= 0 || !zz.IsPrime(p) {
		return nil, fmt.Errorf("%w: %s", ErrNotPrime, p)
	}
	if !p.IsUint64() {
		return nil, fmt.Errorf("%w: %s", ErrPrimeTooLarge, p)
	}
	key := p.String()
	r.mu.Lock()
	cached, ok := r.splits[key]
	r.mu.Unlock()
	if ok {
		return slices.Clone(cached), nil
	}

	defer prof.Track(time.Now(), "numfield.SplitPrime")
	gen, err := r.generator()
	if err != nil {
		return nil, err
	}
	var out []PrimeIdealFactor
	if zz.Valuation(gen.index, p) == 0 {
		out = r.splitKummer(p.Uint64(), gen)
		dbg("split %s by Dedekind-Kummer: %d primes", p, len(out))
	} else {
		out = r.splitGeneral(p.Uint64())
		dbg("split %s in the algebra O_K/pO_K: %d primes", p, len(out))
	}
	if r.field.opts.checks() {
		sum := 0
		for _, f := range out {
			sum += f.E * f.F
		}
		if sum != r.Degree() {
			panic(fmt.Sprintf("numfield: sum of e*f over %s is %d, want %d", p, sum, r.Degree()))
		}
	}
	r.mu.Lock()
	r.splits[key] = out
	r.mu.Unlock()
	return slices.Clone(out), nil
}

// splitKummer factors the minimal polynomial of theta mod p; each factor g^e
// gives the prime (p, g(theta)) with ramification e.
func (r *RingOfIntegers) splitKummer(p uint64, gen *generatorData) []PrimeIdealFactor {
	fp, _ := kfield.NewPolyRing(p)
	pb := new(big.Int).SetUint64(p)
	pElem := r.FromInt(pb)
	var out []PrimeIdealFactor
	for _, fac := range fp.Factorize(fp.FromBig(gen.minPoly), r.field.opts.Seed) {
		acc := poly.Zero()
		for i := len(fac.P) - 1; i >= 0; i-- {
			c := new(big.Rat).SetInt(new(big.Int).SetUint64(fac.P[i]))
			acc = r.field.Add(r.field.Mul(acc, gen.theta), poly.Const(c))
		}
		g, ok := r.TryFromANF(acc)
		if !ok {
			panic("numfield: polynomial in an integral generator left the ring of integers")
		}
		out = append(out, PrimeIdealFactor{
			Prime:    r.IdealFromGenerators(pElem, g),
			P:        new(big.Int).Set(pb),
			F:        kfield.Deg(fac.P),
			E:        fac.E,
			Exponent: fac.E,
			chi:      fac.P,
		})
	}
	return out
}

// algebraModP is O_K/pO_K as F_p^n with its multiplication table.
type algebraModP struct {
	p     uint64
	n     int
	table [][][]uint64
	one   []uint64
}

func (r *RingOfIntegers) algebraMod(p uint64) *algebraModP {
	n := r.Degree()
	pb := new(big.Int).SetUint64(p)
	reduce := func(v []*big.Int) []uint64 {
		out := make([]uint64, len(v))
		t := new(big.Int)
		for i, x := range v {
			out[i] = t.Mod(x, pb).Uint64()
		}
		return out
	}
	a := &algebraModP{p: p, n: n, one: reduce(r.one.c)}
	a.table = make([][][]uint64, n)
	for i := range a.table {
		a.table[i] = make([][]uint64, n)
		for j := range a.table[i] {
			a.table[i][j] = reduce(r.table[i][j])
		}
	}
	return a
}

func (a *algebraModP) unit(i int) []uint64 {
	v := make([]uint64, a.n)
	v[i] = 1
	return v
}

func (a *algebraModP) mul(x, y []uint64) []uint64 {
	out := make([]uint64, a.n)
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j, yj := range y {
			if yj == 0 {
				continue
			}
			c := kfield.MulMod(xi, yj, a.p)
			for k, t := range a.table[i][j] {
				if t != 0 {
					out[k] = kfield.AddMod(out[k], kfield.MulMod(c, t, a.p), a.p)
				}
			}
		}
	}
	return out
}

func (a *algebraModP) pow(x []uint64, e *big.Int) []uint64 {
	out := slices.Clone(a.one)
	for i := e.BitLen() - 1; i >= 0; i-- {
		out = a.mul(out, out)
		if e.Bit(i) == 1 {
			out = a.mul(out, x)
		}
	}
	return out
}

func (a *algebraModP) sub(x, y []uint64) []uint64 {
	out := make([]uint64, a.n)
	for i := range out {
		out[i] = kfield.SubMod(x[i], y[i], a.p)
	}
	return out
}

func (a *algebraModP) scale(x []uint64, c uint64) []uint64 {
	out := make([]uint64, a.n)
	for i := range out {
		out[i] = kfield.MulMod(x[i], c, a.p)
	}
	return out
}

// subspace is an ideal of the algebra, kept in reduced row echelon form.
type subspace struct {
	rows   kfield.Matrix
	pivots []int
}

func (a *algebraModP) span(rows kfield.Matrix) subspace {
	red, piv := kfield.RREF(rows, a.n, a.p)
	return subspace{rows: red, pivots: piv}
}

func (a *algebraModP) free(s subspace) []int {
	isPivot := make([]bool, a.n)
	for _, c := range s.pivots {
		isPivot[c] = true
	}
	var out []int
	for i := 0; i < a.n; i++ {
		if !isPivot[i] {
			out = append(out, i)
		}
	}
	return out
}

// splitGeneral finds the maximal ideals of O_K/pO_K: it takes the nilradical
// as the kernel of x -> x^(p^j) with p^j >= n, then splits the semisimple
// quotient with elements fixed by Frobenius.
func (r *RingOfIntegers) splitGeneral(p uint64) []PrimeIdealFactor {
	alg := r.algebraMod(p)
	n := alg.n
	pb := new(big.Int).SetUint64(p)
	q := new(big.Int).Set(pb)
	for q.Cmp(big.NewInt(int64(n))) < 0 {
		q.Mul(q, pb)
	}
	frob := kfield.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		frob[i] = alg.pow(alg.unit(i), q)
	}
	radical := alg.span(kfield.LeftKernel(frob, n, p))
	maximal := r.splitAlgebra(alg, radical)

	pO := r.PrincipalIdeal(r.FromInt(pb))
	var out []PrimeIdealFactor
	for _, m := range maximal {
		vecs := lattice.Scaled(n, pb).Basis()
		for _, row := range m.rows {
			v := make([]*big.Int, n)
			for j, x := range row {
				v[j] = new(big.Int).SetUint64(x)
			}
			vecs = append(vecs, v)
		}
		prime := r.newIdeal(lattice.FromSpan(n, vecs))
		f := n - len(m.rows)
		e := r.valuation(pO, prime, n/f)
		out = append(out, PrimeIdealFactor{Prime: prime, P: new(big.Int).Set(pb), F: f, E: e, Exponent: e})
	}
	slices.SortStableFunc(out, func(x, y PrimeIdealFactor) int { return x.F - y.F })
	return out
}

// splitAlgebra returns the maximal ideals of the algebra containing I, where
// A/I is a product of finite fields.
func (r *RingOfIntegers) splitAlgebra(alg *algebraModP, I subspace) []subspace {
	p := alg.p
	free := alg.free(I)
	restrict := func(v []uint64) []uint64 {
		red := kfield.ReduceVec(v, I.rows, I.pivots, p)
		out := make([]uint64, len(free))
		for i, c := range free {
			out[i] = red[c]
		}
		return out
	}
	expand := func(v []uint64) []uint64 {
		out := make([]uint64, alg.n)
		for i, c := range free {
			out[c] = v[i]
		}
		return out
	}
	pb := new(big.Int).SetUint64(p)
	artin := kfield.NewMatrix(len(free), len(free))
	for i, c := range free {
		e := alg.unit(c)
		artin[i] = restrict(alg.sub(alg.pow(e, pb), e))
	}
	fixed := kfield.LeftKernel(artin, len(free), p)
	if len(fixed) <= 1 {
		return []subspace{I}
	}
	one := restrict(alg.one)
	var b []uint64
	for _, v := range fixed {
		if kfield.Rank(kfield.Matrix{one, v}, len(free), p) == 2 {
			b = expand(v)
			break
		}
	}
	if b == nil {
		panic("numfield: Frobenius-fixed subalgebra has no non-scalar element")
	}

	// Minimal polynomial of b in A/I; it splits into distinct linear factors.
	powers := kfield.Matrix{one}
	cur := slices.Clone(alg.one)
	var minPoly kfield.Poly
	for d := 1; d <= len(free); d++ {
		cur = alg.mul(cur, b)
		powers = append(powers, restrict(cur))
		rel := kfield.LeftKernel(powers, len(free), p)
		if len(rel) > 0 {
			minPoly = kfield.Poly(rel[0])
			break
		}
	}
	fp, _ := kfield.NewPolyRing(p)
	var out []subspace
	for _, c := range fp.Roots(minPoly, r.field.opts.Seed) {
		g := alg.sub(b, alg.scale(alg.one, c))
		rows := slices.Clone(I.rows)
		for i := 0; i < alg.n; i++ {
			rows = append(rows, alg.mul(g, alg.unit(i)))
		}
		out = append(out, r.splitAlgebra(alg, alg.span(rows))...)
	}
	return out
}

// valuation returns the largest k <= limit with a ⊆ P^k.
func (r *RingOfIntegers) valuation(a, prime Ideal, limit int) int {
	k := 0
	cur := prime
	for k < limit && r.IdealContains(cur, a) {
		k++
		cur = r.IdealMul(cur, prime)
	}
	return k
}
