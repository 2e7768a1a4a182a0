package kfield

import (
	"encoding/binary"
	"math/big"
	"slices"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// Factor is one irreducible monic factor with its multiplicity.
type Factor struct {
	P Poly
	E int
}

// Factorize returns the monic irreducible factorization of f over F_q. The
// leading coefficient is dropped. Equal-degree splitting is randomized but
// deterministic: the randomness is keyed by seed, q and f. Factors are
// ordered by degree, then by coefficients.
func (r PolyRing) Factorize(f Poly, seed []byte) []Factor {
	f = r.Monic(f)
	if Deg(f) < 1 {
		return nil
	}
	src := r.newSource(f, seed)
	var out []Factor
	for _, sq := range r.SquareFree(f) {
		for _, dd := range r.DistinctDegree(sq.P) {
			for _, g := range r.EqualDegree(dd.P, dd.E, src) {
				out = append(out, Factor{P: g, E: sq.E})
			}
		}
	}
	r.sortFactors(out)
	return mergeFactors(r, out)
}

// IsIrreducible reports whether f is irreducible over F_q.
func (r PolyRing) IsIrreducible(f Poly) bool {
	f = r.Monic(f)
	if Deg(f) < 1 {
		return false
	}
	if !r.IsOne(r.GCD(f, r.Derivative(f))) {
		return false
	}
	dd := r.DistinctDegree(f)
	return len(dd) == 1 && dd[0].E == Deg(f)
}

// SquareFree splits a monic f into pairwise coprime square-free parts; each
// part is reported with the multiplicity its irreducible factors share.
func (r PolyRing) SquareFree(f Poly) []Factor {
	f = r.Monic(f)
	if Deg(f) < 1 {
		return nil
	}
	df := r.Derivative(f)
	if len(df) == 0 {
		var out []Factor
		for _, sub := range r.SquareFree(r.pthRoot(f)) {
			out = append(out, Factor{P: sub.P, E: sub.E * int(r.Q)})
		}
		return out
	}
	var out []Factor
	c := r.GCD(f, df)
	w := r.Quo(f, c)
	for i := 1; !r.IsOne(w); i++ {
		y := r.GCD(w, c)
		z := r.Quo(w, y)
		if Deg(z) > 0 {
			out = append(out, Factor{P: z, E: i})
		}
		w = y
		c = r.Quo(c, y)
	}
	if !r.IsOne(c) {
		for _, sub := range r.SquareFree(r.pthRoot(c)) {
			out = append(out, Factor{P: sub.P, E: sub.E * int(r.Q)})
		}
	}
	return out
}

// pthRoot inverts the Frobenius on a polynomial whose derivative vanishes.
func (r PolyRing) pthRoot(f Poly) Poly {
	if r.Q > uint64(len(f)) {
		return r.Trim(Poly{f[0]})
	}
	step := int(r.Q)
	out := make(Poly, 0, len(f)/step+1)
	for i := 0; i < len(f); i += step {
		out = append(out, f[i])
	}
	return r.Trim(out)
}

// DistinctDegree splits a monic square-free f into products of irreducible
// factors sharing a degree. Factor.E carries that degree.
func (r PolyRing) DistinctDegree(f Poly) []Factor {
	var out []Factor
	rest := r.Monic(f)
	x := r.X()
	h := x
	qb := new(big.Int).SetUint64(r.Q)
	for d := 1; 2*d <= Deg(rest); d++ {
		h = r.PowMod(h, qb, rest)
		g := r.GCD(rest, r.Sub(h, x))
		if !r.IsOne(g) {
			out = append(out, Factor{P: g, E: d})
			rest = r.Quo(rest, g)
			h = r.Mod(h, rest)
		}
	}
	if Deg(rest) > 0 {
		out = append(out, Factor{P: rest, E: Deg(rest)})
	}
	return out
}

// EqualDegree splits a monic square-free f whose irreducible factors all have
// degree d (Cantor-Zassenhaus).
func (r PolyRing) EqualDegree(f Poly, d int, src *source) []Poly {
	f = r.Monic(f)
	n := Deg(f)
	if n <= d {
		return []Poly{f}
	}
	for {
		a := r.randomPoly(n, src)
		if Deg(a) < 1 {
			continue
		}
		g := r.GCD(f, a)
		if Deg(g) > 0 && Deg(g) < n {
			return append(r.EqualDegree(g, d, src), r.EqualDegree(r.Quo(f, g), d, src)...)
		}
		b := r.splittingPower(a, d, f)
		g = r.GCD(f, b)
		if Deg(g) > 0 && Deg(g) < n {
			return append(r.EqualDegree(g, d, src), r.EqualDegree(r.Quo(f, g), d, src)...)
		}
	}
}

// splittingPower maps a to a^((q^d-1)/2) - 1 for odd q and to the trace
// a + a^2 + ... + a^(2^(d-1)) for q = 2.
func (r PolyRing) splittingPower(a Poly, d int, f Poly) Poly {
	if r.Q == 2 {
		two := big.NewInt(2)
		acc := r.Mod(a, f)
		cur := acc
		for i := 1; i < d; i++ {
			cur = r.PowMod(cur, two, f)
			acc = r.Add(acc, cur)
		}
		return acc
	}
	e := new(big.Int).Exp(new(big.Int).SetUint64(r.Q), big.NewInt(int64(d)), nil)
	e.Sub(e, big.NewInt(1))
	e.Rsh(e, 1)
	return r.Sub(r.PowMod(a, e, f), r.Const(1))
}

// Roots returns the distinct roots of f in F_q in increasing order.
func (r PolyRing) Roots(f Poly, seed []byte) []uint64 {
	var out []uint64
	for _, fac := range r.Factorize(f, seed) {
		if Deg(fac.P) == 1 {
			out = append(out, modNeg(fac.P[0], r.Q))
		}
	}
	slices.Sort(out)
	return out
}

func (r PolyRing) sortFactors(fs []Factor) {
	slices.SortFunc(fs, func(a, b Factor) int {
		if Deg(a.P) != Deg(b.P) {
			return Deg(a.P) - Deg(b.P)
		}
		for i := len(a.P) - 1; i >= 0; i-- {
			switch {
			case a.P[i] < b.P[i]:
				return -1
			case a.P[i] > b.P[i]:
				return 1
			}
		}
		return 0
	})
}

func mergeFactors(r PolyRing, fs []Factor) []Factor {
	var out []Factor
	for _, f := range fs {
		if n := len(out); n > 0 && r.Equal(out[n-1].P, f.P) {
			out[n-1].E += f.E
			continue
		}
		out = append(out, f)
	}
	return out
}

// source is the deterministic randomness used by equal-degree splitting.
type source struct {
	prng utils.PRNG
	buf  [8]byte
}

func (r PolyRing) newSource(f Poly, seed []byte) *source {
	h := sha3.NewShake256()
	h.Write(seed)
	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], r.Q)
	h.Write(word[:])
	for _, c := range f {
		binary.LittleEndian.PutUint64(word[:], c)
		h.Write(word[:])
	}
	key := make([]byte, 32)
	h.Read(key)
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		panic(err)
	}
	return &source{prng: prng}
}

func (s *source) uint64() uint64 {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

func (r PolyRing) randomPoly(n int, src *source) Poly {
	out := make(Poly, n)
	for i := range out {
		out[i] = src.uint64() % r.Q
	}
	return r.Trim(out)
}
