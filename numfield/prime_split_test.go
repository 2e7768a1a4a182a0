package numfield

import (
	"errors"
	"math/big"
	"testing"
)

func sumEF(fs []PrimeIdealFactor) int {
	s := 0
	for _, f := range fs {
		s += f.E * f.F
	}
	return s
}

func TestSplitPrimeGaussian(t *testing.T) {
	r := mustRing(t, 1, 0, 1)
	cases := []struct {
		p     int64
		count int
		f, e  int
	}{
		{2, 1, 1, 2},
		{3, 1, 2, 1},
		{5, 2, 1, 1},
		{7, 1, 2, 1},
		{13, 2, 1, 1},
	}
	for _, tc := range cases {
		fs, err := r.SplitPrime(big.NewInt(tc.p))
		if err != nil {
			t.Fatalf("SplitPrime(%d): %v", tc.p, err)
		}
		if len(fs) != tc.count {
			t.Fatalf("%d splits into %d primes, want %d", tc.p, len(fs), tc.count)
		}
		for _, f := range fs {
			if f.F != tc.f || f.E != tc.e {
				t.Fatalf("prime over %d: f=%d e=%d, want f=%d e=%d", tc.p, f.F, f.E, tc.f, tc.e)
			}
			n, _ := r.IdealNorm(f.Prime)
			if n.Cmp(f.Norm()) != 0 {
				t.Fatalf("N(P) = %s, want %s", n, f.Norm())
			}
		}
	}
}

func TestSplitPrimeRejects(t *testing.T) {
	r := mustRing(t, 1, 0, 1)
	for _, n := range []int64{-5, 0, 1, 4, 91} {
		if _, err := r.SplitPrime(big.NewInt(n)); !errors.Is(err, ErrNotPrime) {
			t.Fatalf("SplitPrime(%d): err = %v", n, err)
		}
	}
	m89 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 89), big.NewInt(1))
	if _, err := r.SplitPrime(m89); !errors.Is(err, ErrPrimeTooLarge) {
		t.Fatalf("SplitPrime(2^89-1): err = %v", err)
	}
}

// In these fields 2 divides [O_K : Z[x]], so splitting goes through O_K/2O_K.
func TestSplitPrimeIndexDivisor(t *testing.T) {
	cases := []struct {
		name   string
		coeffs []int64
		fs     []int
	}{
		{"Q(sqrt -3)", []int64{3, 0, 1}, []int{2}},
		{"Q(sqrt -7)", []int64{7, 0, 1}, []int{1, 1}},
		{"Dedekind cubic", []int64{8, -2, 1, 1}, []int{1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := mustRing(t, tc.coeffs...)
			fs, err := r.SplitPrime(big.NewInt(2))
			if err != nil {
				t.Fatalf("SplitPrime(2): %v", err)
			}
			if len(fs) != len(tc.fs) {
				t.Fatalf("2 splits into %d primes, want %d", len(fs), len(tc.fs))
			}
			for i, f := range fs {
				if f.F != tc.fs[i] || f.E != 1 {
					t.Fatalf("prime %d: f=%d e=%d", i, f.F, f.E)
				}
				if _, err := r.ResidueField(f); !errors.Is(err, ErrNoResidueField) {
					t.Fatalf("ResidueField: err = %v", err)
				}
			}
			prod := r.UnitIdeal()
			for i, f := range fs {
				for j := i + 1; j < len(fs); j++ {
					if r.IdealEqual(f.Prime, fs[j].Prime) {
						t.Fatalf("primes %d and %d coincide", i, j)
					}
				}
				prod = r.IdealMul(prod, r.IdealPow(f.Prime, f.E))
			}
			if !r.IdealEqual(prod, principal(r, 2)) {
				t.Fatalf("product of primes over 2 is %s", prod)
			}
		})
	}
}

func TestSplitSumEF(t *testing.T) {
	for _, coeffs := range [][]int64{{-2, 0, 0, 1}, {8, -2, 1, 1}, {-5, 0, 1}} {
		r := mustRing(t, coeffs...)
		for _, p := range []int64{2, 3, 5, 7, 11, 31} {
			fs, err := r.SplitPrime(big.NewInt(p))
			if err != nil {
				t.Fatalf("%v: SplitPrime(%d): %v", coeffs, p, err)
			}
			if got := sumEF(fs); got != r.Degree() {
				t.Fatalf("%v at %d: sum e*f = %d", coeffs, p, got)
			}
		}
	}
}

func TestSplitPrimeCached(t *testing.T) {
	r := mustRing(t, -2, 0, 0, 1)
	a, err := r.SplitPrime(big.NewInt(5))
	if err != nil {
		t.Fatalf("SplitPrime: %v", err)
	}
	a[0].E = 99
	b, _ := r.SplitPrime(big.NewInt(5))
	if b[0].E == 99 {
		t.Fatalf("cache shares its slice with callers")
	}
}

func TestResidueField(t *testing.T) {
	r := mustRing(t, 1, 0, 1)
	elems := []Element{
		r.FromInt(big.NewInt(17)),
		r.Add(r.BasisElement(1), r.FromInt(big.NewInt(4))),
		r.Sub(r.Mul(r.BasisElement(1), r.FromInt(big.NewInt(6))), r.One()),
	}
	for _, p := range []int64{3, 5} {
		fs, err := r.SplitPrime(big.NewInt(p))
		if err != nil {
			t.Fatalf("SplitPrime(%d): %v", p, err)
		}
		for _, f := range fs {
			rf, err := r.ResidueField(f)
			if err != nil {
				t.Fatalf("ResidueField: %v", err)
			}
			if rf.Size().Cmp(f.Norm()) != 0 {
				t.Fatalf("|O/P| = %s, want %s", rf.Size(), f.Norm())
			}
			for _, g := range r.IntegerBasis(f.Prime) {
				if !rf.IsZero(rf.Reduce(g)) {
					t.Fatalf("%s in P reduces to %s", g, rf.String(rf.Reduce(g)))
				}
			}
			if !rf.Equal(rf.Reduce(r.One()), rf.One()) {
				t.Fatalf("1 does not reduce to 1")
			}
			for _, a := range elems {
				for _, b := range elems {
					if !rf.Equal(rf.Reduce(r.Mul(a, b)), rf.Mul(rf.Reduce(a), rf.Reduce(b))) {
						t.Fatalf("reduction is not multiplicative on %s, %s", a, b)
					}
					if !rf.Equal(rf.Reduce(r.Add(a, b)), rf.Add(rf.Reduce(a), rf.Reduce(b))) {
						t.Fatalf("reduction is not additive on %s, %s", a, b)
					}
				}
			}
		}
	}
}

func TestAlgebraModPNearWordSize(t *testing.T) {
	const p = 18446744073709551557 // 2^64 - 59
	alg := &algebraModP{
		p: p,
		n: 2,
		table: [][][]uint64{
			{{1, 0}, {1, 0}},
			{{1, 0}, {0, 1}},
		},
		one: []uint64{1, 0},
	}
	// Three contributions of p-1 land in coordinate 0.
	got := alg.mul([]uint64{p - 1, p - 1}, []uint64{1, 1})
	if got[0] != p-3 || got[1] != p-1 {
		t.Fatalf("mul = %v", got)
	}
	if got := alg.sub([]uint64{p - 1, 1}, []uint64{1, p - 1}); got[0] != p-2 || got[1] != 2 {
		t.Fatalf("sub = %v", got)
	}
}
