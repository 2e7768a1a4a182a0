package kfield

import (
	"math/big"
	"testing"
)

func mustRing(t *testing.T, q uint64) PolyRing {
	t.Helper()
	r, err := NewPolyRing(q)
	if err != nil {
		t.Fatalf("NewPolyRing(%d): %v", q, err)
	}
	return r
}

func expand(r PolyRing, fs []Factor) Poly {
	out := r.Const(1)
	for _, f := range fs {
		out = r.Mul(out, r.Pow(f.P, f.E))
	}
	return out
}

func TestDivModAndGCD(t *testing.T) {
	r := mustRing(t, 7)
	a := r.Mul(Poly{1, 1}, Poly{2, 0, 1})
	b := r.Mul(Poly{1, 1}, Poly{3, 1})
	g := r.GCD(a, b)
	if !r.Equal(g, Poly{1, 1}) {
		t.Fatalf("gcd = %s", r.String(g))
	}
	q, rem := r.DivMod(a, Poly{1, 1})
	if len(rem) != 0 || !r.Equal(q, Poly{2, 0, 1}) {
		t.Fatalf("divmod: q=%s r=%s", r.String(q), r.String(rem))
	}
}

func TestFactorizeSmallCases(t *testing.T) {
	seed := []byte("kfield-test")
	r5 := mustRing(t, 5)
	fs := r5.Factorize(Poly{1, 0, 1}, seed)
	if len(fs) != 2 || !r5.Equal(fs[0].P, Poly{2, 1}) || !r5.Equal(fs[1].P, Poly{3, 1}) {
		t.Fatalf("x^2+1 mod 5: %v", fs)
	}
	r2 := mustRing(t, 2)
	fs = r2.Factorize(Poly{1, 0, 1}, seed)
	if len(fs) != 1 || fs[0].E != 2 || !r2.Equal(fs[0].P, Poly{1, 1}) {
		t.Fatalf("x^2+1 mod 2: %v", fs)
	}
	r3 := mustRing(t, 3)
	if !r3.IsIrreducible(Poly{1, 0, 1}) {
		t.Fatalf("x^2+1 should be irreducible mod 3")
	}
	if r5.IsIrreducible(Poly{1, 0, 1}) {
		t.Fatalf("x^2+1 should split mod 5")
	}
}

func TestFactorizeRebuilds(t *testing.T) {
	r := mustRing(t, 5)
	f := r.Mul(r.Pow(Poly{1, 1}, 2), r.Mul(Poly{1, 1, 1}, Poly{4, 1}))
	fs := r.Factorize(f, nil)
	if !r.Equal(expand(r, fs), f) {
		t.Fatalf("product of factors differs from input")
	}
	for _, fac := range fs {
		if !r.IsIrreducible(fac.P) {
			t.Fatalf("factor %s is reducible", r.String(fac.P))
		}
	}
	if len(fs) != 3 {
		t.Fatalf("expected 3 distinct factors, got %d", len(fs))
	}
}

func TestEqualDegreeCharacteristicTwo(t *testing.T) {
	r := mustRing(t, 2)
	f := r.Mul(Poly{1, 1, 0, 1}, Poly{1, 0, 1, 1})
	fs := r.Factorize(f, []byte{1})
	if len(fs) != 2 || Deg(fs[0].P) != 3 || Deg(fs[1].P) != 3 {
		t.Fatalf("unexpected factorization %v", fs)
	}
	if !r.Equal(expand(r, fs), f) {
		t.Fatalf("product mismatch")
	}
}

func TestRoots(t *testing.T) {
	r := mustRing(t, 17)
	roots := r.Roots(Poly{1, 0, 0, 0, 1}, []byte("roots"))
	want := []uint64{2, 8, 9, 15}
	if len(roots) != len(want) {
		t.Fatalf("roots = %v", roots)
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Fatalf("roots = %v want %v", roots, want)
		}
	}
}

func TestFieldInverse(t *testing.T) {
	k, err := NewField(3, Poly{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if k.Size().Int64() != 9 {
		t.Fatalf("size = %s", k.Size())
	}
	for a := uint64(0); a < 3; a++ {
		for b := uint64(0); b < 3; b++ {
			e := Elem{Limb: []uint64{a, b}}
			if k.IsZero(e) {
				continue
			}
			if !k.Equal(k.Mul(e, k.Inv(e)), k.One()) {
				t.Fatalf("inverse failed for %s", k.String(e))
			}
		}
	}
	g := Elem{Limb: []uint64{1, 1}}
	if !k.Equal(k.Pow(g, big.NewInt(8)), k.One()) {
		t.Fatalf("Fermat fails in F_9")
	}
	if _, err := NewField(5, Poly{1, 0, 1}); err == nil {
		t.Fatalf("expected reducible modulus to be rejected")
	}
}

func TestNullspaceAndKernel(t *testing.T) {
	m := Matrix{{1, 2}, {2, 4}}
	ns := Nullspace(m, 2, 5)
	if len(ns) != 1 || ns[0][0] != 3 || ns[0][1] != 1 {
		t.Fatalf("nullspace = %v", ns)
	}
	lk := LeftKernel(m, 2, 5)
	if len(lk) != 1 {
		t.Fatalf("left kernel = %v", lk)
	}
	if c0, c1 := (lk[0][0]*m[0][0]+lk[0][1]*m[1][0])%5, (lk[0][0]*m[0][1]+lk[0][1]*m[1][1])%5; c0 != 0 || c1 != 0 {
		t.Fatalf("left kernel vector not annihilating: %v", lk[0])
	}
	if Rank(Matrix{{1, 0, 1}, {0, 1, 1}, {1, 1, 2}}, 3, 7) != 2 {
		t.Fatalf("rank mismatch")
	}
	red, piv := RREF(Matrix{{0, 2, 4}}, 3, 7)
	v := ReduceVec([]uint64{5, 3, 1}, red, piv, 7)
	if v[1] != 0 || v[0] != 5 {
		t.Fatalf("reduce = %v", v)
	}
}

func TestModArithNearWordSize(t *testing.T) {
	const q = 18446744073709551557 // 2^64 - 59
	if got := AddMod(q-1, q-1, q); got != q-2 {
		t.Fatalf("(q-1)+(q-1) = %d", got)
	}
	if got := AddMod(q-1, 1, q); got != 0 {
		t.Fatalf("(q-1)+1 = %d", got)
	}
	if got := SubMod(1, q-1, q); got != 2 {
		t.Fatalf("1-(q-1) = %d", got)
	}
	if got := SubMod(q-1, 1, q); got != q-2 {
		t.Fatalf("(q-1)-1 = %d", got)
	}
	if got := MulMod(q-1, q-1, q); got != 1 {
		t.Fatalf("(q-1)^2 = %d", got)
	}
}
