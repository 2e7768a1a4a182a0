package lattice

import (
	"math/big"
	"testing"
)

func vecs(rows ...[]int64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i, r := range rows {
		out[i] = make([]*big.Int, len(r))
		for j, v := range r {
			out[i][j] = big.NewInt(v)
		}
	}
	return out
}

func TestCanonicalForm(t *testing.T) {
	a := FromSpan(2, vecs([]int64{6, 0}, []int64{0, 6}, []int64{15, 0}, []int64{0, 15}))
	b := Scaled(2, big.NewInt(3))
	if !a.Equal(b) {
		t.Fatalf("%s != %s", a, b)
	}
	c := FromSpan(2, vecs([]int64{1, 1}, []int64{2, 1}))
	if !c.Equal(Full(2)) {
		t.Fatalf("expected Z^2, got %s", c)
	}
}

func TestContainsAndCoordinates(t *testing.T) {
	l := FromSpan(2, vecs([]int64{2, 1}, []int64{0, 3}))
	if !l.Contains(vecs([]int64{4, 5})[0]) {
		t.Fatalf("(4,5) = 2*(2,1) + (0,3) should be contained")
	}
	if l.Contains(vecs([]int64{1, 0})[0]) {
		t.Fatalf("(1,0) should not be contained")
	}
	coords, ok := l.Coordinates(vecs([]int64{4, 5})[0])
	if !ok {
		t.Fatalf("no coordinates")
	}
	basis := l.Basis()
	for j := 0; j < 2; j++ {
		s := new(big.Int)
		for i := range basis {
			s.Add(s, new(big.Int).Mul(coords[i], basis[i][j]))
		}
		if s.Int64() != []int64{4, 5}[j] {
			t.Fatalf("coordinate reconstruction failed at %d", j)
		}
	}
}

func TestSumIntersectIndex(t *testing.T) {
	six := Scaled(2, big.NewInt(6))
	fifteen := Scaled(2, big.NewInt(15))
	if !six.Add(fifteen).Equal(Scaled(2, big.NewInt(3))) {
		t.Fatalf("6Z^2 + 15Z^2 != 3Z^2")
	}
	if !six.Intersect(fifteen).Equal(Scaled(2, big.NewInt(30))) {
		t.Fatalf("6Z^2 cap 15Z^2 != 30Z^2: %s", six.Intersect(fifteen))
	}
	idx, ok := six.Index()
	if !ok || idx.Int64() != 36 {
		t.Fatalf("index = %v", idx)
	}
	skew := FromSpan(2, vecs([]int64{1, 1}))
	diag := FromSpan(2, vecs([]int64{2, 0}, []int64{0, 2}))
	got := skew.Intersect(diag)
	if !got.Equal(FromSpan(2, vecs([]int64{2, 2}))) {
		t.Fatalf("intersection = %s", got)
	}
	if _, ok := skew.Index(); ok {
		t.Fatalf("rank-1 lattice has no finite index")
	}
}

func TestInvariants(t *testing.T) {
	l := FromSpan(2, vecs([]int64{2, 0}, []int64{1, 3}))
	inv := l.Invariants()
	if inv[0].Int64() != 1 || inv[1].Int64() != 6 {
		t.Fatalf("invariants = %v", inv)
	}
	if !l.ContainsLattice(Scaled(2, big.NewInt(6))) {
		t.Fatalf("6Z^2 should lie in a lattice of index 6")
	}
}
