package linalg

import (
	"math/big"
	"testing"
)

func fromInt64(rows [][]int64) IntMatrix {
	m := NewIntMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			m.A[i][j].SetInt64(v)
		}
	}
	return m
}

func TestIntDet(t *testing.T) {
	m := fromInt64([][]int64{{2, -1, 0}, {1, 3, 4}, {0, 5, -2}})
	if d := m.Det(); d.Int64() != -54 {
		t.Fatalf("det = %s", d)
	}
	swap := fromInt64([][]int64{{0, 1}, {1, 0}})
	if swap.Det().Int64() != -1 {
		t.Fatalf("swap det = %s", swap.Det())
	}
}

func TestRowHermite(t *testing.T) {
	m := fromInt64([][]int64{{6, 0}, {15, 0}, {0, 4}, {3, 6}})
	h, u, piv := RowHermite(m)
	if !u.Mul(m).Equal(h) {
		t.Fatalf("U*m != H")
	}
	if d := u.Det(); d.CmpAbs(big.NewInt(1)) != 0 {
		t.Fatalf("U not unimodular: det %s", d)
	}
	want := fromInt64([][]int64{{3, 0}, {0, 2}, {0, 0}, {0, 0}})
	if !h.Equal(want) {
		t.Fatalf("H =\n%s", h)
	}
	if len(piv) != 2 || piv[0] != 0 || piv[1] != 1 {
		t.Fatalf("pivots = %v", piv)
	}
	if rows := NonZeroRows(h); len(rows) != 2 {
		t.Fatalf("non-zero rows = %d", len(rows))
	}
}

func TestSmithInvariants(t *testing.T) {
	m := fromInt64([][]int64{{2, 4, 4}, {-6, 6, 12}, {10, -4, -16}})
	got := SmithInvariants(m)
	want := []int64{2, 6, 12}
	for i := range want {
		if got[i].Int64() != want[i] {
			t.Fatalf("invariants = %v want %v", got, want)
		}
	}
	diag := SmithInvariants(fromInt64([][]int64{{3, 0}, {0, 5}}))
	if diag[0].Int64() != 1 || diag[1].Int64() != 15 {
		t.Fatalf("diag(3,5) -> %v", diag)
	}
}

func TestRatNullspaceInverse(t *testing.T) {
	m := RatFromRows(3, [][]*big.Rat{
		{big.NewRat(1, 1), big.NewRat(2, 1), big.NewRat(3, 1)},
		{big.NewRat(2, 1), big.NewRat(4, 1), big.NewRat(6, 1)},
	})
	ns := m.Nullspace()
	if len(ns) != 2 {
		t.Fatalf("nullity = %d", len(ns))
	}
	for _, v := range ns {
		s := new(big.Rat)
		for j := 0; j < 3; j++ {
			s.Add(s, new(big.Rat).Mul(m.A[0][j], v[j]))
		}
		if s.Sign() != 0 {
			t.Fatalf("nullspace vector %v not annihilated", v)
		}
	}
	a := RatFromRows(2, [][]*big.Rat{
		{big.NewRat(1, 2), big.NewRat(1, 1)},
		{big.NewRat(0, 1), big.NewRat(3, 1)},
	})
	inv, err := a.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if inv.A[0][0].Cmp(big.NewRat(2, 1)) != 0 || inv.A[0][1].Cmp(big.NewRat(-2, 3)) != 0 ||
		inv.A[1][0].Sign() != 0 || inv.A[1][1].Cmp(big.NewRat(1, 3)) != 0 {
		t.Fatalf("inverse = %v", inv.A)
	}
	if _, err := m.Transpose().Mul(m).Inverse(); err != ErrSingular {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}
