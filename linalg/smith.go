package linalg

import (
	"math/big"
	"slices"

	"anf-kernel/internal/zz"
)

// SmithInvariants returns the diagonal d_1 | d_2 | ... of the Smith normal form
// of m, one entry per min(rows, cols), zeros last.
func SmithInvariants(m IntMatrix) []*big.Int {
	a := m.Clone().A
	rows, cols := m.Rows, m.Cols
	n := min(rows, cols)
	for k := 0; k < n; k++ {
		pi, pj := -1, -1
		for i := k; i < rows && pi < 0; i++ {
			for j := k; j < cols; j++ {
				if a[i][j].Sign() != 0 {
					pi, pj = i, j
					break
				}
			}
		}
		if pi < 0 {
			break
		}
		a[k], a[pi] = a[pi], a[k]
		for i := range a {
			a[i][k], a[i][pj] = a[i][pj], a[i][k]
		}
		for {
			done := true
			for i := k + 1; i < rows; i++ {
				if a[i][k].Sign() != 0 {
					smithRowStep(a, k, i)
					done = false
				}
			}
			for j := k + 1; j < cols; j++ {
				if a[k][j].Sign() != 0 {
					smithColStep(a, k, j)
					done = false
				}
			}
			if !done {
				continue
			}
			// The pivot must divide the rest of the block; fold a row in otherwise.
			bad := -1
			for i := k + 1; i < rows && bad < 0; i++ {
				for j := k + 1; j < cols; j++ {
					if new(big.Int).Rem(a[i][j], a[k][k]).Sign() != 0 {
						bad = i
						break
					}
				}
			}
			if bad < 0 {
				break
			}
			for j := k; j < cols; j++ {
				a[k][j] = new(big.Int).Add(a[k][j], a[bad][j])
			}
		}
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int).Abs(a[i][i])
	}
	slices.SortStableFunc(out, func(x, y *big.Int) int {
		switch {
		case x.Sign() == 0 && y.Sign() != 0:
			return 1
		case y.Sign() == 0 && x.Sign() != 0:
			return -1
		}
		return 0
	})
	return out
}

func smithRowStep(a [][]*big.Int, k, i int) {
	x, y := a[k][k], a[i][k]
	s, t, g := zz.ExtGCD(x, y)
	p := new(big.Int).Quo(x, g)
	q := new(big.Int).Quo(y, g)
	rk, ri := a[k], a[i]
	for j := range rk {
		newK := new(big.Int).Mul(s, rk[j])
		newK.Add(newK, new(big.Int).Mul(t, ri[j]))
		newI := new(big.Int).Mul(p, ri[j])
		newI.Sub(newI, new(big.Int).Mul(q, rk[j]))
		rk[j], ri[j] = newK, newI
	}
}

func smithColStep(a [][]*big.Int, k, j int) {
	x, y := a[k][k], a[k][j]
	s, t, g := zz.ExtGCD(x, y)
	p := new(big.Int).Quo(x, g)
	q := new(big.Int).Quo(y, g)
	for i := range a {
		ck, cj := a[i][k], a[i][j]
		newK := new(big.Int).Mul(s, ck)
		newK.Add(newK, new(big.Int).Mul(t, cj))
		newJ := new(big.Int).Mul(p, cj)
		newJ.Sub(newJ, new(big.Int).Mul(q, ck))
		a[i][k], a[i][j] = newK, newJ
	}
}
