package linalg

import (
	"math/big"

	"anf-kernel/internal/zz"
)

// RowHermite returns the row-style reduced Hermite normal form H of m with a
// unimodular U such that H = U*m. Non-zero rows of H come first, each pivot is
// positive, and the entries above a pivot lie in [0, pivot). The pivot column
// of every non-zero row is reported in pivots.
func RowHermite(m IntMatrix) (h, u IntMatrix, pivots []int) {
	a := m.Clone()
	u = IdentityInt(m.Rows)
	row := 0
	for col := 0; col < a.Cols && row < a.Rows; col++ {
		for i := row + 1; i < a.Rows; i++ {
			if a.A[i][col].Sign() == 0 {
				continue
			}
			if a.A[row][col].Sign() == 0 {
				a.A[row], a.A[i] = a.A[i], a.A[row]
				u.A[row], u.A[i] = u.A[i], u.A[row]
				continue
			}
			combineRows(a.A, u.A, row, i, col)
		}
		if a.A[row][col].Sign() == 0 {
			continue
		}
		if a.A[row][col].Sign() < 0 {
			negRow(a.A[row])
			negRow(u.A[row])
		}
		for k := 0; k < row; k++ {
			f := new(big.Int).Div(a.A[k][col], a.A[row][col])
			if f.Sign() == 0 {
				continue
			}
			subMulRow(a.A[k], a.A[row], f)
			subMulRow(u.A[k], u.A[row], f)
		}
		pivots = append(pivots, col)
		row++
	}
	return a, u, pivots
}

// combineRows replaces rows r and i by a unimodular combination that puts
// gcd(a[r][col], a[i][col]) in row r and zero in row i.
func combineRows(a, u [][]*big.Int, r, i, col int) {
	x, y := a[r][col], a[i][col]
	s, t, g := zz.ExtGCD(x, y)
	p := new(big.Int).Quo(x, g)
	q := new(big.Int).Quo(y, g)
	for _, rows := range [][][]*big.Int{a, u} {
		rr, ri := rows[r], rows[i]
		for j := range rr {
			newR := new(big.Int).Mul(s, rr[j])
			newR.Add(newR, new(big.Int).Mul(t, ri[j]))
			newI := new(big.Int).Mul(p, ri[j])
			newI.Sub(newI, new(big.Int).Mul(q, rr[j]))
			rr[j], ri[j] = newR, newI
		}
	}
}

func negRow(r []*big.Int) {
	for j := range r {
		r[j] = new(big.Int).Neg(r[j])
	}
}

func subMulRow(dst, src []*big.Int, f *big.Int) {
	t := new(big.Int)
	for j := range dst {
		dst[j] = new(big.Int).Sub(dst[j], t.Mul(f, src[j]))
	}
}

// NonZeroRows returns copies of the non-zero rows of m in order.
func NonZeroRows(m IntMatrix) [][]*big.Int {
	var out [][]*big.Int
	for i := 0; i < m.Rows; i++ {
		zero := true
		for _, v := range m.A[i] {
			if v.Sign() != 0 {
				zero = false
				break
			}
		}
		if !zero {
			out = append(out, m.Row(i))
		}
	}
	return out
}
