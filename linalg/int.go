// Package linalg implements exact dense linear algebra over Z and Q: integer
// Hermite and Smith normal forms, and determinants, ranks, nullspaces and
// solves over the rationals.
package linalg

import (
	"fmt"
	"math/big"
	"strings"
)

// IntMatrix is a dense row-major integer matrix.
type IntMatrix struct {
	Rows, Cols int
	A          [][]*big.Int
}

// NewIntMatrix returns a zero rows x cols matrix.
func NewIntMatrix(rows, cols int) IntMatrix {
	a := make([][]*big.Int, rows)
	for i := range a {
		a[i] = make([]*big.Int, cols)
		for j := range a[i] {
			a[i][j] = new(big.Int)
		}
	}
	return IntMatrix{Rows: rows, Cols: cols, A: a}
}

// IntFromRows copies rows into a matrix; every row must have length cols.
func IntFromRows(cols int, rows [][]*big.Int) IntMatrix {
	m := NewIntMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("linalg: row %d has length %d, want %d", i, len(row), cols))
		}
		for j, v := range row {
			m.A[i][j].Set(v)
		}
	}
	return m
}

// IdentityInt returns the n x n identity.
func IdentityInt(n int) IntMatrix {
	m := NewIntMatrix(n, n)
	for i := 0; i < n; i++ {
		m.A[i][i].SetInt64(1)
	}
	return m
}

func (m IntMatrix) Clone() IntMatrix { return IntFromRows(m.Cols, m.A) }

// Row returns a copy of row i.
func (m IntMatrix) Row(i int) []*big.Int {
	out := make([]*big.Int, m.Cols)
	for j := range out {
		out[j] = new(big.Int).Set(m.A[i][j])
	}
	return out
}

func (m IntMatrix) Transpose() IntMatrix {
	out := NewIntMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.A[j][i].Set(m.A[i][j])
		}
	}
	return out
}

func (m IntMatrix) Mul(o IntMatrix) IntMatrix {
	if m.Cols != o.Rows {
		panic("linalg: dimension mismatch in Mul")
	}
	out := NewIntMatrix(m.Rows, o.Cols)
	t := new(big.Int)
	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			if m.A[i][k].Sign() == 0 {
				continue
			}
			for j := 0; j < o.Cols; j++ {
				out.A[i][j].Add(out.A[i][j], t.Mul(m.A[i][k], o.A[k][j]))
			}
		}
	}
	return out
}

// VecMul returns the row vector v*m.
func (m IntMatrix) VecMul(v []*big.Int) []*big.Int {
	return IntFromRows(m.Rows, [][]*big.Int{v}).Mul(m).A[0]
}

func (m IntMatrix) Equal(o IntMatrix) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return false
	}
	for i := range m.A {
		for j := range m.A[i] {
			if m.A[i][j].Cmp(o.A[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// Det returns the determinant of a square matrix by fraction-free
// (Bareiss) elimination.
func (m IntMatrix) Det() *big.Int {
	if m.Rows != m.Cols {
		panic("linalg: determinant of a non-square matrix")
	}
	n := m.Rows
	if n == 0 {
		return big.NewInt(1)
	}
	a := m.Clone().A
	sign := 1
	prev := big.NewInt(1)
	t := new(big.Int)
	for k := 0; k < n-1; k++ {
		if a[k][k].Sign() == 0 {
			sel := -1
			for i := k + 1; i < n; i++ {
				if a[i][k].Sign() != 0 {
					sel = i
					break
				}
			}
			if sel < 0 {
				return new(big.Int)
			}
			a[k], a[sel] = a[sel], a[k]
			sign = -sign
		}
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				v := new(big.Int).Mul(a[i][j], a[k][k])
				v.Sub(v, t.Mul(a[i][k], a[k][j]))
				a[i][j] = v.Quo(v, prev)
			}
		}
		prev = a[k][k]
	}
	out := new(big.Int).Set(a[n-1][n-1])
	if sign < 0 {
		out.Neg(out)
	}
	return out
}

func (m IntMatrix) String() string {
	var b strings.Builder
	for _, row := range m.A {
		b.WriteString("[")
		for j, v := range row {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(v.String())
		}
		b.WriteString("]\n")
	}
	return b.String()
}
