package linalg

import (
	"errors"
	"math/big"
)

// ErrSingular is returned when a solve needs an invertible matrix.
var ErrSingular = errors.New("linalg: singular matrix")

// RatMatrix is a dense row-major rational matrix.
type RatMatrix struct {
	Rows, Cols int
	A          [][]*big.Rat
}

func NewRatMatrix(rows, cols int) RatMatrix {
	a := make([][]*big.Rat, rows)
	for i := range a {
		a[i] = make([]*big.Rat, cols)
		for j := range a[i] {
			a[i][j] = new(big.Rat)
		}
	}
	return RatMatrix{Rows: rows, Cols: cols, A: a}
}

// RatFromRows copies rows into a matrix; every row must have length cols.
func RatFromRows(cols int, rows [][]*big.Rat) RatMatrix {
	m := NewRatMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic("linalg: ragged rational matrix")
		}
		for j, v := range row {
			m.A[i][j].Set(v)
		}
	}
	return m
}

func (m RatMatrix) Clone() RatMatrix { return RatFromRows(m.Cols, m.A) }

func (m RatMatrix) Transpose() RatMatrix {
	out := NewRatMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.A[j][i].Set(m.A[i][j])
		}
	}
	return out
}

func (m RatMatrix) Mul(o RatMatrix) RatMatrix {
	if m.Cols != o.Rows {
		panic("linalg: dimension mismatch in Mul")
	}
	out := NewRatMatrix(m.Rows, o.Cols)
	t := new(big.Rat)
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
func (m RatMatrix) VecMul(v []*big.Rat) []*big.Rat {
	return RatFromRows(m.Rows, [][]*big.Rat{v}).Mul(m).A[0]
}

// Trace returns the sum of the diagonal entries.
func (m RatMatrix) Trace() *big.Rat {
	out := new(big.Rat)
	for i := 0; i < min(m.Rows, m.Cols); i++ {
		out.Add(out, m.A[i][i])
	}
	return out
}

// RREF returns the reduced row echelon form and its pivot columns.
func (m RatMatrix) RREF() (RatMatrix, []int) {
	a := m.Clone()
	var pivots []int
	r := 0
	t := new(big.Rat)
	for c := 0; c < a.Cols && r < a.Rows; c++ {
		sel := -1
		for i := r; i < a.Rows; i++ {
			if a.A[i][c].Sign() != 0 {
				sel = i
				break
			}
		}
		if sel < 0 {
			continue
		}
		a.A[r], a.A[sel] = a.A[sel], a.A[r]
		inv := new(big.Rat).Inv(a.A[r][c])
		for j := c; j < a.Cols; j++ {
			a.A[r][j].Mul(a.A[r][j], inv)
		}
		for i := 0; i < a.Rows; i++ {
			if i == r || a.A[i][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(a.A[i][c])
			for j := c; j < a.Cols; j++ {
				a.A[i][j].Sub(a.A[i][j], t.Mul(f, a.A[r][j]))
			}
		}
		pivots = append(pivots, c)
		r++
	}
	return a, pivots
}

func (m RatMatrix) Rank() int {
	_, piv := m.RREF()
	return len(piv)
}

// Det returns the determinant of a square matrix.
func (m RatMatrix) Det() *big.Rat {
	if m.Rows != m.Cols {
		panic("linalg: determinant of a non-square matrix")
	}
	a := m.Clone().A
	n := m.Rows
	det := big.NewRat(1, 1)
	t := new(big.Rat)
	for c := 0; c < n; c++ {
		sel := -1
		for i := c; i < n; i++ {
			if a[i][c].Sign() != 0 {
				sel = i
				break
			}
		}
		if sel < 0 {
			return new(big.Rat)
		}
		if sel != c {
			a[c], a[sel] = a[sel], a[c]
			det.Neg(det)
		}
		det.Mul(det, a[c][c])
		for i := c + 1; i < n; i++ {
			if a[i][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(a[i][c], a[c][c])
			for j := c; j < n; j++ {
				a[i][j].Sub(a[i][j], t.Mul(f, a[c][j]))
			}
		}
	}
	return det
}

// Nullspace returns a basis of {x : m x = 0}, one vector per free column.
func (m RatMatrix) Nullspace() [][]*big.Rat {
	red, pivots := m.RREF()
	isPivot := make([]bool, m.Cols)
	for _, c := range pivots {
		isPivot[c] = true
	}
	var out [][]*big.Rat
	for free := 0; free < m.Cols; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]*big.Rat, m.Cols)
		for j := range v {
			v[j] = new(big.Rat)
		}
		v[free].SetInt64(1)
		for i, c := range pivots {
			v[c].Neg(red.A[i][free])
		}
		out = append(out, v)
	}
	return out
}

// Inverse returns m^-1 or ErrSingular.
func (m RatMatrix) Inverse() (RatMatrix, error) {
	if m.Rows != m.Cols {
		return RatMatrix{}, ErrSingular
	}
	n := m.Rows
	aug := NewRatMatrix(n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.A[i][j].Set(m.A[i][j])
		}
		aug.A[i][n+i].SetInt64(1)
	}
	red, pivots := aug.RREF()
	if len(pivots) < n || pivots[n-1] != n-1 {
		return RatMatrix{}, ErrSingular
	}
	out := NewRatMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.A[i][j].Set(red.A[i][n+j])
		}
	}
	return out, nil
}

