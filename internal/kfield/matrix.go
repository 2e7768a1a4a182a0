package kfield

// Matrix is a dense row-major matrix over F_q.
type Matrix [][]uint64

// NewMatrix returns a zero rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]uint64, cols)
	}
	return m
}

func (m Matrix) clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]uint64(nil), row...)
	}
	return out
}

// Transpose returns m^T. cols is needed when m has no rows.
func Transpose(m Matrix, cols int) Matrix {
	out := NewMatrix(cols, len(m))
	for i, row := range m {
		for j, v := range row {
			out[j][i] = v
		}
	}
	return out
}

// RREF returns the non-zero rows of the reduced row echelon form of m and
// the pivot column of each of them.
func RREF(m Matrix, cols int, q uint64) (Matrix, []int) {
	a := m.clone()
	for _, row := range a {
		for j := range row {
			row[j] %= q
		}
	}
	var pivots []int
	r := 0
	for c := 0; c < cols && r < len(a); c++ {
		sel := -1
		for i := r; i < len(a); i++ {
			if a[i][c] != 0 {
				sel = i
				break
			}
		}
		if sel < 0 {
			continue
		}
		a[r], a[sel] = a[sel], a[r]
		inv := modInv(a[r][c], q)
		for j := c; j < cols; j++ {
			a[r][j] = modMul(a[r][j], inv, q)
		}
		for i := range a {
			if i == r || a[i][c] == 0 {
				continue
			}
			f := a[i][c]
			for j := c; j < cols; j++ {
				a[i][j] = modSub(a[i][j], modMul(f, a[r][j], q), q)
			}
		}
		pivots = append(pivots, c)
		r++
	}
	return a[:r], pivots
}

// Rank returns the rank of m over F_q.
func Rank(m Matrix, cols int, q uint64) int {
	_, piv := RREF(m, cols, q)
	return len(piv)
}

// Nullspace returns a basis of {x : m x = 0}.
func Nullspace(m Matrix, cols int, q uint64) Matrix {
	red, pivots := RREF(m, cols, q)
	isPivot := make([]bool, cols)
	for _, c := range pivots {
		isPivot[c] = true
	}
	var out Matrix
	for free := 0; free < cols; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]uint64, cols)
		v[free] = 1
		for i, c := range pivots {
			v[c] = modNeg(red[i][free], q)
		}
		out = append(out, v)
	}
	return out
}

// LeftKernel returns a basis of {v : v m = 0} for an n x cols matrix m.
func LeftKernel(m Matrix, cols int, q uint64) Matrix {
	return Nullspace(Transpose(m, cols), len(m), q)
}

// ReduceVec reduces v against rows in RREF with the given pivots, leaving zeros
// in every pivot column.
func ReduceVec(v []uint64, red Matrix, pivots []int, q uint64) []uint64 {
	out := make([]uint64, len(v))
	for i := range v {
		out[i] = v[i] % q
	}
	for i, c := range pivots {
		f := out[c]
		if f == 0 {
			continue
		}
		for j := range out {
			out[j] = modSub(out[j], modMul(f, red[i][j], q), q)
		}
	}
	return out
}

