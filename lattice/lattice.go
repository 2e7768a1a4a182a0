// Package lattice represents finitely generated subgroups of Z^n. Every
// Lattice is stored as the non-zero rows of its reduced row Hermite normal
// form, so two lattices are equal exactly when their stored rows are.
package lattice

import (
	"fmt"
	"math/big"
	"strings"

	"anf-kernel/linalg"
)

// Lattice is an immutable subgroup of Z^n.
type Lattice struct {
	n      int
	rows   [][]*big.Int
	pivots []int
}

// FromSpan returns the lattice generated by vecs in Z^n.
func FromSpan(n int, vecs [][]*big.Int) Lattice {
	if len(vecs) == 0 {
		return Lattice{n: n}
	}
	h, _, pivots := linalg.RowHermite(linalg.IntFromRows(n, vecs))
	return Lattice{n: n, rows: linalg.NonZeroRows(h), pivots: pivots}
}

// Full returns Z^n.
func Full(n int) Lattice {
	return FromSpan(n, linalg.IdentityInt(n).A)
}

// Scaled returns k Z^n.
func Scaled(n int, k *big.Int) Lattice {
	vecs := linalg.IdentityInt(n).A
	for i := range vecs {
		vecs[i][i].Set(k)
	}
	return FromSpan(n, vecs)
}

func (l Lattice) Rank() int { return len(l.rows) }

// IsFullRank reports whether the rank equals the ambient dimension.
func (l Lattice) IsFullRank() bool { return len(l.rows) == l.n }

// Basis returns copies of the canonical basis rows.
func (l Lattice) Basis() [][]*big.Int {
	out := make([][]*big.Int, len(l.rows))
	for i, row := range l.rows {
		out[i] = make([]*big.Int, len(row))
		for j, v := range row {
			out[i][j] = new(big.Int).Set(v)
		}
	}
	return out
}

// Coordinates writes v in the canonical basis, with ok=false when v is not in l.
func (l Lattice) Coordinates(v []*big.Int) ([]*big.Int, bool) {
	if len(v) != l.n {
		panic(fmt.Sprintf("lattice: vector of length %d in dimension %d", len(v), l.n))
	}
	rest := make([]*big.Int, l.n)
	for j := range v {
		rest[j] = new(big.Int).Set(v[j])
	}
	coords := make([]*big.Int, len(l.rows))
	t := new(big.Int)
	for i, row := range l.rows {
		c := l.pivots[i]
		q, r := new(big.Int).QuoRem(rest[c], row[c], new(big.Int))
		if r.Sign() != 0 {
			return nil, false
		}
		coords[i] = q
		if q.Sign() == 0 {
			continue
		}
		for j := c; j < l.n; j++ {
			rest[j].Sub(rest[j], t.Mul(q, row[j]))
		}
	}
	for _, x := range rest {
		if x.Sign() != 0 {
			return nil, false
		}
	}
	return coords, true
}

// Contains reports whether v lies in l.
func (l Lattice) Contains(v []*big.Int) bool {
	_, ok := l.Coordinates(v)
	return ok
}

// ContainsLattice reports whether o is a subgroup of l.
func (l Lattice) ContainsLattice(o Lattice) bool {
	for _, row := range o.rows {
		if !l.Contains(row) {
			return false
		}
	}
	return true
}

func (l Lattice) Equal(o Lattice) bool {
	if l.n != o.n || len(l.rows) != len(o.rows) {
		return false
	}
	for i := range l.rows {
		for j := range l.rows[i] {
			if l.rows[i][j].Cmp(o.rows[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// Add returns l + o.
func (l Lattice) Add(o Lattice) Lattice {
	l.mustMatch(o)
	vecs := append(append([][]*big.Int{}, l.rows...), o.rows...)
	return FromSpan(l.n, vecs)
}

// Intersect returns l ∩ o. It reduces the block matrix [[l, l], [o, 0]]:
// rows whose left half vanishes carry a basis of the intersection on the right.
func (l Lattice) Intersect(o Lattice) Lattice {
	l.mustMatch(o)
	n := l.n
	var vecs [][]*big.Int
	for _, row := range l.rows {
		v := make([]*big.Int, 2*n)
		for j := 0; j < n; j++ {
			v[j] = row[j]
			v[n+j] = row[j]
		}
		vecs = append(vecs, v)
	}
	for _, row := range o.rows {
		v := make([]*big.Int, 2*n)
		for j := 0; j < n; j++ {
			v[j] = row[j]
			v[n+j] = new(big.Int)
		}
		vecs = append(vecs, v)
	}
	if len(vecs) == 0 {
		return Lattice{n: n}
	}
	h, _, pivots := linalg.RowHermite(linalg.IntFromRows(2*n, vecs))
	var out [][]*big.Int
	for i, c := range pivots {
		if c < n {
			continue
		}
		out = append(out, h.A[i][n:])
	}
	return FromSpan(n, out)
}

// Scale returns k*l.
func (l Lattice) Scale(k *big.Int) Lattice {
	vecs := l.Basis()
	for _, row := range vecs {
		for _, v := range row {
			v.Mul(v, k)
		}
	}
	return FromSpan(l.n, vecs)
}

// Index returns [Z^n : l] for a full-rank lattice, the product of the pivots.
func (l Lattice) Index() (*big.Int, bool) {
	if !l.IsFullRank() {
		return nil, false
	}
	out := big.NewInt(1)
	for i, c := range l.pivots {
		out.Mul(out, l.rows[i][c])
	}
	return out, true
}

// Invariants returns the elementary divisors of Z^n / l for a full-rank l.
func (l Lattice) Invariants() []*big.Int {
	if len(l.rows) == 0 {
		return nil
	}
	return linalg.SmithInvariants(linalg.IntFromRows(l.n, l.rows))
}

func (l Lattice) mustMatch(o Lattice) {
	if l.n != o.n {
		panic(fmt.Sprintf("lattice: dimension mismatch %d vs %d", l.n, o.n))
	}
}

func (l Lattice) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, row := range l.rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, v := range row {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(v.String())
		}
		b.WriteString(")")
	}
	b.WriteString("}")
	return b.String()
}
