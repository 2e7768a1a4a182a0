package numfield

import (
	"math/big"
	"os"
	"testing"

	"anf-kernel/poly"
)

func TestMain(m *testing.M) {
	checksOn = true
	code := m.Run()
	_ = WriteTimings(os.Stderr)
	os.Exit(code)
}

func mustField(t *testing.T, coeffs ...int64) *Field {
	t.Helper()
	k, err := NewField(poly.FromInts(coeffs...))
	if err != nil {
		t.Fatalf("NewField(%v): %v", coeffs, err)
	}
	return k
}

func mustRing(t *testing.T, coeffs ...int64) *RingOfIntegers {
	t.Helper()
	r, err := mustField(t, coeffs...).RingOfIntegers()
	if err != nil {
		t.Fatalf("RingOfIntegers(%v): %v", coeffs, err)
	}
	return r
}

func principal(r *RingOfIntegers, n int64) Ideal {
	return r.PrincipalIdeal(r.FromInt(big.NewInt(n)))
}

// elem maps a field element given by power basis coefficients into r.
func elem(t *testing.T, r *RingOfIntegers, a poly.Poly) Element {
	t.Helper()
	e, ok := r.TryFromANF(a)
	if !ok {
		t.Fatalf("%s is not in the ring of integers", a)
	}
	return e
}
