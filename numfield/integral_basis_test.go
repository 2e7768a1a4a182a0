package numfield

import (
	"errors"
	"math/big"
	"testing"

	"anf-kernel/poly"
)

func TestFieldDiscriminants(t *testing.T) {
	cases := []struct {
		name   string
		coeffs []int64
		disc   int64
	}{
		{"Q(i)", []int64{1, 0, 1}, -4},
		{"Q(sqrt 2)", []int64{-2, 0, 1}, 8},
		{"Q(sqrt -3)", []int64{3, 0, 1}, -3},
		{"Q(sqrt 5)", []int64{-5, 0, 1}, 5},
		{"Q(cbrt 2)", []int64{-2, 0, 0, 1}, -108},
		{"Dedekind cubic", []int64{8, -2, 1, 1}, -503},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := mustField(t, tc.coeffs...)
			ib, err := k.IntegralBasis()
			if err != nil {
				t.Fatalf("IntegralBasis: %v", err)
			}
			if ib.Discriminant.Cmp(big.NewInt(tc.disc)) != 0 {
				t.Fatalf("disc = %s, want %d", ib.Discriminant, tc.disc)
			}
			if len(ib.Elements) != k.Degree() {
				t.Fatalf("%d basis elements in degree %d", len(ib.Elements), k.Degree())
			}
			for i, e := range ib.Elements {
				if !k.IsAlgebraicInteger(e) {
					t.Fatalf("basis element %s is not integral", e)
				}
				if e.Degree() != i {
					t.Fatalf("basis element %d has degree %d", i, e.Degree())
				}
			}
			if d := k.Discriminant(ib.Elements); d.Cmp(new(big.Rat).SetInt(ib.Discriminant)) != 0 {
				t.Fatalf("trace form det %s != %s", d, ib.Discriminant)
			}
		})
	}
}

func TestRefineIsIdempotent(t *testing.T) {
	for _, coeffs := range [][]int64{{3, 0, 1}, {-2, 0, 0, 1}, {8, -2, 1, 1}} {
		k := mustField(t, coeffs...)
		ib, err := k.IntegralBasis()
		if err != nil {
			t.Fatalf("IntegralBasis: %v", err)
		}
		again, err := k.RefineIntegralBasis(ib.Elements)
		if err != nil {
			t.Fatalf("RefineIntegralBasis: %v", err)
		}
		if again.Discriminant.Cmp(ib.Discriminant) != 0 {
			t.Fatalf("%v: disc moved from %s to %s", coeffs, ib.Discriminant, again.Discriminant)
		}
		for i := range ib.Elements {
			if !again.Elements[i].Equal(ib.Elements[i]) {
				t.Fatalf("%v: element %d moved from %s to %s", coeffs, i, ib.Elements[i], again.Elements[i])
			}
		}
	}
}

func TestRefineReturnsHermiteForm(t *testing.T) {
	cases := []struct {
		coeffs []int64
		guess  []poly.Poly
	}{
		{[]int64{1, 0, 1}, []poly.Poly{poly.FromInts(1, 1), poly.FromInts(0, 1)}},
		{[]int64{3, 0, 1}, []poly.Poly{poly.FromInts(0, 1), poly.FromInts(1)}},
		{[]int64{-2, 0, 0, 1}, []poly.Poly{poly.FromInts(0, 0, 1), poly.FromInts(0, 1), poly.FromInts(1)}},
		{[]int64{-2, 0, 0, 1}, []poly.Poly{poly.FromInts(1, 1), poly.FromInts(0, 1, 1), poly.FromInts(0, 0, 1)}},
	}
	for _, tc := range cases {
		k := mustField(t, tc.coeffs...)
		want, err := k.IntegralBasis()
		if err != nil {
			t.Fatalf("IntegralBasis: %v", err)
		}
		got, err := k.RefineIntegralBasis(tc.guess)
		if err != nil {
			t.Fatalf("%v: RefineIntegralBasis(%v): %v", tc.coeffs, tc.guess, err)
		}
		for i, e := range got.Elements {
			if e.Degree() != i {
				t.Fatalf("%v: element %d is %s", tc.coeffs, i, e)
			}
			if !e.Equal(want.Elements[i]) {
				t.Fatalf("%v: element %d is %s, want %s", tc.coeffs, i, e, want.Elements[i])
			}
		}
	}
}

func TestRefineRejectsBadGuess(t *testing.T) {
	k := mustField(t, 1, 0, 1)
	if _, err := k.RefineIntegralBasis([]poly.Poly{k.One()}); !errors.Is(err, ErrInvalidBasis) {
		t.Fatalf("short guess: err = %v", err)
	}
	half := poly.New(big.NewRat(1, 2))
	if _, err := k.RefineIntegralBasis([]poly.Poly{k.One(), half}); !errors.Is(err, ErrInvalidBasis) {
		t.Fatalf("non-integral guess: err = %v", err)
	}
	if _, err := k.RefineIntegralBasis([]poly.Poly{k.One(), poly.FromInts(2)}); !errors.Is(err, ErrInvalidBasis) {
		t.Fatalf("dependent guess: err = %v", err)
	}
}

func TestSearchBound(t *testing.T) {
	// disc(1, x) = -36; the search at 2 finds nothing and 3 is over the bound.
	k, err := NewFieldWithOptions(poly.FromInts(9, 0, 1), Options{MaxSearchPrime: 2})
	if err != nil {
		t.Fatalf("NewFieldWithOptions: %v", err)
	}
	if _, err := k.IntegralBasis(); !errors.Is(err, ErrSearchTooLarge) {
		t.Fatalf("err = %v, want ErrSearchTooLarge", err)
	}
	if _, err := k.RingOfIntegers(); !errors.Is(err, ErrSearchTooLarge) {
		t.Fatalf("RingOfIntegers err = %v", err)
	}
}
