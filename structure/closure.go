package structure

import "errors"

// Hom is an injective ring homomorphism A -> B with a partial inverse.
type Hom[A, B any] struct {
	Image       func(A) B
	TryPreimage func(B) (A, bool)
}

// IntegralClosureSquare bundles the commuting square
//
//	Q -> K
//	^    ^
//	Z -> R
//
// where Q is the field of fractions of Z, K is a finite extension of Q and R is
// the integral closure of Z in K.
type IntegralClosureSquare[Z, R, Q, K any] struct {
	ZRing  IntegralDomain[Z]
	RRing  IntegralDomain[R]
	QField Field[Q]
	KField Field[K]

	ZToR Hom[Z, R]
	QToK Hom[Q, K]
	ZToQ Hom[Z, Q]
	RToK Hom[R, K]

	// MinPoly returns the monic minimal polynomial over Q of an element of K,
	// lowest degree coefficient first.
	MinPoly func(K) []Q
	// Integralize returns a non-zero d in Z with d*alpha in R.
	Integralize func(K) Z
}

// ErrIncompleteSquare reports a square with a missing ring or map.
var ErrIncompleteSquare = errors.New("structure: incomplete integral closure square")

// ErrSquareNotCommuting reports a square whose two paths Z -> K disagree.
var ErrSquareNotCommuting = errors.New("structure: integral closure square does not commute")

// NewIntegralClosureSquare validates s and returns it. The two paths from Z to
// K are compared on zero and one.
func NewIntegralClosureSquare[Z, R, Q, K any](s IntegralClosureSquare[Z, R, Q, K]) (*IntegralClosureSquare[Z, R, Q, K], error) {
	if s.ZRing == nil || s.RRing == nil || s.QField == nil || s.KField == nil ||
		s.ZToR.Image == nil || s.QToK.Image == nil || s.ZToQ.Image == nil || s.RToK.Image == nil ||
		s.ZToR.TryPreimage == nil || s.QToK.TryPreimage == nil || s.ZToQ.TryPreimage == nil || s.RToK.TryPreimage == nil ||
		s.MinPoly == nil || s.Integralize == nil {
		return nil, ErrIncompleteSquare
	}
	for _, z := range []Z{s.ZRing.Zero(), s.ZRing.One()} {
		viaQ := s.QToK.Image(s.ZToQ.Image(z))
		viaR := s.RToK.Image(s.ZToR.Image(z))
		if !s.KField.Equal(viaQ, viaR) {
			return nil, ErrSquareNotCommuting
		}
	}
	out := s
	return &out, nil
}

// MinPolyKOverQ returns the monic minimal polynomial of alpha over Q.
func (s *IntegralClosureSquare[Z, R, Q, K]) MinPolyKOverQ(alpha K) []Q {
	mp := s.MinPoly(alpha)
	if len(mp) == 0 || !s.QField.Equal(mp[len(mp)-1], s.QField.One()) {
		panic("structure: minimal polynomial is not monic")
	}
	return mp
}

// MinPolyROverZ returns the minimal polynomial of an element of R. It is monic
// with coefficients in Z because R is integral over Z.
func (s *IntegralClosureSquare[Z, R, Q, K]) MinPolyROverZ(alpha R) []Z {
	mp := s.MinPolyKOverQ(s.RToK.Image(alpha))
	out := make([]Z, len(mp))
	for i, c := range mp {
		z, ok := s.ZToQ.TryPreimage(c)
		if !ok {
			panic("structure: minimal polynomial of an integral element has a non-integral coefficient")
		}
		out[i] = z
	}
	return out
}

// IntegralizeMultiplier returns a non-zero d in Z such that d*alpha lies in R.
func (s *IntegralClosureSquare[Z, R, Q, K]) IntegralizeMultiplier(alpha K) Z {
	d := s.Integralize(alpha)
	if s.ZRing.IsZero(d) {
		panic("structure: zero integralizing multiplier")
	}
	return d
}

// NumeratorAndDenominator writes alpha = n/d with n, d in R and d coming from Z.
func (s *IntegralClosureSquare[Z, R, Q, K]) NumeratorAndDenominator(alpha K) (n, d R) {
	d = s.ZToR.Image(s.IntegralizeMultiplier(alpha))
	n, ok := s.RToK.TryPreimage(s.KField.Mul(s.RToK.Image(d), alpha))
	if !ok {
		panic("structure: integralizing multiplier did not land in R")
	}
	return n, d
}
