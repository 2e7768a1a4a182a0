package zz

import "math/big"

// LCM returns the non-negative least common multiple of a and b.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	out := new(big.Int).Quo(new(big.Int).Abs(a), g)
	return out.Mul(out, new(big.Int).Abs(b))
}

// LCMList returns the lcm of xs, or 1 for an empty list.
func LCMList(xs []*big.Int) *big.Int {
	out := big.NewInt(1)
	for _, x := range xs {
		out = LCM(out, x)
	}
	return out
}

// DenominatorLCM returns the lcm of the denominators of xs.
func DenominatorLCM(xs []*big.Rat) *big.Int {
	dens := make([]*big.Int, len(xs))
	for i, x := range xs {
		dens[i] = x.Denom()
	}
	return LCMList(dens)
}
