package zz

import (
	"math/big"
)

// ExtGCD returns (u,v,g) such that a*u + b*v = g = gcd(a,b) >= 0. Among all
// solutions it picks the one with the smallest |v| (ties go to negative v), which
// keeps the unimodular row operations of Hermite reduction from growing entries.
func ExtGCD(a, b *big.Int) (u, v, g *big.Int) {
	if a.Sign() == 0 && b.Sign() == 0 {
		return new(big.Int), new(big.Int), new(big.Int)
	}
	if a.Sign() == 0 {
		// gcd = |b|; pick u=0, v=sign(b)
		v = big.NewInt(int64(b.Sign()))
		return new(big.Int), v, new(big.Int).Abs(b)
	}
	if b.Sign() == 0 {
		u = big.NewInt(int64(a.Sign()))
		return u, new(big.Int), new(big.Int).Abs(a)
	}

	// GCD only accepts non-negative inputs when cofactors are requested.
	absA := new(big.Int).Abs(a)
	absB := new(big.Int).Abs(b)
	u0 := new(big.Int)
	v0 := new(big.Int)
	g = new(big.Int).GCD(u0, v0, absA, absB)
	if a.Sign() < 0 {
		u0.Neg(u0)
	}
	if b.Sign() < 0 {
		v0.Neg(v0)
	}

	// Solutions are (u0 + k*b/g, v0 - k*a/g); shift k to minimise |v|.
	ag := new(big.Int).Quo(a, g)
	bg := new(big.Int).Quo(b, g)
	k := roundQuo(v0, ag)
	u = new(big.Int).Add(u0, new(big.Int).Mul(k, bg))
	v = new(big.Int).Sub(v0, new(big.Int).Mul(k, ag))

	vAbs := new(big.Int).Abs(v)
	for _, step := range []int64{1, -1} {
		ks := new(big.Int).Add(k, big.NewInt(step))
		vs := new(big.Int).Sub(v0, new(big.Int).Mul(ks, ag))
		if new(big.Int).Abs(vs).Cmp(vAbs) < 0 {
			k = ks
			u.Add(u0, new(big.Int).Mul(k, bg))
			v = vs
			vAbs.Abs(v)
		}
	}
	// Tie-break: prefer negative v.
	if v.Sign() > 0 {
		alt := new(big.Int).Sub(v, new(big.Int).Abs(ag))
		if new(big.Int).Abs(alt).Cmp(vAbs) == 0 {
			step := big.NewInt(1)
			if ag.Sign() < 0 {
				step.Neg(step)
			}
			k.Add(k, step)
			u.Add(u0, new(big.Int).Mul(k, bg))
			v = alt
		}
	}
	return u, v, g
}

// roundQuo returns round(n/d) with halves rounded away from zero.
func roundQuo(n, d *big.Int) *big.Int {
	nn := new(big.Int).Set(n)
	dd := new(big.Int).Set(d)
	if dd.Sign() < 0 {
		nn.Neg(nn)
		dd.Neg(dd)
	}
	num := new(big.Int).Lsh(nn, 1)
	if nn.Sign() >= 0 {
		num.Add(num, dd)
	} else {
		num.Sub(num, dd)
	}
	return num.Quo(num, new(big.Int).Lsh(dd, 1))
}
