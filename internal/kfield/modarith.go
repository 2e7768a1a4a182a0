package kfield

import (
	"math/bits"

	"github.com/tuneinsight/lattigo/v4/ring"
)

func modAdd(a, b, q uint64) uint64 {
	sum := a + b
	if sum >= q || sum < a {
		sum -= q
	}
	return sum
}

func modSub(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (q - b)
}

func modNeg(a, q uint64) uint64 {
	if a == 0 {
		return 0
	}
	return q - a
}

func modMul(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// modInv inverts a modulo the prime q by Fermat. It panics on zero.
func modInv(a, q uint64) uint64 {
	a %= q
	if a == 0 {
		panic("kfield: inverse of zero")
	}
	return ring.ModExp(a, q-2, q)
}

// Inv returns the inverse of a in F_q.
func Inv(a, q uint64) uint64 { return modInv(a, q) }

// MulMod returns a*b mod q for reduced operands.
func MulMod(a, b, q uint64) uint64 { return modMul(a%q, b%q, q) }

// AddMod returns a+b mod q without overflowing for q up to 2^64-1.
func AddMod(a, b, q uint64) uint64 { return modAdd(a%q, b%q, q) }

// SubMod returns a-b mod q.
func SubMod(a, b, q uint64) uint64 { return modSub(a%q, b%q, q) }
