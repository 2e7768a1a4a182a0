// Package partition generates integer partitions over a pool of part sizes
// lazily. The yielded slice is owned by the caller.
package partition

import "iter"

// PartPool yields the ways of writing n as a sum of entries of pool, where each
// entry may be used any number of times. A way is reported as the non-decreasing
// list of pool indices used, so pool entries of equal value stay distinguishable.
// Every pool entry must be positive.
func PartPool(n int, pool []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n < 0 {
			return
		}
		for _, w := range pool {
			if w <= 0 {
				panic("partition: pool entries must be positive")
			}
		}
		partPool(n, pool, 0, nil, yield)
	}
}

func partPool(n int, pool []int, start int, prefix []int, yield func([]int) bool) bool {
	if n == 0 {
		return yield(append([]int(nil), prefix...))
	}
	for i := start; i < len(pool); i++ {
		if pool[i] > n {
			continue
		}
		if !partPool(n-pool[i], pool, i, append(prefix, i), yield) {
			return false
		}
	}
	return true
}
