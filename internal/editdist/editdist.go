// Package editdist implements a bounded Levenshtein distance: classical
// DP on a rolling two-row buffer, with early termination once the best
// achievable distance within the row's tau-window already exceeds tau.
package editdist

// Bounded returns the Levenshtein distance between a and b when that
// distance is <= tau, and otherwise returns some value > tau — callers
// must only test the result against tau, never treat it as an exact
// distance once it exceeds tau.
func Bounded(a, b []byte, tau int) int {
	if tau < 0 {
		tau = 0
	}

	la, lb := len(a), len(b)
	if abs(la-lb) > tau {
		return tau + 1
	}
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			sub := prev[j-1] + cost
			del := prev[j] + 1
			ins := curr[j-1] + 1
			curr[j] = min3(sub, del, ins)
		}

		lo := i - tau
		if lo < 0 {
			lo = 0
		}
		hi := i + tau
		if hi > lb {
			hi = lb
		}
		rowMin := curr[lo]
		for j := lo + 1; j <= hi; j++ {
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > tau {
			return tau + 1
		}

		prev, curr = curr, prev
	}

	return prev[lb]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
