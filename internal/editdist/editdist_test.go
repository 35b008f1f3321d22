package editdist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedExact(t *testing.T) {
	cases := []struct {
		a, b string
		tau  int
		want int
	}{
		{"cat", "bat", 1, 1},
		{"abcd", "abce", 1, 1},
		{"kitten", "sitting", 2, 3}, // exceeds tau, only guaranteed > tau
		{"kitten", "sitting", 3, 3},
		{"", "", 0, 0},
		{"", "abc", 5, 3},
		{"abc", "", 5, 3},
		{"same", "same", 0, 0},
	}
	for _, c := range cases {
		got := Bounded([]byte(c.a), []byte(c.b), c.tau)
		if c.want <= c.tau {
			assert.Equalf(t, c.want, got, "Bounded(%q,%q,%d)", c.a, c.b, c.tau)
		} else {
			assert.Greaterf(t, got, c.tau, "Bounded(%q,%q,%d)", c.a, c.b, c.tau)
		}
	}
}

func TestBoundedAbortsAboveTau(t *testing.T) {
	got := Bounded([]byte("kitten"), []byte("sitting"), 1)
	assert.Greater(t, got, 1)
}

func bruteForce(a, b []byte) int {
	la, lb := len(a), len(b)
	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			m := dp[i-1][j] + 1
			if v := dp[i][j-1] + 1; v < m {
				m = v
			}
			if v := dp[i-1][j-1] + cost; v < m {
				m = v
			}
			dp[i][j] = m
		}
	}
	return dp[la][lb]
}

func TestBoundedAgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("abc")
	randStr := func(n int) []byte {
		s := make([]byte, n)
		for i := range s {
			s[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return s
	}

	for trial := 0; trial < 200; trial++ {
		a := randStr(rng.Intn(12))
		b := randStr(rng.Intn(12))
		tau := rng.Intn(6)

		want := bruteForce(a, b)
		got := Bounded(a, b, tau)

		if want <= tau {
			require.Equalf(t, want, got, "a=%q b=%q tau=%d", a, b, tau)
		} else {
			require.Greaterf(t, got, tau, "a=%q b=%q tau=%d", a, b, tau)
		}
	}
}
