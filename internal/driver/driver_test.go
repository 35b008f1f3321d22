package driver

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/simjoin/internal/candidate"
	"github.com/fulmenhq/simjoin/internal/compop"
	"github.com/fulmenhq/simjoin/internal/invindex"
	"github.com/fulmenhq/simjoin/internal/ordering"
	"github.com/fulmenhq/simjoin/internal/qgram"
	"github.com/fulmenhq/simjoin/internal/tokenvec"
)

func TestResolveNJobs(t *testing.T) {
	assert.Equal(t, 1, ResolveNJobs(1))
	assert.Equal(t, 1, ResolveNJobs(0)) // unrecognized bucket falls back to sequential
	assert.GreaterOrEqual(t, ResolveNJobs(-1), 1)
	assert.Equal(t, 4, ResolveNJobs(4))
}

func TestPartitionBoundsCoverRangeExactly(t *testing.T) {
	for _, tc := range []struct{ n, count int }{
		{10, 3}, {7, 7}, {1, 4}, {0, 3}, {100, 1},
	} {
		bounds := partitionBounds(tc.n, tc.count)
		total := 0
		prevEnd := 0
		for _, b := range bounds {
			assert.Equal(t, prevEnd, b[0])
			total += b[1] - b[0]
			prevEnd = b[1]
		}
		assert.Equal(t, tc.n, total)
	}
}

func buildInput(t *testing.T, leftStrs, rightStrs []string, q, tau int) Input {
	t.Helper()
	tok := qgram.New(q, false)

	leftSets := make([][][]byte, len(leftStrs))
	for i, s := range leftStrs {
		leftSets[i] = tokenvec.SetOf([]byte(s), tok)
	}
	rightSets := make([][][]byte, len(rightStrs))
	for i, s := range rightStrs {
		rightSets[i] = tokenvec.SetOf([]byte(s), tok)
	}
	ord := ordering.Build(leftSets, rightSets)

	leftVectors := make([][]int32, len(leftStrs))
	leftBytes := make([][]byte, len(leftStrs))
	for i, s := range leftStrs {
		leftVectors[i] = tokenvec.Build([]byte(s), tok, ord)
		leftBytes[i] = []byte(s)
	}
	rightVectors := make([][]int32, len(rightStrs))
	rightBytes := make([][]byte, len(rightStrs))
	for i, s := range rightStrs {
		rightVectors[i] = tokenvec.Build([]byte(s), tok, ord)
		rightBytes[i] = []byte(s)
	}

	return Input{
		Index:        invindex.Build(leftVectors, q, tau),
		LeftBytes:    leftBytes,
		RightVectors: rightVectors,
		RightBytes:   rightBytes,
		Q:            q,
		Tau:          tau,
		Op:           compop.LE,
	}
}

func sortPairs(p []candidate.Pair) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Left != p[j].Left {
			return p[i].Left < p[j].Left
		}
		return p[i].Right < p[j].Right
	})
}

func TestOutputCountIndependentOfNJobs(t *testing.T) {
	left := []string{"kitten", "sitting", "bitten", "mitten", "written"}
	right := []string{"kitten", "fitting", "bitter", "mitts", "writer"}
	in := buildInput(t, left, right, 2, 2)

	var baseline []candidate.Pair
	for _, nJobs := range []int{1, 2, 3, 8} {
		in.NJobs = nJobs
		got := Run(in)
		sortPairs(got)
		if baseline == nil {
			baseline = got
		} else {
			require.Equal(t, baseline, got, "n_jobs=%d should not change the result set", nJobs)
		}
	}
}

func TestRunEmptyRightSide(t *testing.T) {
	in := buildInput(t, []string{"cat"}, nil, 2, 1)
	in.NJobs = 4
	assert.Empty(t, Run(in))
}
