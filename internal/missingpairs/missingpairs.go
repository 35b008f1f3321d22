// Package missingpairs enumerates pairs for rows whose join attribute
// is missing on at least one side: when allow_missing is set, this
// cross product is concatenated to the edit-distance join result.
package missingpairs

import "github.com/fulmenhq/simjoin/table"

// Pair is one missing-value output pair: indexes into the original
// (unfiltered) left/right row slices.
type Pair struct {
	Left, Right int
}

// Enumerate returns every (l, r) pair where l.Join is nil or r.Join is
// nil — i.e. the cross product of "left rows with a missing join
// attribute" x "all right rows", plus "all left rows" x "right rows
// with a missing join attribute", deduplicated so a pair where both
// sides are missing is emitted once.
func Enumerate(left, right *table.Table) []Pair {
	var pairs []Pair

	leftMissing := make([]int, 0)
	for i, r := range left.Rows {
		if r.Join == nil {
			leftMissing = append(leftMissing, i)
		}
	}
	rightMissing := make([]int, 0)
	for j, r := range right.Rows {
		if r.Join == nil {
			rightMissing = append(rightMissing, j)
		}
	}

	if len(leftMissing) == 0 && len(rightMissing) == 0 {
		return nil
	}

	for _, i := range leftMissing {
		for j := range right.Rows {
			pairs = append(pairs, Pair{Left: i, Right: j})
		}
	}
	for _, j := range rightMissing {
		for i := range left.Rows {
			if left.Rows[i].Join == nil {
				continue // already covered by the leftMissing x all-right loop above
			}
			pairs = append(pairs, Pair{Left: i, Right: j})
		}
	}

	return pairs
}
