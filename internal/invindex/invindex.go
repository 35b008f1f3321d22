// Package invindex builds and serves a q-gram prefix inverted index:
// for each left row, its first p(m) ordered tokens are posted into
// I[token] -> []rowID, and size_vector[rowID] records the row's full
// token-vector length for the length filter.
//
// Building is single-threaded; the resulting Index is immutable and
// safe for concurrent lookups from any number of readers once built.
package invindex

import "github.com/fulmenhq/simjoin/internal/tokenvec"

// Index is the frozen prefix inverted index plus the left size vector.
type Index struct {
	postings   map[int32][]int32
	sizeVector []int32
}

// Build constructs the index over leftVectors (one ordered token vector
// per left row, indexed by row id) for q-grams of length q and
// threshold tau.
func Build(leftVectors [][]int32, q, tau int) *Index {
	idx := &Index{
		postings:   make(map[int32][]int32),
		sizeVector: make([]int32, len(leftVectors)),
	}

	seen := make(map[int32]struct{})
	for rowID, vec := range leftVectors {
		m := len(vec)
		idx.sizeVector[rowID] = int32(m)

		p := tokenvec.PrefixLen(q, tau, m)
		for k := range seen {
			delete(seen, k)
		}
		for j := 0; j < p; j++ {
			tok := vec[j]
			if _, dup := seen[tok]; dup {
				continue // a token repeated within one row's prefix posts only once
			}
			seen[tok] = struct{}{}
			idx.postings[tok] = append(idx.postings[tok], int32(rowID))
		}
	}

	return idx
}

// Lookup returns the posting list for a token, or nil if the token has
// no left-side prefix occurrence. The returned slice must not be
// mutated by callers — it is shared across every concurrent reader.
func (idx *Index) Lookup(token int32) []int32 {
	return idx.postings[token]
}

// SizeOf returns the left row's full ordered-token-vector length, for
// the length filter.
func (idx *Index) SizeOf(rowID int32) int32 {
	return idx.sizeVector[rowID]
}

// NumLeftRows reports the number of left rows the index was built
// over.
func (idx *Index) NumLeftRows() int {
	return len(idx.sizeVector)
}
