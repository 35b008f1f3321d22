// Package tokenvec builds ordered token vectors: a row's q-grams (as a
// multiset — duplicates retained), mapped through the global ordering,
// and sorted ascending by id.
package tokenvec

import (
	"sort"

	"github.com/fulmenhq/simjoin/internal/ordering"
	"github.com/fulmenhq/simjoin/internal/qgram"
)

// Build returns the ordered token vector for s: the multiset of s's
// q-grams (per tok, which must have ReturnSet()==false — callers use
// qgram.ForceMultiset around a batch of these calls), mapped through
// ord and sorted ascending by id. Grams absent from ord (impossible
// when ord was built from the same set of rows) are skipped.
func Build(s []byte, tok qgram.Tokenizer, ord *ordering.Ordering) []int32 {
	grams := tok.Tokenize(s)
	vec := make([]int32, 0, len(grams))
	for _, g := range grams {
		if id, ok := ord.ID(g); ok {
			vec = append(vec, id)
		}
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i] < vec[j] })
	return vec
}

// PrefixLen computes p(m) = min(q*tau+1, m): the number of leading
// tokens of an m-token vector that must be indexed (or probed) so that
// any pair within edit distance tau that shares at least one q-gram
// also shares at least one prefix token. Pairs that share no q-gram
// never share a prefix token, whatever their edit distance.
func PrefixLen(q, tau, m int) int {
	p := q*tau + 1
	if m < p {
		return m
	}
	return p
}

// SetOf collapses grams into a deduplicated slice, for document
// frequency counting (internal/ordering.Build's input shape) — a row
// contributes a gram to document frequency at most once regardless of
// how many times the gram occurs in that row.
func SetOf(s []byte, tok qgram.Tokenizer) [][]byte {
	wasSet := tok.ReturnSet()
	tok.SetReturnSet(true)
	defer tok.SetReturnSet(wasSet)
	return tok.Tokenize(s)
}
