package tokenvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/simjoin/internal/ordering"
	"github.com/fulmenhq/simjoin/internal/qgram"
)

func TestPrefixLen(t *testing.T) {
	assert.Equal(t, 3, PrefixLen(2, 1, 10)) // q*tau+1 = 3, m=10
	assert.Equal(t, 2, PrefixLen(2, 5, 2))  // m smaller than q*tau+1
}

func TestBuildSortsAscendingWithDuplicates(t *testing.T) {
	tok := qgram.New(2, false)
	left := [][][]byte{SetOf([]byte("banana"), tok)}
	ord := ordering.Build(left, nil)

	vec := Build([]byte("banana"), tok, ord)
	require.NotEmpty(t, vec)
	for i := 1; i < len(vec); i++ {
		assert.LessOrEqual(t, vec[i-1], vec[i])
	}

	// "banana" -> ba an na an na => "an" and "na" repeat; multiset keeps
	// duplicates, so the vector should have more entries than the
	// distinct-gram set.
	set := SetOf([]byte("banana"), tok)
	assert.Greater(t, len(vec), len(set))
}

func TestSetOfDedupsWithoutMutatingTokenizerState(t *testing.T) {
	tok := qgram.New(1, false)
	before := tok.ReturnSet()
	set := SetOf([]byte("aab"), tok)
	assert.Len(t, set, 2) // "a", "a", "b" collapses to "a", "b"
	assert.Equal(t, before, tok.ReturnSet())
}
