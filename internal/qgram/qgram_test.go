package qgram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeMultiset(t *testing.T) {
	tok := New(2, false)
	grams := tok.Tokenize([]byte("abcd"))
	want := []string{"ab", "bc", "cd"}
	require.Len(t, grams, len(want))
	for i, w := range want {
		assert.Equal(t, w, string(grams[i]))
	}
}

func TestTokenizeShorterThanQ(t *testing.T) {
	tok := New(3, false)
	assert.Nil(t, tok.Tokenize([]byte("ab")))
}

func TestTokenizeSetDedups(t *testing.T) {
	tok := New(1, true)
	grams := tok.Tokenize([]byte("aab"))
	var got []string
	for _, g := range grams {
		got = append(got, string(g))
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestForceMultisetRestoresOnPanic(t *testing.T) {
	tok := New(2, false)
	tok.SetReturnSet(true)

	func() {
		defer func() { _ = recover() }()
		_ = ForceMultiset(tok, func() error {
			panic("boom")
		})
	}()

	assert.True(t, tok.ReturnSet())
}

func TestForceMultisetRestoresPriorValue(t *testing.T) {
	tok := New(2, false)
	tok.SetReturnSet(true)

	err := ForceMultiset(tok, func() error {
		assert.False(t, tok.ReturnSet())
		return nil
	})
	require.NoError(t, err)
	assert.True(t, tok.ReturnSet())
}
