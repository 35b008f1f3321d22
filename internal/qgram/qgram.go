// Package qgram implements a fixed-length q-gram tokenizer that can be
// toggled between multiset and set output, behind an interface so
// callers can supply their own tokenizer instead.
package qgram

import (
	"golang.org/x/text/unicode/norm"
)

// Tokenizer is the capability set a join tokenizer must provide: qval,
// tokenize, and a return-set flag the engine forces off for the
// duration of a join and restores afterward.
type Tokenizer interface {
	QVal() int
	Tokenize(s []byte) [][]byte
	ReturnSet() bool
	SetReturnSet(bool)
}

// QGram is the engine's built-in tokenizer: fixed-length byte q-grams
// in order of occurrence, with an optional Unicode NFC normalization
// pre-pass so that visually identical strings in different
// normalization forms tokenize identically.
type QGram struct {
	q                int
	returnSet        bool
	normalizeUnicode bool
}

// New creates a q-gram tokenizer for q-grams of length q (q must be
// positive; q<=0 is rejected by internal/validate before this type is
// ever used).
func New(q int, normalizeUnicode bool) *QGram {
	return &QGram{q: q, normalizeUnicode: normalizeUnicode}
}

func (t *QGram) QVal() int { return t.q }

func (t *QGram) ReturnSet() bool     { return t.returnSet }
func (t *QGram) SetReturnSet(v bool) { t.returnSet = v }

// Tokenize returns the q-grams of s in order of occurrence. When
// ReturnSet is true, duplicate q-grams are collapsed, keeping the first
// occurrence's position in the ordering. The join itself always forces
// ReturnSet off (token vectors are multisets), but the flag is still
// meaningful for other, non-join uses of this tokenizer such as
// document-frequency counting.
func (t *QGram) Tokenize(s []byte) [][]byte {
	if t.normalizeUnicode {
		s = []byte(norm.NFC.String(string(s)))
	}
	q := t.q
	if len(s) < q {
		return nil
	}

	grams := make([][]byte, 0, len(s)-q+1)
	for i := 0; i+q <= len(s); i++ {
		grams = append(grams, s[i:i+q])
	}

	if !t.returnSet {
		return grams
	}

	seen := make(map[string]struct{}, len(grams))
	set := grams[:0:0]
	for _, g := range grams {
		k := string(g)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		set = append(set, g)
	}
	return set
}

// ForceMultiset toggles tok's ReturnSet off for the duration of fn and
// restores its prior value on every exit path, including panics.
func ForceMultiset(tok Tokenizer, fn func() error) error {
	prev := tok.ReturnSet()
	tok.SetReturnSet(false)
	defer tok.SetReturnSet(prev)
	return fn()
}
