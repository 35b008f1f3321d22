// Package ordering computes a global q-gram ordering: a dense,
// deterministic id assignment where low document frequency gets a low
// id, so that prefixes (the first p ids of a row's sorted token vector)
// concentrate the rarest — and therefore most selective — tokens.
//
// Token ids are interned through a hash table keyed by
// github.com/zeebo/xxh3 digests rather than Go's built-in string map,
// for faster hashing of byte content on this hot path; collisions are
// resolved by a byte-equality check against the stored gram, so
// interning stays correct regardless of hash collisions.
package ordering

import (
	"sort"

	"github.com/zeebo/xxh3"
)

// Ordering is the frozen result of Build: a dense id for every distinct
// q-gram observed across both input tables, assigned so that ascending
// id implies ascending (df, then lexicographic) order.
type Ordering struct {
	grams [][]byte       // id -> gram bytes, for diagnostics/tests
	table map[uint64][]internedGram
}

type internedGram struct {
	bytes []byte
	id    int32
}

// V reports the total distinct q-gram count across both tables.
func (o *Ordering) V() int { return len(o.grams) }

// ID returns the dense id for gram, and whether it was observed during
// Build. A gram that appears in neither table (impossible for grams
// drawn from the same tokenizer used to build the ordering, but
// possible if a caller mixes tokenizer configurations) returns false.
func (o *Ordering) ID(gram []byte) (int32, bool) {
	h := xxh3.Hash(gram)
	for _, e := range o.table[h] {
		if string(e.bytes) == string(gram) {
			return e.id, true
		}
	}
	return 0, false
}

// Gram returns the bytes for id, for diagnostics and tests.
func (o *Ordering) Gram(id int32) []byte { return o.grams[id] }

type dfEntry struct {
	gram []byte
	df   int
}

// Build computes the ordering from the per-row q-gram sets of both
// tables. leftSets and rightSets each hold one []byte-gram set per row
// (duplicates within a row must already be collapsed by the caller —
// document frequency counts a row once per gram it contains, not once
// per occurrence).
func Build(leftSets, rightSets [][][]byte) *Ordering {
	df := make(map[uint64][]*dfEntry)

	bump := func(sets [][][]byte) {
		for _, rowGrams := range sets {
			for _, g := range rowGrams {
				h := xxh3.Hash(g)
				bucket := df[h]
				found := false
				for _, e := range bucket {
					if string(e.gram) == string(g) {
						e.df++
						found = true
						break
					}
				}
				if !found {
					gc := append([]byte(nil), g...)
					df[h] = append(bucket, &dfEntry{gram: gc, df: 1})
				}
			}
		}
	}
	bump(leftSets)
	bump(rightSets)

	flat := make([]*dfEntry, 0)
	for _, bucket := range df {
		flat = append(flat, bucket...)
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].df != flat[j].df {
			return flat[i].df < flat[j].df
		}
		return string(flat[i].gram) < string(flat[j].gram)
	})

	o := &Ordering{
		grams: make([][]byte, len(flat)),
		table: make(map[uint64][]internedGram, len(flat)),
	}
	for id, e := range flat {
		o.grams[id] = e.gram
		h := xxh3.Hash(e.gram)
		o.table[h] = append(o.table[h], internedGram{bytes: e.gram, id: int32(id)})
	}
	return o
}
