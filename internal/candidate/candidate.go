// Package candidate implements the per-right-row candidate enumerator:
// union the left posting lists under the right row's prefix tokens into
// a candidate set, apply the length filter, verify with the bounded
// edit-distance kernel, and emit pairs satisfying the comparison
// predicate.
//
// The posting-list union has no ranking step, only a boolean
// prefix-overlap necessary condition — every left row posted under any
// of the right row's prefix tokens is a candidate, with no scoring or
// top-k truncation.
package candidate

import (
	"github.com/fulmenhq/simjoin/internal/compop"
	"github.com/fulmenhq/simjoin/internal/editdist"
	"github.com/fulmenhq/simjoin/internal/invindex"
	"github.com/fulmenhq/simjoin/internal/jointelemetry"
	"github.com/fulmenhq/simjoin/internal/obslog"
	"github.com/fulmenhq/simjoin/internal/tokenvec"
	"go.uber.org/zap"
)

// Pair is one verified output of the enumerator: left and right row
// ids (indexes into the filtered left/right row slices the orchestrator
// built) and the verified edit distance.
type Pair struct {
	Left     int32
	Right    int32
	Distance int
}

// Set is the per-task candidate container, reused across right rows
// within one partition: cleared and refilled rather than reallocated,
// so the partition's steady-state allocation stays flat regardless of
// how many right rows it processes.
type Set struct {
	members map[int32]struct{}
}

// NewSet returns an empty, reusable candidate set.
func NewSet() *Set {
	return &Set{members: make(map[int32]struct{})}
}

func (s *Set) add(id int32) { s.members[id] = struct{}{} }

func (s *Set) reset() {
	for k := range s.members {
		delete(s.members, k)
	}
}

// Enumerator holds the per-task scratch state the candidate pipeline
// needs: the reusable set and nothing else. The edit-distance kernel
// allocates its own DP buffers per call, so an Enumerator is safe to
// use from exactly one goroutine at a time but needs no further
// synchronization beyond that.
type Enumerator struct {
	idx       *invindex.Index
	q, tau    int
	op        compop.Op
	leftBytes [][]byte
	set       *Set
	telemetry *jointelemetry.Sink
	logger    *obslog.Logger
}

// New builds an Enumerator bound to idx and leftBytes (left join
// strings indexed by left row id, parallel to the vectors idx was
// built from). A nil logger disables debug logging.
func New(idx *invindex.Index, leftBytes [][]byte, q, tau int, op compop.Op, telemetry *jointelemetry.Sink, logger *obslog.Logger) *Enumerator {
	if logger == nil {
		logger = obslog.Noop()
	}
	return &Enumerator{
		idx:       idx,
		q:         q,
		tau:       tau,
		op:        op,
		leftBytes: leftBytes,
		set:       NewSet(),
		telemetry: telemetry,
		logger:    logger,
	}
}

// ForRightRow enumerates and verifies candidates for one right row,
// appending accepted pairs to out and returning the extended slice.
// rightID identifies the right row in the output; rightVec is its
// ordered token vector; rightBytes is its join string.
func (e *Enumerator) ForRightRow(rightID int32, rightVec []int32, rightBytes []byte, out []Pair) []Pair {
	e.set.reset()

	m := len(rightVec)
	p := tokenvec.PrefixLen(e.q, e.tau, m)
	for j := 0; j < p; j++ {
		for _, leftID := range e.idx.Lookup(rightVec[j]) {
			e.set.add(leftID)
		}
	}

	var generated, lengthOK, emitted int64
	for leftID := range e.set.members {
		generated++
		mLeft := int(e.idx.SizeOf(leftID))
		// Token-count difference bound: a necessary (not sufficient)
		// condition for edit distance <= tau, cheap to check before
		// running the DP kernel.
		if mLeft < m-e.tau || mLeft > m+e.tau {
			continue
		}
		lengthOK++

		d := editdist.Bounded(e.leftBytes[leftID], rightBytes, e.tau)
		if !e.op.Satisfies(d, e.tau) {
			continue
		}
		out = append(out, Pair{Left: leftID, Right: rightID, Distance: d})
		emitted++
	}

	e.telemetry.AddCandidatesGenerated(generated)
	e.telemetry.AddCandidatesLengthOK(lengthOK)
	e.telemetry.AddPairsEmitted(emitted)

	e.logger.Debug("candidate counts",
		zap.Int32("right_row", rightID),
		zap.Int64("generated", generated),
		zap.Int64("length_ok", lengthOK),
		zap.Int64("emitted", emitted),
	)

	return out
}
