// Package jointelemetry provides counter-only telemetry for the join
// engine's hot loop: counters only, no histograms and no tracing inside
// the candidate-enumeration hot path, and a nil sink is a silent no-op
// so the engine never pays for telemetry it wasn't asked to emit.
package jointelemetry

import "sync/atomic"

// Counters accumulates join-run statistics. All fields are updated with
// atomic adds since the driver increments them from multiple partition
// goroutines concurrently.
type Counters struct {
	CandidatesGenerated int64 // total candidate ids produced by prefix lookups
	CandidatesLengthOK  int64 // candidates surviving the length filter
	PairsEmitted        int64 // pairs satisfying the comparison predicate
}

// Sink is what the driver and candidate enumerator emit through. A nil
// *Sink, like the disabled Sink returned by NewDisabled, makes every Add
// method a no-op.
type Sink struct {
	enabled  bool
	counters Counters
}

// NewEnabled returns a Sink that accumulates counters.
func NewEnabled() *Sink { return &Sink{enabled: true} }

// NewDisabled returns a Sink whose methods are no-ops.
func NewDisabled() *Sink { return &Sink{enabled: false} }

func (s *Sink) AddCandidatesGenerated(n int64) {
	if s == nil || !s.enabled {
		return
	}
	atomic.AddInt64(&s.counters.CandidatesGenerated, n)
}

func (s *Sink) AddCandidatesLengthOK(n int64) {
	if s == nil || !s.enabled {
		return
	}
	atomic.AddInt64(&s.counters.CandidatesLengthOK, n)
}

func (s *Sink) AddPairsEmitted(n int64) {
	if s == nil || !s.enabled {
		return
	}
	atomic.AddInt64(&s.counters.PairsEmitted, n)
}

// Snapshot returns the current counter values. Safe to call concurrently
// with the Add* methods, though the three fields may not reflect a
// single consistent instant.
func (s *Sink) Snapshot() Counters {
	if s == nil {
		return Counters{}
	}
	return Counters{
		CandidatesGenerated: atomic.LoadInt64(&s.counters.CandidatesGenerated),
		CandidatesLengthOK:  atomic.LoadInt64(&s.counters.CandidatesLengthOK),
		PairsEmitted:        atomic.LoadInt64(&s.counters.PairsEmitted),
	}
}
