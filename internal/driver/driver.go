// Package driver implements the parallel partition driver: partition
// the right-row index range into N contiguous chunks, run one task per
// chunk against the shared immutable index and token vectors, and
// concatenate the per-task output buffers in partition order.
//
// The fan-out shape is a WaitGroup over per-partition goroutines, each
// writing into a buffer it alone owns, so the merge step needs no
// locking.
package driver

import (
	"runtime"
	"sync"

	"github.com/fulmenhq/simjoin/internal/candidate"
	"github.com/fulmenhq/simjoin/internal/compop"
	"github.com/fulmenhq/simjoin/internal/invindex"
	"github.com/fulmenhq/simjoin/internal/jointelemetry"
	"github.com/fulmenhq/simjoin/internal/obslog"
	"go.uber.org/zap"
)

// Input bundles everything a partition task needs to read. All fields
// are immutable for the driver's lifetime and are read concurrently by
// every task without locking.
type Input struct {
	Index        *invindex.Index
	LeftBytes    [][]byte
	RightVectors [][]int32
	RightBytes   [][]byte
	Q, Tau       int
	Op           compop.Op
	NJobs        int // resolved parallelism; Run uses 1 below 1 and at most len(RightVectors) partitions
	Telemetry    *jointelemetry.Sink
	Logger       *obslog.Logger // nil disables logging
}

// ResolveNJobs implements the n_jobs convention: 1 means sequential,
// -1 means all CPUs, -k means CPUs+1-k, and anything that resolves
// below 1 falls back to sequential.
func ResolveNJobs(nJobs int) int {
	var resolved int
	switch {
	case nJobs > 0:
		resolved = nJobs // 1 is the sequential case, handled naturally
	case nJobs < 0:
		resolved = runtime.NumCPU() + 1 + nJobs // -1 -> all CPUs, -k -> CPUs+1-k
	default:
		resolved = 0 // n_jobs=0 names no parallelism request; fall back below
	}
	if resolved < 1 {
		resolved = 1
	}
	return resolved
}

// partitionBounds splits [0, n) into count contiguous, near-equal
// ranges.
func partitionBounds(n, count int) [][2]int {
	if count > n {
		count = n
	}
	if count < 1 {
		count = 1
	}
	bounds := make([][2]int, 0, count)
	base := n / count
	rem := n % count
	start := 0
	for i := 0; i < count; i++ {
		size := base
		if i < rem {
			size++
		}
		end := start + size
		bounds = append(bounds, [2]int{start, end})
		start = end
	}
	return bounds
}

// Run executes the parallel driver and returns the concatenated result
// in partition order. Within a partition, pairs are emitted in
// ascending right-row order, then by the candidate set's (unordered)
// iteration order — callers must not rely on any ordering stronger
// than that.
func Run(in Input) []candidate.Pair {
	n := len(in.RightVectors)
	if n == 0 {
		return nil
	}

	logger := in.Logger
	if logger == nil {
		logger = obslog.Noop()
	}

	nJobs := in.NJobs
	if nJobs < 1 {
		nJobs = 1
	}
	bounds := partitionBounds(n, nJobs)

	buffers := make([][]candidate.Pair, len(bounds))
	var wg sync.WaitGroup
	for p, b := range bounds {
		wg.Add(1)
		go func(p int, lo, hi int) {
			defer wg.Done()
			logger.Debug("partition start", zap.Int("partition", p), zap.Int("lo", lo), zap.Int("hi", hi))
			enum := candidate.New(in.Index, in.LeftBytes, in.Q, in.Tau, in.Op, in.Telemetry, logger)
			var out []candidate.Pair
			for r := lo; r < hi; r++ {
				out = enum.ForRightRow(int32(r), in.RightVectors[r], in.RightBytes[r], out)
			}
			buffers[p] = out
			logger.Debug("partition done", zap.Int("partition", p), zap.Int("pairs", len(out)))
		}(p, b[0], b[1])
	}
	wg.Wait()

	total := 0
	for _, buf := range buffers {
		total += len(buf)
	}
	result := make([]candidate.Pair, 0, total)
	for _, buf := range buffers {
		result = append(result, buf...)
	}
	return result
}
