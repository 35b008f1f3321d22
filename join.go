package simjoin

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/fulmenhq/simjoin/internal/compop"
	"github.com/fulmenhq/simjoin/internal/driver"
	"github.com/fulmenhq/simjoin/internal/invindex"
	"github.com/fulmenhq/simjoin/internal/jointelemetry"
	"github.com/fulmenhq/simjoin/internal/joinerr"
	"github.com/fulmenhq/simjoin/internal/missingpairs"
	"github.com/fulmenhq/simjoin/internal/obslog"
	"github.com/fulmenhq/simjoin/internal/ordering"
	"github.com/fulmenhq/simjoin/internal/outassemble"
	"github.com/fulmenhq/simjoin/internal/qgram"
	"github.com/fulmenhq/simjoin/internal/tokenvec"
	"github.com/fulmenhq/simjoin/internal/validate"
	"github.com/fulmenhq/simjoin/table"
)

// Result is the output of a Join call: a fixed column order and one row
// per emitted pair. Row order is only guaranteed to be ascending
// right-row order within a partition, then partition order across
// partitions — not a total output order.
type Result struct {
	Columns   []string
	Rows      []map[string]table.Value
	Telemetry jointelemetry.Counters
}

// Join computes the similarity join of left and right under opts:
// validate, drop missing-join rows, floor tau, compute the token
// ordering, build vectors and the left inverted index, run the
// parallel driver, assemble output rows, optionally append
// missing-value pairs, and return.
func Join(ctx context.Context, left, right *table.Table, opts Options) (Result, error) {
	correlationID := joinerr.NewCorrelationID()
	baseLogger := opts.Logger
	if baseLogger == nil {
		baseLogger = obslog.Noop()
	}
	logger := baseLogger.WithRunID(correlationID)

	compOp := opts.CompOp
	if compOp == "" {
		compOp = string(compop.LE)
	}

	if err := validate.Run(validate.Input{
		Left: left, Right: right,
		LOutAttrs: opts.LOutAttrs, ROutAttrs: opts.ROutAttrs,
		Threshold: opts.Threshold, CompOp: compOp,
		Tokenizer: opts.Tokenizer, CorrelationID: correlationID,
	}); err != nil {
		logger.Error("join validation failed", zap.Error(err))
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	op, err := compop.Parse(compOp)
	if err != nil {
		// unreachable: validate.Run already checked this, kept for safety
		return Result{}, joinerr.New(joinerr.InvalidComparisonOp, correlationID, "%s", err.Error())
	}
	tau := int(math.Floor(opts.Threshold))

	leftRows, leftOrigIdx := filterJoinable(left)
	rightRows, rightOrigIdx := filterJoinable(right)

	logger.Info("join starting",
		zap.Int("left_rows", len(left.Rows)), zap.Int("right_rows", len(right.Rows)),
		zap.Int("left_joinable", len(leftRows)), zap.Int("right_joinable", len(rightRows)),
		zap.Int("tau", tau), zap.String("comp_op", string(op)))

	tok := opts.Tokenizer
	q := tok.QVal()

	leftBytes := joinBytes(leftRows)
	rightBytes := joinBytes(rightRows)

	var leftVectors, rightVectors [][]int32
	var ord *ordering.Ordering

	if len(leftRows) > 0 || len(rightRows) > 0 {
		err = qgram.ForceMultiset(tok, func() error {
			leftSets := make([][][]byte, len(leftBytes))
			rightSets := make([][][]byte, len(rightBytes))
			for i, s := range leftBytes {
				leftSets[i] = tokenvec.SetOf(s, tok)
			}
			for i, s := range rightBytes {
				rightSets[i] = tokenvec.SetOf(s, tok)
			}
			ord = ordering.Build(leftSets, rightSets)

			leftVectors = make([][]int32, len(leftBytes))
			rightVectors = make([][]int32, len(rightBytes))
			for i, s := range leftBytes {
				leftVectors[i] = tokenvec.Build(s, tok, ord)
			}
			for i, s := range rightBytes {
				rightVectors[i] = tokenvec.Build(s, tok, ord)
			}
			return nil
		})
		if err != nil {
			return Result{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	idx := invindex.Build(leftVectors, q, tau)

	telemetry := jointelemetry.NewEnabled()
	nJobs := driver.ResolveNJobs(opts.NJobs)
	pairs := driver.Run(driver.Input{
		Index: idx, LeftBytes: leftBytes,
		RightVectors: rightVectors, RightBytes: rightBytes,
		Q: q, Tau: tau, Op: op, NJobs: nJobs, Telemetry: telemetry,
		Logger: logger,
	})

	var missing []missingpairs.Pair
	if opts.AllowMissing {
		missing = missingpairs.Enumerate(left, right)
	}

	res := outassemble.Assemble(left, right, leftOrigIdx, rightOrigIdx, pairs, missing, outassemble.Options{
		LKeyAttr: opts.LKeyAttr, RKeyAttr: opts.RKeyAttr,
		LOutAttrs: opts.LOutAttrs, ROutAttrs: opts.ROutAttrs,
		LPrefix: opts.LOutPrefix, RPrefix: opts.ROutPrefix,
		IncludeScore: opts.OutSimScore,
	})

	logger.Info("join complete", zap.Int("output_rows", len(res.Rows)))

	return Result{Columns: res.Columns, Rows: res.Rows, Telemetry: telemetry.Snapshot()}, nil
}

// filterJoinable returns the subset of t's rows with a non-nil join
// value, plus origIdx such that origIdx[i] is that row's index in
// t.Rows — the mapping outassemble needs to recover keys/out-attrs for
// a candidate.Pair, whose Left/Right fields index this filtered slice.
func filterJoinable(t *table.Table) ([]table.Row, []int32) {
	rows := make([]table.Row, 0, len(t.Rows))
	origIdx := make([]int32, 0, len(t.Rows))
	for i, r := range t.Rows {
		if r.Join != nil {
			rows = append(rows, r)
			origIdx = append(origIdx, int32(i))
		}
	}
	return rows, origIdx
}

func joinBytes(rows []table.Row) [][]byte {
	out := make([][]byte, len(rows))
	for i, r := range rows {
		out[i] = []byte(*r.Join)
	}
	return out
}
