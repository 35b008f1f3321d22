// Package validate checks every precondition a Join call must satisfy
// before the core engine runs; a violation raises the matching
// joinerr.Kind.
package validate

import (
	"math"

	"github.com/fulmenhq/simjoin/internal/compop"
	"github.com/fulmenhq/simjoin/internal/joinerr"
	"github.com/fulmenhq/simjoin/internal/qgram"
	"github.com/fulmenhq/simjoin/table"
)

// Input bundles everything validate.Run needs to check. It mirrors the
// subset of simjoin.Options relevant to validation, kept as its own
// type so this package never imports the root simjoin package (which
// imports validate).
type Input struct {
	Left, Right   *table.Table
	LOutAttrs     []string
	ROutAttrs     []string
	Threshold     float64
	CompOp        string
	Tokenizer     qgram.Tokenizer
	CorrelationID string
}

// Run checks every precondition in order and returns the first
// violation found, wrapped as a *joinerr.Error.
func Run(in Input) error {
	if in.Left == nil || in.Right == nil {
		return joinerr.New(joinerr.InvalidInputTable, in.CorrelationID, "left and right tables must be non-nil")
	}

	if math.IsNaN(in.Threshold) || math.IsInf(in.Threshold, 0) || in.Threshold < 0 {
		return joinerr.New(joinerr.InvalidThreshold, in.CorrelationID, "threshold must be a non-negative finite number, got %v", in.Threshold)
	}

	if _, err := compop.Parse(in.CompOp); err != nil {
		return joinerr.New(joinerr.InvalidComparisonOp, in.CorrelationID, "%s", err.Error())
	}

	if in.Tokenizer == nil || in.Tokenizer.QVal() <= 0 {
		return joinerr.New(joinerr.InvalidTokenizer, in.CorrelationID, "tokenizer must be a q-gram tokenizer with qval > 0")
	}

	if err := checkOutAttrs(in.Left, in.LOutAttrs, "l_out_attrs", in.CorrelationID); err != nil {
		return err
	}
	if err := checkOutAttrs(in.Right, in.ROutAttrs, "r_out_attrs", in.CorrelationID); err != nil {
		return err
	}

	if err := checkKeys(in.Left, "left", in.CorrelationID); err != nil {
		return err
	}
	if err := checkKeys(in.Right, "right", in.CorrelationID); err != nil {
		return err
	}

	return nil
}

func checkOutAttrs(t *table.Table, wanted []string, label, correlationID string) error {
	if len(wanted) == 0 || len(t.Rows) == 0 {
		return nil
	}
	for _, col := range wanted {
		if _, ok := t.Rows[0].OutAttrs[col]; !ok {
			return joinerr.New(joinerr.InvalidOutputAttribute, correlationID, "%s: unknown output attribute %q", label, col)
		}
	}
	return nil
}

func checkKeys(t *table.Table, side, correlationID string) error {
	if err := t.ValidateKeys(); err != nil {
		return joinerr.New(joinerr.NonUniqueOrMissingKey, correlationID, "%s table: %s", side, err.Error())
	}
	return nil
}
