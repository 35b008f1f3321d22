// Package outassemble builds the final output rows from verified pairs
// and missing-value pairs, in the fixed column order `_id, l_<key>,
// r_<key>, l_<out_attrs…>, r_<out_attrs…>, [_sim_score]`.
package outassemble

import (
	"github.com/fulmenhq/simjoin/internal/candidate"
	"github.com/fulmenhq/simjoin/internal/missingpairs"
	"github.com/fulmenhq/simjoin/table"
)

// Options configures column naming and whether the score column is
// included — the output-facing subset of simjoin.Options.
type Options struct {
	LKeyAttr, RKeyAttr string
	LOutAttrs          []string
	ROutAttrs          []string
	LPrefix, RPrefix   string // defaults "l_", "r_"
	IncludeScore       bool
}

// Result is the assembled output: a fixed column order and one row per
// emitted pair, in whatever order the driver/missing-pairs collaborator
// produced them. Callers must not rely on row order.
type Result struct {
	Columns []string
	Rows    []map[string]table.Value
}

// Assemble builds Result from the verified candidate pairs (indexed
// into the filtered, non-missing row slices via leftOrigIdx/
// rightOrigIdx) and the missing-value pairs (indexed directly into the
// original tables).
func Assemble(
	left, right *table.Table,
	leftOrigIdx, rightOrigIdx []int32,
	pairs []candidate.Pair,
	missing []missingpairs.Pair,
	opts Options,
) Result {
	lPrefix, rPrefix := opts.LPrefix, opts.RPrefix
	if lPrefix == "" {
		lPrefix = "l_"
	}
	if rPrefix == "" {
		rPrefix = "r_"
	}

	columns := []string{"_id", lPrefix + opts.LKeyAttr, rPrefix + opts.RKeyAttr}
	for _, a := range opts.LOutAttrs {
		columns = append(columns, lPrefix+a)
	}
	for _, a := range opts.ROutAttrs {
		columns = append(columns, rPrefix+a)
	}
	if opts.IncludeScore {
		columns = append(columns, "_sim_score")
	}

	rows := make([]map[string]table.Value, 0, len(pairs)+len(missing))
	var nextID int64

	addRow := func(lRow, rRow table.Row, score *int) {
		row := make(map[string]table.Value, len(columns))
		row["_id"] = nextID
		nextID++
		row[lPrefix+opts.LKeyAttr] = lRow.Key
		row[rPrefix+opts.RKeyAttr] = rRow.Key
		for _, a := range opts.LOutAttrs {
			row[lPrefix+a] = lRow.OutAttrs[a]
		}
		for _, a := range opts.ROutAttrs {
			row[rPrefix+a] = rRow.OutAttrs[a]
		}
		if opts.IncludeScore {
			if score != nil {
				row["_sim_score"] = *score
			} else {
				row["_sim_score"] = nil
			}
		}
		rows = append(rows, row)
	}

	for _, p := range pairs {
		lRow := left.Rows[leftOrigIdx[p.Left]]
		rRow := right.Rows[rightOrigIdx[p.Right]]
		d := p.Distance
		addRow(lRow, rRow, &d)
	}
	for _, p := range missing {
		lRow := left.Rows[p.Left]
		rRow := right.Rows[p.Right]
		addRow(lRow, rRow, nil)
	}

	return Result{Columns: columns, Rows: rows}
}
