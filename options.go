// Package simjoin implements the edit-distance similarity-join engine:
// given two tables with a key column and a string-valued join column,
// Join returns every row pair (l, r) whose join strings satisfy
// edit_distance(l, r) op tau, using prefix filtering over a q-gram
// inverted index to avoid the full cross product.
package simjoin

import (
	"github.com/fulmenhq/simjoin/internal/obslog"
	"github.com/fulmenhq/simjoin/internal/qgram"
)

// Options carries every parameter for one Join call.
type Options struct {
	LKeyAttr, RKeyAttr   string // identifies the key column in each table
	LJoinAttr, RJoinAttr string // identifies the join column; not read by Join, which uses each row's Join value

	Threshold float64 // edit-distance bound; floored to a non-negative integer
	CompOp    string  // "<=", "<", or "=" ; default "<="

	AllowMissing bool // concatenate missing-value pairs via internal/missingpairs

	LOutAttrs, ROutAttrs []string // additional columns to project into the output
	LOutPrefix           string   // default "l_"
	ROutPrefix           string   // default "r_"

	OutSimScore bool // append "_sim_score" holding the integer edit distance

	NJobs int // desired parallelism; see internal/driver.ResolveNJobs

	Tokenizer qgram.Tokenizer // must be a q-gram tokenizer; ReturnSet is forced off for the join's duration

	// Logger receives structured debug/info events for this call
	// (validation failure, partition start/done, candidate counts, run
	// summary). Nil disables logging.
	Logger *obslog.Logger
}
