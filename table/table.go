// Package table defines the minimal tabular row representation the join
// engine operates on. Full tabular I/O, column projection, and output
// dataframe construction are collaborators outside this package's scope;
// this package supplies only the in-memory shape and a CSV convenience
// loader for the demo binary.
package table

import "fmt"

// Value is an opaque cell value: a key, an out-attribute, or a join
// string. nil represents a missing value.
type Value = any

// Row is one row of a table: a key, a join attribute, and any number of
// additional output attributes addressed by column name.
type Row struct {
	Key      Value
	Join     *string // nil when the join attribute is missing
	OutAttrs map[string]Value
}

// Table is an ordered collection of rows together with the name of the
// column that produced Key and the column that produced Join, kept only
// for error messages.
type Table struct {
	KeyAttr  string
	JoinAttr string
	Rows     []Row
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ValidateKeys checks that every row's Key is non-nil and that keys are
// unique within the table.
func (t *Table) ValidateKeys() error {
	seen := make(map[Value]struct{}, len(t.Rows))
	for i, r := range t.Rows {
		if r.Key == nil {
			return fmt.Errorf("table: row %d has a nil key in column %q", i, t.KeyAttr)
		}
		if _, dup := seen[r.Key]; dup {
			return fmt.Errorf("table: duplicate key %v in column %q", r.Key, t.KeyAttr)
		}
		seen[r.Key] = struct{}{}
	}
	return nil
}
