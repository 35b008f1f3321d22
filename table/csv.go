package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fulmenhq/simjoin/internal/joinerr"
)

// LoadCSV reads a CSV file with a header row into a Table. keyCol and
// joinCol name the header columns to use as Key and Join; outCols names
// the additional columns to carry as OutAttrs. An empty cell in joinCol
// is treated as a missing join attribute.
//
// This is a convenience loader for cmd/simjoin-demo, not part of the
// core join engine.
func LoadCSV(path, keyCol, joinCol string, outCols []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("table: read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	keyIdx, ok := index[keyCol]
	if !ok {
		return nil, joinerr.New(joinerr.UnknownAttribute, "", "%s: unknown key column %q", path, keyCol)
	}
	joinIdx, ok := index[joinCol]
	if !ok {
		return nil, joinerr.New(joinerr.UnknownAttribute, "", "%s: unknown join column %q", path, joinCol)
	}
	outIdx := make([]int, 0, len(outCols))
	for _, c := range outCols {
		idx, ok := index[c]
		if !ok {
			return nil, joinerr.New(joinerr.UnknownAttribute, "", "%s: unknown output attribute column %q", path, c)
		}
		outIdx = append(outIdx, idx)
	}

	t := &Table{KeyAttr: keyCol, JoinAttr: joinCol}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: read row of %s: %w", path, err)
		}

		row := Row{Key: rec[keyIdx], OutAttrs: make(map[string]Value, len(outCols))}
		if rec[joinIdx] != "" {
			v := rec[joinIdx]
			row.Join = &v
		}
		for i, c := range outCols {
			row.OutAttrs[c] = rec[outIdx[i]]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
