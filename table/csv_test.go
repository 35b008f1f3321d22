package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/simjoin/internal/joinerr"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSVReadsRowsAndOutAttrs(t *testing.T) {
	path := writeCSV(t, "id,name,city\n1,alice,reno\n2,bob,tulsa\n")

	tb, err := LoadCSV(path, "id", "name", []string{"city"})
	require.NoError(t, err)

	require.Equal(t, "id", tb.KeyAttr)
	require.Equal(t, "name", tb.JoinAttr)
	require.Len(t, tb.Rows, 2)

	assert.Equal(t, "1", tb.Rows[0].Key)
	require.NotNil(t, tb.Rows[0].Join)
	assert.Equal(t, "alice", *tb.Rows[0].Join)
	assert.Equal(t, "reno", tb.Rows[0].OutAttrs["city"])

	assert.Equal(t, "2", tb.Rows[1].Key)
	require.NotNil(t, tb.Rows[1].Join)
	assert.Equal(t, "bob", *tb.Rows[1].Join)
}

func TestLoadCSVTreatsEmptyJoinCellAsMissing(t *testing.T) {
	path := writeCSV(t, "id,name\n1,\n2,bob\n")

	tb, err := LoadCSV(path, "id", "name", nil)
	require.NoError(t, err)

	require.Len(t, tb.Rows, 2)
	assert.Nil(t, tb.Rows[0].Join)
	require.NotNil(t, tb.Rows[1].Join)
	assert.Equal(t, "bob", *tb.Rows[1].Join)
}

func TestLoadCSVUnknownKeyColumn(t *testing.T) {
	path := writeCSV(t, "id,name\n1,alice\n")

	_, err := LoadCSV(path, "nope", "name", nil)
	require.Error(t, err)
	jerr, ok := err.(*joinerr.Error)
	require.True(t, ok)
	assert.Equal(t, joinerr.UnknownAttribute, jerr.Kind)
}

func TestLoadCSVUnknownJoinColumn(t *testing.T) {
	path := writeCSV(t, "id,name\n1,alice\n")

	_, err := LoadCSV(path, "id", "nope", nil)
	require.Error(t, err)
	jerr, ok := err.(*joinerr.Error)
	require.True(t, ok)
	assert.Equal(t, joinerr.UnknownAttribute, jerr.Kind)
}

func TestLoadCSVUnknownOutColumn(t *testing.T) {
	path := writeCSV(t, "id,name\n1,alice\n")

	_, err := LoadCSV(path, "id", "name", []string{"nope"})
	require.Error(t, err)
	jerr, ok := err.(*joinerr.Error)
	require.True(t, ok)
	assert.Equal(t, joinerr.UnknownAttribute, jerr.Kind)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), "id", "name", nil)
	assert.Error(t, err)
}
