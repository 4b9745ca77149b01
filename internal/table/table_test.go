package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead_Basic(t *testing.T) {
	path := writeCSV(t, "id,name\nA-001,alpha\nA-002,beta\n")

	tbl, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "test", tbl.Name)
	assert.Equal(t, []string{"id", "name"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "alpha", tbl.Rows[0].Values["name"])
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, 3, tbl.Rows[1].Line)
}

func TestRead_StripsBOMAndTrims(t *testing.T) {
	path := writeCSV(t, "\ufeffid , name\nA-001, alpha \n")

	tbl, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, tbl.Columns)
	assert.Equal(t, "alpha", tbl.Rows[0].Values["name"])
	// The raw cell carried whitespace, so it is flagged for hygiene.
	require.Len(t, tbl.Untrimmed, 1)
	assert.Equal(t, CellRef{Line: 2, Column: "name"}, tbl.Untrimmed[0])
}

func TestRead_PadsShortRows(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n")

	tbl, err := Read(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "", tbl.Rows[0].Values["c"])
}

func TestRead_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	tbl, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestRead_MalformedQuoting(t *testing.T) {
	path := writeCSV(t, "a,b\nok,fine\n\"broken,row\n")

	_, err := Read(path)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Greater(t, perr.Line, 1)
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	// A missing file is an I/O failure, not malformed content.
	var perr *ParseError
	assert.False(t, errors.As(err, &perr))
}

func TestColumnAndKeySet(t *testing.T) {
	path := writeCSV(t, "id,ref\nA-001,S1\nA-002,\nA-003,S2\n")

	tbl, err := Read(path)
	require.NoError(t, err)

	assert.True(t, tbl.HasColumn("ref"))
	assert.False(t, tbl.HasColumn("nope"))
	assert.Nil(t, tbl.Column("nope"))
	assert.Equal(t, []string{"S1", "", "S2"}, tbl.Column("ref"))

	keys := tbl.KeySet("ref")
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "S1")
	assert.Contains(t, keys, "S2")
}

func TestRead_QuotedMultilineField(t *testing.T) {
	path := writeCSV(t, "id,note\nA-001,\"line one\nline two\"\nA-002,plain\n")

	tbl, err := Read(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	// The second record starts after the multi-line field.
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, 4, tbl.Rows[1].Line)
}
