package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
	"github.com/stretchr/testify/require"
)

// makeTable writes content to a temp CSV named name and reads it back.
func makeTable(t *testing.T, name, content string) *table.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	tbl, err := table.Read(path)
	require.NoError(t, err)
	return tbl
}

// makeDict writes content to a temp dictionary CSV and loads it.
func makeDict(t *testing.T, name, content string) *dictionary.Dictionary {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	d, err := dictionary.Load(path)
	require.NoError(t, err)
	return d
}

// writeBundle lays out a bundle under a temp root: keys of files are
// bundle-relative paths like "data/claims.csv". Returns Options pointing
// at the conventional directories.
func writeBundle(t *testing.T, files map[string]string) Options {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return Options{
		DataDir:         filepath.Join(root, "data"),
		DictionariesDir: filepath.Join(root, "dictionaries"),
		ProvenanceDir:   filepath.Join(root, "provenance"),
	}
}

// byRule filters violations by rule name.
func byRule(vs []Violation, rule string) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}
