// Package table provides the in-memory model for bundle CSV files and a
// BOM-safe reader that trims header and cell whitespace.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Row is a single data row. Values maps column name to the trimmed cell
// value; an empty string means the cell is missing. Line is the 1-based
// line number of the row in the source file (the header is line 1).
type Row struct {
	Line   int
	Values map[string]string
}

// CellRef identifies a single cell by file line and column name.
type CellRef struct {
	Line   int
	Column string
}

// Table is one CSV file read fully into memory. It is not mutated after
// Read returns.
type Table struct {
	Name    string
	Path    string
	Columns []string
	Rows    []Row

	// Untrimmed lists cells whose raw value carried leading or trailing
	// whitespace. The trimmed value is what ends up in Row.Values.
	Untrimmed []CellRef
}

// ParseError reports malformed CSV content in a single file. It is fatal
// for that file only; other files in the bundle still validate.
type ParseError struct {
	Path  string
	Line  int
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s line %d: %v", e.Path, e.Line, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Read loads a CSV file into a Table. The first record is the header.
// A UTF-8 BOM on the first header cell is stripped, and all header names
// and cell values are whitespace-trimmed. Short rows are padded with empty
// strings; cells beyond the header width are dropped. Malformed CSV
// content is returned as a *ParseError carrying the offending line.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	t := &Table{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil // empty file, no header
		}
		return nil, asParseError(path, err)
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.TrimSpace(h)
	}
	t.Columns = header

	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, asParseError(path, err)
		}

		line, _ := r.FieldPos(0)
		row := Row{Line: line, Values: make(map[string]string, len(header))}
		for i, col := range header {
			if i < len(record) {
				raw := record[i]
				trimmed := strings.TrimSpace(raw)
				if trimmed != raw {
					t.Untrimmed = append(t.Untrimmed, CellRef{Line: line, Column: col})
				}
				row.Values[col] = trimmed
			} else {
				row.Values[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// HasColumn reports whether name appears in the table header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns every value of the named column in row order. Missing
// column yields nil.
func (t *Table) Column(name string) []string {
	if !t.HasColumn(name) {
		return nil
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row.Values[name])
	}
	return values
}

// KeySet returns the set of non-empty values in the named column,
// typically used to resolve foreign-key references.
func (t *Table) KeySet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, row := range t.Rows {
		if v := row.Values[name]; v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func asParseError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Path: path, Line: perr.Line, Cause: perr.Err}
	}
	return &ParseError{Path: path, Cause: err}
}
