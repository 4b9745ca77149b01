// Package manifest rebuilds the bundle's file manifest: computed fields
// (size, checksum, CSV row/column counts) are refreshed from disk while
// human-edited fields are preserved.
package manifest

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the canonical manifest column order. Read rejects files
// missing any of these columns.
var Header = []string{
	"path",
	"kind",
	"size_bytes",
	"sha256",
	"rows",
	"cols",
	"title",
	"description",
	"keywords",
	"author",
	"license_override",
}

// Entry is one manifest row. Computed fields are refreshed by Refresh;
// the remaining fields are human-maintained and never touched.
type Entry struct {
	Path            string
	Kind            string
	SizeBytes       string
	SHA256          string
	Rows            string
	Cols            string
	Title           string
	Description     string
	Keywords        string
	Author          string
	LicenseOverride string
}

func (e *Entry) values() []string {
	return []string{
		e.Path, e.Kind, e.SizeBytes, e.SHA256, e.Rows, e.Cols,
		e.Title, e.Description, e.Keywords, e.Author, e.LicenseOverride,
	}
}

// Read loads the manifest CSV and verifies every canonical column is
// present. Unknown extra columns are ignored.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest not found: %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("manifest %s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("manifest %s missing column %q", path, col)
		}
	}

	get := func(record []string, col string) string {
		i := index[col]
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	entries := make([]Entry, 0, len(records)-1)
	for _, record := range records[1:] {
		entries = append(entries, Entry{
			Path:            get(record, "path"),
			Kind:            get(record, "kind"),
			SizeBytes:       get(record, "size_bytes"),
			SHA256:          get(record, "sha256"),
			Rows:            get(record, "rows"),
			Cols:            get(record, "cols"),
			Title:           get(record, "title"),
			Description:     get(record, "description"),
			Keywords:        get(record, "keywords"),
			Author:          get(record, "author"),
			LicenseOverride: get(record, "license_override"),
		})
	}
	return entries, nil
}

// Write rewrites the manifest CSV with the canonical header.
func Write(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for i := range entries {
		if err := w.Write(entries[i].values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Refresh recomputes size, checksum, and CSV row/column counts for every
// entry relative to root. Entries whose file is missing keep their human
// fields but have computed fields cleared; the missing paths are
// returned so the caller can warn about them.
func Refresh(entries []Entry, root string) ([]Entry, []string, error) {
	updated := make([]Entry, 0, len(entries))
	var missing []string

	for _, e := range entries {
		if e.Path == "" {
			continue
		}
		full := filepath.Join(root, filepath.FromSlash(e.Path))

		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			e.SizeBytes, e.SHA256, e.Rows, e.Cols = "", "", "", ""
			missing = append(missing, e.Path)
			updated = append(updated, e)
			continue
		}

		sum, err := HashFile(full)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash %s: %w", e.Path, err)
		}
		e.SizeBytes = strconv.FormatInt(info.Size(), 10)
		e.SHA256 = sum

		if filepath.Ext(full) == ".csv" {
			rows, cols, err := countRowsCols(full)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to count %s: %w", e.Path, err)
			}
			e.Rows = strconv.Itoa(rows)
			e.Cols = strconv.Itoa(cols)
		} else {
			e.Rows, e.Cols = "", ""
		}
		updated = append(updated, e)
	}

	return updated, missing, nil
}

// HashFile returns the hex SHA-256 digest of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// countRowsCols counts CSV rows (header included) and the widest record.
func countRowsCols(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, cols := 0, 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}
		rows++
		if len(record) > cols {
			cols = len(record)
		}
	}
	return rows, cols, nil
}
