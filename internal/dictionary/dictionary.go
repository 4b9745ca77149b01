// Package dictionary parses data-dictionary CSV files into typed column
// rules that the validation package evaluates against datasets.
package dictionary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// Column types a dictionary may declare.
const (
	TypeString = "string"
	TypeID     = "id"
	TypeDate   = "date"
)

// Enum modes. A recommended enum produces warnings for out-of-set values;
// a closed enum produces errors.
const (
	EnumRecommended = "recommended"
	EnumClosed      = "closed"
)

// Reference declares a foreign key: every non-empty value of the column
// must exist in Column of the table named Table.
type Reference struct {
	Table  string
	Column string
}

// Entry is the parsed rule set for one declared column.
type Entry struct {
	Column      string
	Required    bool
	Type        string
	Pattern     *regexp.Regexp
	PatternRaw  string
	Allowed     []string
	allowedSet  map[string]struct{}
	EnumMode    string
	Unique      bool
	References  *Reference
	Description string
}

// Allows reports whether value is in the entry's allowed-value set.
// Matching is case-sensitive and exact.
func (e *Entry) Allows(value string) bool {
	_, ok := e.allowedSet[value]
	return ok
}

// Dictionary describes the expected schema of exactly one dataset.
type Dictionary struct {
	Name    string
	Path    string
	Entries []Entry

	byColumn map[string]*Entry
}

// Entry returns the declaration for the named column, if any.
func (d *Dictionary) Entry(column string) (*Entry, bool) {
	e, ok := d.byColumn[column]
	return e, ok
}

// RequiredColumns returns the names of all columns marked required, in
// declaration order.
func (d *Dictionary) RequiredColumns() []string {
	var cols []string
	for _, e := range d.Entries {
		if e.Required {
			cols = append(cols, e.Column)
		}
	}
	return cols
}

// EntryError reports a structurally invalid dictionary row.
type EntryError struct {
	Path    string
	Line    int
	Column  string
	Message string
	Cause   error
}

func (e *EntryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid dictionary entry %s line %d (%s): %s: %v", e.Path, e.Line, e.Column, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid dictionary entry %s line %d (%s): %s", e.Path, e.Line, e.Column, e.Message)
}

func (e *EntryError) Unwrap() error {
	return e.Cause
}

// rawEntry mirrors one dictionary CSV row before conversion. Structural
// constraints are enforced with validator tags.
type rawEntry struct {
	Column   string `validate:"required"`
	Type     string `validate:"omitempty,oneof=string id date"`
	EnumMode string `validate:"omitempty,oneof=closed recommended"`
}

var structValidator = validator.New()

// Load reads a dictionary CSV. Expected columns: column, required, type,
// pattern, allowed_values (pipe-separated), enum_mode, unique, references
// (table.column), description. Unknown columns are ignored so dictionaries
// can carry extra documentation fields.
func Load(path string) (*Dictionary, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if !t.HasColumn("column") {
		return nil, &EntryError{Path: path, Line: 1, Message: "missing required dictionary column 'column'"}
	}

	d := &Dictionary{
		Name:     strings.TrimSuffix(t.Name, "_dictionary"),
		Path:     path,
		byColumn: make(map[string]*Entry),
	}

	for _, row := range t.Rows {
		raw := rawEntry{
			Column:   row.Values["column"],
			Type:     row.Values["type"],
			EnumMode: row.Values["enum_mode"],
		}
		if err := structValidator.Struct(raw); err != nil {
			return nil, &EntryError{
				Path:    path,
				Line:    row.Line,
				Column:  raw.Column,
				Message: "entry failed structural validation",
				Cause:   err,
			}
		}

		entry := Entry{
			Column:      raw.Column,
			Required:    parseBool(row.Values["required"]),
			Type:        raw.Type,
			PatternRaw:  row.Values["pattern"],
			EnumMode:    raw.EnumMode,
			Unique:      parseBool(row.Values["unique"]),
			Description: row.Values["description"],
		}

		if entry.PatternRaw != "" {
			re, err := regexp.Compile(entry.PatternRaw)
			if err != nil {
				return nil, &EntryError{
					Path:    path,
					Line:    row.Line,
					Column:  entry.Column,
					Message: fmt.Sprintf("invalid pattern %q", entry.PatternRaw),
					Cause:   err,
				}
			}
			entry.Pattern = re
		}

		if allowed := row.Values["allowed_values"]; allowed != "" {
			entry.allowedSet = make(map[string]struct{})
			for _, v := range strings.Split(allowed, "|") {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				entry.Allowed = append(entry.Allowed, v)
				entry.allowedSet[v] = struct{}{}
			}
			if entry.EnumMode == "" {
				entry.EnumMode = EnumRecommended
			}
		}

		if ref := row.Values["references"]; ref != "" {
			tbl, col, ok := strings.Cut(ref, ".")
			if !ok || tbl == "" || col == "" {
				return nil, &EntryError{
					Path:    path,
					Line:    row.Line,
					Column:  entry.Column,
					Message: fmt.Sprintf("references must be table.column, got %q", ref),
				}
			}
			entry.References = &Reference{Table: tbl, Column: col}
		}

		if _, dup := d.byColumn[entry.Column]; dup {
			return nil, &EntryError{
				Path:    path,
				Line:    row.Line,
				Column:  entry.Column,
				Message: "column declared twice",
			}
		}
		d.Entries = append(d.Entries, entry)
		d.byColumn[entry.Column] = nil // reserved; pointers assigned below
	}

	// Assign pointers only after the slice stops growing.
	for i := range d.Entries {
		d.byColumn[d.Entries[i].Column] = &d.Entries[i]
	}

	return d, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}
