package validation

import (
	"fmt"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// CheckIdentifiers applies ID-format and uniqueness rules. A non-empty
// value that does not fullmatch the declared pattern is an error.
// Duplicate non-empty values in an ID column (or any column flagged
// unique) are warnings; empty values never count as duplicates. ID
// columns are implicitly unique.
func CheckIdentifiers(ds *table.Table, dict *dictionary.Dictionary) []Violation {
	var violations []Violation

	for _, entry := range dict.Entries {
		if !ds.HasColumn(entry.Column) {
			continue
		}

		if entry.Type == dictionary.TypeID && entry.Pattern != nil {
			for _, row := range ds.Rows {
				v := row.Values[entry.Column]
				if v == "" {
					continue
				}
				if m := entry.Pattern.FindString(v); m != v {
					violations = append(violations, Violation{
						Severity: SeverityError,
						Dataset:  ds.Name,
						Line:     row.Line,
						RowID:    v,
						Column:   entry.Column,
						Rule:     RuleIDFormat,
						Message:  fmt.Sprintf("value %q does not match pattern %s", v, entry.PatternRaw),
					})
				}
			}
		}

		if entry.Unique || entry.Type == dictionary.TypeID {
			seen := make(map[string]int) // value -> line of first occurrence
			for _, row := range ds.Rows {
				v := row.Values[entry.Column]
				if v == "" {
					continue
				}
				if first, dup := seen[v]; dup {
					violations = append(violations, Violation{
						Severity: SeverityWarning,
						Dataset:  ds.Name,
						Line:     row.Line,
						RowID:    v,
						Column:   entry.Column,
						Rule:     RuleIDUnique,
						Message:  fmt.Sprintf("duplicate value %q (first seen line %d)", v, first),
					})
					continue
				}
				seen[v] = row.Line
			}
		}
	}

	return violations
}
