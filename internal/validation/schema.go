package validation

import (
	"fmt"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// CheckSchema compares a dataset against its dictionary. A required
// column missing from the header is an error, as is an empty cell in a
// required column that is present. A header column
// the dictionary never declares is schema drift and stays a warning
// regardless of strict mode. A blank header name is an error.
func CheckSchema(ds *table.Table, dict *dictionary.Dictionary) []Violation {
	var violations []Violation

	for _, col := range dict.RequiredColumns() {
		if !ds.HasColumn(col) {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Dataset:  ds.Name,
				Column:   col,
				Rule:     RuleSchema,
				Message:  fmt.Sprintf("required column %q missing from header", col),
			})
			continue
		}
		for _, row := range ds.Rows {
			if row.Values[col] == "" {
				violations = append(violations, Violation{
					Severity: SeverityError,
					Dataset:  ds.Name,
					Line:     row.Line,
					Column:   col,
					Rule:     RuleSchema,
					Message:  fmt.Sprintf("required column %q is empty", col),
				})
			}
		}
	}

	for _, col := range ds.Columns {
		if col == "" {
			violations = append(violations, Violation{
				Severity: SeverityError,
				Dataset:  ds.Name,
				Rule:     RuleSchema,
				Message:  "blank column name in header",
			})
			continue
		}
		if _, declared := dict.Entry(col); !declared {
			violations = append(violations, Violation{
				Severity: SeverityWarning,
				Dataset:  ds.Name,
				Column:   col,
				Rule:     RuleSchema,
				Message:  fmt.Sprintf("column %q is not declared in the dictionary", col),
			})
		}
	}

	return violations
}
