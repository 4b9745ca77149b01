package validation

import (
	"fmt"
	"strings"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// CheckEnums verifies allowed-value membership. Empty cells always pass;
// required-presence is the schema check's concern, not the enum's. An
// out-of-set value is a warning for recommended enums and an error for
// closed enums.
func CheckEnums(ds *table.Table, dict *dictionary.Dictionary) []Violation {
	var violations []Violation

	for _, entry := range dict.Entries {
		if len(entry.Allowed) == 0 || !ds.HasColumn(entry.Column) {
			continue
		}

		severity := SeverityWarning
		if entry.EnumMode == dictionary.EnumClosed {
			severity = SeverityError
		}

		for _, row := range ds.Rows {
			v := row.Values[entry.Column]
			if v == "" || entry.Allows(v) {
				continue
			}
			violations = append(violations, Violation{
				Severity: severity,
				Dataset:  ds.Name,
				Line:     row.Line,
				Column:   entry.Column,
				Rule:     RuleEnum,
				Message:  fmt.Sprintf("value %q not in allowed set [%s]", v, strings.Join(entry.Allowed, ", ")),
			})
		}
	}

	return violations
}
