package validation

import (
	"fmt"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// refSeverity escalates cross-file findings to errors in strict mode.
func refSeverity(strict bool) string {
	if strict {
		return SeverityError
	}
	return SeverityWarning
}

// CheckReferences resolves declared foreign keys against the key sets of
// the referenced tables. keySets is keyed by "table.column". A non-empty
// value with no matching key, or a reference whose target table is not
// present in the bundle at all, is a warning normally and an error in
// strict mode.
func CheckReferences(ds *table.Table, dict *dictionary.Dictionary, keySets map[string]map[string]struct{}, strict bool) []Violation {
	var violations []Violation

	for _, entry := range dict.Entries {
		if entry.References == nil || !ds.HasColumn(entry.Column) {
			continue
		}

		ref := entry.References
		keys, ok := keySets[ref.Table+"."+ref.Column]
		if !ok {
			violations = append(violations, Violation{
				Severity: refSeverity(strict),
				Dataset:  ds.Name,
				Column:   entry.Column,
				Rule:     RuleReference,
				Message:  fmt.Sprintf("reference target %s.%s not found in bundle", ref.Table, ref.Column),
			})
			continue
		}

		for _, row := range ds.Rows {
			v := row.Values[entry.Column]
			if v == "" {
				continue
			}
			if _, found := keys[v]; !found {
				violations = append(violations, Violation{
					Severity: refSeverity(strict),
					Dataset:  ds.Name,
					Line:     row.Line,
					Column:   entry.Column,
					Rule:     RuleReference,
					Message:  fmt.Sprintf("value %q not found in %s.%s", v, ref.Table, ref.Column),
				})
			}
		}
	}

	return violations
}
