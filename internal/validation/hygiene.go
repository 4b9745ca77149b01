package validation

import (
	"fmt"

	"github.com/jmatsuda/bundle-tools/internal/table"
)

// maxHygieneFindings caps whitespace warnings per dataset so one sloppy
// export does not drown the report.
const maxHygieneFindings = 10

// CheckHygiene flags cells whose raw value carried leading or trailing
// whitespace. The reader already trimmed them for rule evaluation, so
// these are warnings only.
func CheckHygiene(ds *table.Table) []Violation {
	var violations []Violation

	for i, cell := range ds.Untrimmed {
		if i >= maxHygieneFindings {
			violations = append(violations, Violation{
				Severity: SeverityWarning,
				Dataset:  ds.Name,
				Rule:     RuleHygiene,
				Message:  fmt.Sprintf("%d further cells with stray whitespace not listed", len(ds.Untrimmed)-maxHygieneFindings),
			})
			break
		}
		violations = append(violations, Violation{
			Severity: SeverityWarning,
			Dataset:  ds.Name,
			Line:     cell.Line,
			Column:   cell.Column,
			Rule:     RuleHygiene,
			Message:  "cell has leading or trailing whitespace",
		})
	}

	return violations
}
