// Package validation checks bundle datasets against their data
// dictionaries and aggregates every finding into a single report.
package validation

import (
	"sort"
	"time"
)

// Violation severities.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Rule names used in violations. Reports sort by these, so they are
// stable identifiers rather than display strings.
const (
	RuleParse     = "parse"
	RuleSchema    = "schema"
	RuleIDFormat  = "id_format"
	RuleIDUnique  = "id_unique"
	RuleEnum      = "enum"
	RuleDate      = "date"
	RuleReference = "reference"
	RuleHygiene   = "hygiene"
)

// Violation is a single rule-check failure. Line is the 1-based line in
// the dataset file (0 for file-level findings); RowID carries the row's
// ID value when the dataset declares an ID column.
type Violation struct {
	Severity string `json:"severity"`
	Dataset  string `json:"dataset"`
	Line     int    `json:"line,omitempty"`
	RowID    string `json:"row_id,omitempty"`
	Column   string `json:"column,omitempty"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

// Report is the aggregated outcome of one validation run.
type Report struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Strict      bool        `json:"strict"`
	Violations  []Violation `json:"violations"`
	Errors      int         `json:"errors"`
	Warnings    int         `json:"warnings"`
	Passed      bool        `json:"passed"`
}

// sortViolations orders violations by dataset, then line, then rule,
// then column, then message. The ordering is total, so identical input
// always yields an identical report.
func sortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Dataset != b.Dataset {
			return a.Dataset < b.Dataset
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Message < b.Message
	})
}

// finalize sorts the violations, fills the counts, and computes the
// verdict. The run fails when any error-severity violation exists, or in
// strict mode when any reference-rule warning survived.
func (r *Report) finalize() {
	if r.Violations == nil {
		r.Violations = []Violation{} // marshal as [] rather than null
	}
	sortViolations(r.Violations)
	r.Errors, r.Warnings = 0, 0
	refWarnings := 0
	for _, v := range r.Violations {
		switch v.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
			if v.Rule == RuleReference {
				refWarnings++
			}
		}
	}
	r.Passed = r.Errors == 0 && !(r.Strict && refWarnings > 0)
}
