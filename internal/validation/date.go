package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jmatsuda/bundle-tools/internal/dictionary"
	"github.com/jmatsuda/bundle-tools/internal/table"
)

// datePattern accepts the three ISO-8601 shapes the bundle uses:
// YYYY, YYYY-MM, YYYY-MM-DD.
var datePattern = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?$`)

// ValidISODate reports whether value is a calendar-valid date in one of
// the shapes YYYY, YYYY-MM, or YYYY-MM-DD. Month 13 or a day that does
// not exist for its month and year (leap years included) is invalid.
func ValidISODate(value string) bool {
	m := datePattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	if year < 1 || year > 9999 {
		return false
	}
	if m[2] == "" {
		return true
	}
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	if m[3] == "" {
		return true
	}
	day, _ := strconv.Atoi(m[3])
	if day < 1 {
		return false
	}
	// time.Date normalizes overflow (Feb 30 -> Mar 2), so a round-trip
	// mismatch means the day does not exist in that month.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && d.Month() == time.Month(month) && d.Year() == year
}

// CheckDates validates every non-empty cell of date-typed columns.
// Any shape or calendar failure is an error.
func CheckDates(ds *table.Table, dict *dictionary.Dictionary) []Violation {
	var violations []Violation

	for _, entry := range dict.Entries {
		if entry.Type != dictionary.TypeDate || !ds.HasColumn(entry.Column) {
			continue
		}
		for _, row := range ds.Rows {
			v := row.Values[entry.Column]
			if v == "" || ValidISODate(v) {
				continue
			}
			violations = append(violations, Violation{
				Severity: SeverityError,
				Dataset:  ds.Name,
				Line:     row.Line,
				Column:   entry.Column,
				Rule:     RuleDate,
				Message:  fmt.Sprintf("value %q is not a valid ISO date (YYYY, YYYY-MM, or YYYY-MM-DD)", v),
			})
		}
	}

	return violations
}
