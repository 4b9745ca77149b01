package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmatsuda/bundle-tools/internal/schemas"
	"github.com/jmatsuda/bundle-tools/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "report.schema.json"))
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestReportSchema_AcceptsGeneratedReport(t *testing.T) {
	schemaContent, err := os.ReadFile(filepath.Join(".", "report.schema.json"))
	require.NoError(t, err)

	report := validation.Report{
		RunID:       "5f1b3c9a-0d2e-4f6a-9b8c-7d6e5f4a3b2c",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Strict:      true,
		Violations: []validation.Violation{
			{
				Severity: "error",
				Dataset:  "appendix_b_evidence_to_claim",
				Line:     4,
				RowID:    "B-007x",
				Column:   "claim_id",
				Rule:     "id_format",
				Message:  `value "B-007x" does not match pattern ^B-\d{3}$`,
			},
			{
				Severity: "warning",
				Dataset:  "abbreviations",
				Line:     9,
				Column:   "term",
				Rule:     "id_unique",
				Message:  `duplicate value "DOE" (first seen line 3)`,
			},
		},
		Errors:   1,
		Warnings: 1,
		Passed:   false,
	}

	doc, err := json.Marshal(report)
	require.NoError(t, err)

	err = schemas.ValidateString(string(schemaContent), string(doc))
	assert.NoError(t, err, "a generated report should validate against the schema")
}

func TestReportSchema_RejectsUnknownSeverity(t *testing.T) {
	schemaContent, err := os.ReadFile(filepath.Join(".", "report.schema.json"))
	require.NoError(t, err)

	doc := `{
		"run_id": "5f1b3c9a-0d2e-4f6a-9b8c-7d6e5f4a3b2c",
		"generated_at": "2026-03-01T12:00:00Z",
		"strict": false,
		"violations": [
			{"severity": "fatal", "dataset": "x", "rule": "schema", "message": "boom"}
		],
		"errors": 1,
		"warnings": 0,
		"passed": false
	}`

	err = schemas.ValidateString(string(schemaContent), doc)
	require.Error(t, err)
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}
