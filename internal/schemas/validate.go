// Package schemas validates machine-readable output artifacts against
// the JSON Schemas shipped under the repository's schemas/ directory.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResolveSchemaPath finds a schema file by trying the path relative to
// the working directory and then one and two levels up, since commands
// and tests run from different directories. Returns empty when nothing
// matches.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}
	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}
	return ""
}

// FieldError is one schema violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every field-level schema violation.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be loaded or parsed,
// as opposed to a document that fails it.
type SchemaLoadError struct {
	Path  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateFile validates a JSON document file against a schema file.
func ValidateFile(schemaPath, documentPath string) error {
	schemaAbs, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	documentAbs, err := filepath.Abs(documentPath)
	if err != nil {
		return fmt.Errorf("failed to resolve document path: %w", err)
	}

	schema := gojsonschema.NewReferenceLoader("file://" + schemaAbs)
	document := gojsonschema.NewReferenceLoader("file://" + documentAbs)
	return validate(schema, document, schemaAbs)
}

// ValidateString validates JSON document content against schema content.
func ValidateString(schemaContent, documentContent string) error {
	schema := gojsonschema.NewStringLoader(schemaContent)
	document := gojsonschema.NewStringLoader(documentContent)
	return validate(schema, document, "(inline schema)")
}

func validate(schema, document gojsonschema.JSONLoader, schemaName string) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
