package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmatsuda/bundle-tools/internal/config"
	"github.com/jmatsuda/bundle-tools/internal/observability"
	"github.com/jmatsuda/bundle-tools/internal/schemas"
	"github.com/jmatsuda/bundle-tools/internal/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate datasets against their data dictionaries",
	Long: `Checks every dataset CSV against its paired dictionary: required columns,
ID formats and uniqueness, enum membership, ISO dates, and cross-file
provenance references. All findings are collected into one report; the
command exits nonzero when the verdict is fail.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runValidate,
}

var (
	validateConfigPath string
	validateRoot       string
	validateDataDir    string
	validateDictDir    string
	validateProvDir    string
	validateStrict     bool
	validateVerbose    bool
	validateOutPath    string
)

func init() {
	// Config file flag (processed first)
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	validateCmd.Flags().StringVarP(&validateRoot, "root", "r", "", "Bundle root directory (default \".\")")
	validateCmd.Flags().StringVar(&validateDataDir, "data-dir", "", "Dataset directory (default <root>/data)")
	validateCmd.Flags().StringVar(&validateDictDir, "dictionaries-dir", "", "Dictionary directory (default <root>/dictionaries)")
	validateCmd.Flags().StringVar(&validateProvDir, "provenance-dir", "", "Provenance directory (default <root>/provenance)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat cross-file reference findings as errors")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print boxed report summary")
	validateCmd.Flags().StringVarP(&validateOutPath, "out", "o", "", "Path to write the report as JSON (optional)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if validateConfigPath != "" {
		loadedCfg, err := config.LoadConfig(validateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("root") {
		cfg.BundleRoot = validateRoot
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = validateDataDir
	}
	if cmd.Flags().Changed("dictionaries-dir") {
		cfg.DictionariesDir = validateDictDir
	}
	if cmd.Flags().Changed("provenance-dir") {
		cfg.ProvenanceDir = validateProvDir
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = validateStrict
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = validateVerbose
	}

	report, err := validation.ValidateBundle(validation.Options{
		DataDir:         cfg.ResolveDataDir(),
		DictionariesDir: cfg.ResolveDictionariesDir(),
		ProvenanceDir:   cfg.ResolveProvenanceDir(),
		Strict:          cfg.Strict,
	})
	if err != nil {
		var setupErr *validation.SetupError
		if errors.As(err, &setupErr) {
			return fmt.Errorf("cannot validate: %w", err)
		}
		return fmt.Errorf("validation failed to run: %w", err)
	}

	renderReport(os.Stdout, report)

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintReport(report)
	}

	if validateOutPath != "" {
		if err := writeReportJSON(validateOutPath, report); err != nil {
			return err
		}
	}

	if !report.Passed {
		// Return error to indicate violations were found (exit code 1)
		return fmt.Errorf("validation failed: %d error(s), %d warning(s)", report.Errors, report.Warnings)
	}
	return nil
}

// renderReport prints the human-readable report: one line per violation
// in the report's deterministic order, then a summary line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func renderReport(w io.Writer, report *validation.Report) {
	for _, v := range report.Violations {
		locator := v.Dataset
		if v.Line > 0 {
			locator = fmt.Sprintf("%s:%d", v.Dataset, v.Line)
		}
		if v.RowID != "" {
			locator = fmt.Sprintf("%s (%s)", locator, v.RowID)
		}
		column := v.Column
		if column == "" {
			column = "-"
		}
		fmt.Fprintf(w, "%-7s %s %s [%s] %s\n", v.Severity, locator, column, v.Rule, v.Message)
	}

	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", report.Errors, report.Warnings)
	if report.Passed {
		fmt.Fprintln(w, "All required checks passed.")
	} else {
		fmt.Fprintln(w, "Validation failed. See findings above.")
	}
}

// writeReportJSON writes the report and soft-validates it against the
// shipped JSON Schema; schema problems are warnings, never fatal.
func writeReportJSON(path string, report *validation.Report) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write report to output file: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath("schemas/report.schema.json"); schemaPath != "" {
		if err := schemas.ValidateFile(schemaPath, path); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: generated report does not validate against schema: %v\n", err)
		}
	}
	return nil
}
