package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmatsuda/bundle-tools/internal/config"
	"github.com/jmatsuda/bundle-tools/internal/observability"
	"github.com/jmatsuda/bundle-tools/internal/table"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print row counts and column names for each dataset",
	RunE:  runSummary,
}

var (
	summaryRoot    string
	summaryDataDir string
	summaryVerbose bool
)

func init() {
	summaryCmd.Flags().StringVarP(&summaryRoot, "root", "r", "", "Bundle root directory (default \".\")")
	summaryCmd.Flags().StringVar(&summaryDataDir, "data-dir", "", "Dataset directory (default <root>/data)")
	summaryCmd.Flags().BoolVarP(&summaryVerbose, "verbose", "v", false, "Print boxed summary")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := config.Config{BundleRoot: summaryRoot, DataDir: summaryDataDir}
	dataDir := cfg.ResolveDataDir()

	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil || len(matches) == 0 {
		return fmt.Errorf("no datasets found under %s", dataDir)
	}
	sort.Strings(matches)

	printSummary(os.Stdout, matches)

	if summaryVerbose {
		var lines []string
		for _, path := range matches {
			if t, err := table.Read(path); err == nil {
				lines = append(lines, fmt.Sprintf("%s: %d rows, %d cols", filepath.Base(path), len(t.Rows), len(t.Columns)))
			}
		}
		observability.NewPrinter(os.Stdout).PrintBundleSummary(lines)
	}
	return nil
}

// printSummary renders one line per dataset: row count, column count,
// and the column names. Unreadable files are reported inline so a
// summary never fails the command.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func printSummary(w io.Writer, paths []string) {
	fmt.Fprintln(w, "DATA SUMMARY")
	fmt.Fprintln(w, "============")
	for _, path := range paths {
		name := filepath.Base(path)
		t, err := table.Read(path)
		if err != nil {
			fmt.Fprintf(w, "%-35s UNREADABLE (%v)\n", name, err)
			continue
		}
		if len(t.Columns) == 0 {
			fmt.Fprintf(w, "%-35s    0 rows | (empty)\n", name)
			continue
		}
		fmt.Fprintf(w, "%-35s %6d rows | %2d cols | %s\n",
			name, len(t.Rows), len(t.Columns), strings.Join(t.Columns, ", "))
	}
}
