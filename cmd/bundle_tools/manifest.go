package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmatsuda/bundle-tools/internal/manifest"
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Rebuild the file manifest (merge-safe)",
	Long: `Refreshes the computed fields of metadata/file_manifest.csv (size, sha256,
CSV row/column counts) while preserving the human-maintained fields, and
renders docs/FILE_MANIFEST.md.`,
	RunE: runManifest,
}

var (
	manifestRoot   string
	manifestPath   string
	manifestOutMD  string
	manifestNoMD   bool
	manifestDryRun bool
)

func init() {
	manifestCmd.Flags().StringVarP(&manifestRoot, "root", "r", ".", "Bundle root directory")
	manifestCmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to manifest CSV (default <root>/metadata/file_manifest.csv)")
	manifestCmd.Flags().StringVar(&manifestOutMD, "out-md", "", "Path to FILE_MANIFEST.md (default <root>/docs/FILE_MANIFEST.md)")
	manifestCmd.Flags().BoolVar(&manifestNoMD, "no-md", false, "Do not write FILE_MANIFEST.md")
	manifestCmd.Flags().BoolVar(&manifestDryRun, "dry-run", false, "Do not write files; just print a summary")

	rootCmd.AddCommand(manifestCmd)
}

func runManifest(_ *cobra.Command, _ []string) error {
	csvPath := manifestPath
	if csvPath == "" {
		csvPath = filepath.Join(manifestRoot, "metadata", "file_manifest.csv")
	}
	mdPath := manifestOutMD
	if mdPath == "" {
		mdPath = filepath.Join(manifestRoot, "docs", "FILE_MANIFEST.md")
	}

	entries, err := manifest.Read(csvPath)
	if err != nil {
		return err
	}

	updated, missing, err := manifest.Refresh(entries, manifestRoot)
	if err != nil {
		return err
	}
	for _, path := range missing {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: missing file listed in manifest: %s\n", path)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Files in manifest: %d | present: %d | missing: %d\n",
		len(updated), len(updated)-len(missing), len(missing))

	if manifestDryRun {
		_, _ = fmt.Fprintln(os.Stdout, "Dry run: not writing CSV/MD.")
		return nil
	}

	if err := manifest.Write(csvPath, updated); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", csvPath)

	if !manifestNoMD {
		if err := manifest.WriteMarkdown(mdPath, updated, time.Now()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", mdPath)
	}
	return nil
}
