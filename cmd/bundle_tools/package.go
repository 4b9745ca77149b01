package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmatsuda/bundle-tools/internal/archive"
	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Zip the bundle and write SHA256SUMS",
	Long: `Packages the bundle directories (data, dictionaries, provenance, metadata,
docs) into a zip archive and writes a SHA256SUMS.txt sidecar covering the
archive and every packaged file.`,
	RunE: runPackage,
}

var (
	packageRoot   string
	packageOutDir string
	packageName   string
)

func init() {
	packageCmd.Flags().StringVarP(&packageRoot, "root", "r", ".", "Bundle root directory")
	packageCmd.Flags().StringVar(&packageOutDir, "out-dir", "", "Output directory (default <root>/dist)")
	packageCmd.Flags().StringVarP(&packageName, "name", "n", "replication_bundle", "Archive base name")

	rootCmd.AddCommand(packageCmd)
}

func runPackage(_ *cobra.Command, _ []string) error {
	outDir := packageOutDir
	if outDir == "" {
		outDir = filepath.Join(packageRoot, "dist")
	}

	result, err := archive.Package(packageRoot, outDir, packageName)
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Packaged %d file(s) into %s\n", len(result.Files), result.ZipPath)
	_, _ = fmt.Fprintf(os.Stdout, "Archive sha256: %s\n", result.Checksum)
	return nil
}
