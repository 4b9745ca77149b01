// Package archive packages the replication bundle into a zip with a
// SHA256SUMS sidecar covering the archive and every packaged file.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmatsuda/bundle-tools/internal/manifest"
)

// PackagedDirs lists the bundle directories included in the archive, in
// the order they appear in the checksum file.
var PackagedDirs = []string{"data", "dictionaries", "provenance", "metadata", "docs"}

// FileSum pairs a bundle-relative path with its SHA-256 digest.
type FileSum struct {
	Path   string
	SHA256 string
}

// Result describes a completed packaging run.
type Result struct {
	ZipPath  string
	Checksum string // SHA-256 of the zip itself
	Files    []FileSum
}

// Package zips every file under the conventional bundle directories of
// root into outDir/<name>.zip and writes outDir/SHA256SUMS.txt. Paths
// inside the archive are bundle-relative with forward slashes.
func Package(root, outDir, name string) (*Result, error) {
	files, err := collectFiles(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("nothing to package under %s", root)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	zipPath := filepath.Join(outDir, name+".zip")
	if err := writeZip(zipPath, root, files); err != nil {
		return nil, err
	}

	result := &Result{ZipPath: zipPath}
	for _, rel := range files {
		sum, err := manifest.HashFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", rel, err)
		}
		result.Files = append(result.Files, FileSum{Path: rel, SHA256: sum})
	}

	zipSum, err := manifest.HashFile(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash archive: %w", err)
	}
	result.Checksum = zipSum

	sumsPath := filepath.Join(outDir, "SHA256SUMS.txt")
	if err := writeChecksums(sumsPath, name+".zip", result); err != nil {
		return nil, err
	}

	return result, nil
}

// collectFiles walks the packaged directories and returns sorted
// bundle-relative paths. Missing directories are simply skipped; an
// entirely empty bundle is the caller's error to report.
func collectFiles(root string) ([]string, error) {
	var files []string
	for _, dir := range PackagedDirs {
		base := filepath.Join(root, dir)
		if _, err := os.Stat(base); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", base, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func writeZip(zipPath, root string, files []string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", zipPath, err)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	for _, rel := range files {
		w, err := zw.Create(rel)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", rel, err)
		}
		f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		_, err = io.Copy(w, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return out.Close()
}

// writeChecksums emits the sha256sum-compatible sidecar: the archive
// first, then every packaged file.
func writeChecksums(path, zipName string, result *Result) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  %s\n", result.Checksum, zipName))
	for _, fsum := range result.Files {
		sb.WriteString(fmt.Sprintf("%s  %s\n", fsum.SHA256, fsum.Path))
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}
	return nil
}
