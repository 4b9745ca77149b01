package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RenderMarkdown produces the human-readable FILE_MANIFEST.md table.
func RenderMarkdown(entries []Entry, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# File manifest\n\n")
	sb.WriteString(fmt.Sprintf("_Generated: %s_\n\n", now.UTC().Format("2006-01-02 15:04 UTC")))
	sb.WriteString("| Path | Kind | Size | Rows | Cols | Title | SHA256 (8) |\n")
	sb.WriteString("|------|------|------:|-----:|-----:|-------|------------|\n")

	var totalSize int64
	for _, e := range entries {
		size, err := strconv.ParseInt(e.SizeBytes, 10, 64)
		sizeH := ""
		if err == nil {
			totalSize += size
			sizeH = HumanBytes(size)
		}
		sha := e.SHA256
		if len(sha) > 8 {
			sha = sha[:8]
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | `%s` |\n",
			e.Path, e.Kind, sizeH, e.Rows, e.Cols, e.Title, sha))
	}

	sb.WriteString(fmt.Sprintf("\n**Files:** %d &nbsp;&nbsp; **Total size:** %s\n\n", len(entries), HumanBytes(totalSize)))
	sb.WriteString("> Notes: Sizes/rows/cols are derived automatically. Human fields (title/description/keywords/author/license_override) are preserved from the CSV and can be edited there.\n")

	return sb.String()
}

// WriteMarkdown renders the manifest table to path, creating parent
// directories as needed.
func WriteMarkdown(path string, entries []Entry, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}
	return os.WriteFile(path, []byte(RenderMarkdown(entries, now)), 0644)
}

// HumanBytes formats a byte count for the summary table.
func HumanBytes(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(n)
	for _, u := range units {
		if size < 1024 || u == units[len(units)-1] {
			if u == "B" {
				return fmt.Sprintf("%.0f %s", size, u)
			}
			return fmt.Sprintf("%.1f %s", size, u)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%d B", n)
}
