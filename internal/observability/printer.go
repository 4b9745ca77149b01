// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmatsuda/bundle-tools/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of violations to display per box
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs a boxed summary of the validation report: counts,
// verdict, and the first few violations.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *validation.Report) {
	if report == nil {
		return
	}
	if len(report.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Errors: %d  Warnings: %d\n", report.Errors, report.Warnings))
	if report.Passed {
		sb.WriteString("Verdict: PASS\n\n")
	} else {
		sb.WriteString("Verdict: FAIL\n\n")
	}

	count := min(len(report.Violations), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := report.Violations[i]
		locator := v.Dataset
		if v.Line > 0 {
			locator = fmt.Sprintf("%s:%d", v.Dataset, v.Line)
		}
		sb.WriteString(fmt.Sprintf("⚠ %s %s\n", v.Severity, locator))
		msg := v.Message
		if len(msg) > 45 {
			msg = msg[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", msg))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(report.Violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more violations", len(report.Violations)-maxItemsToShow))
	}

	p.printBox("VALIDATION REPORT", sb.String())
}

// PrintBundleSummary outputs per-dataset row and column counts.
func (p *Printer) PrintBundleSummary(lines []string) {
	if len(lines) == 0 {
		return
	}
	p.printBox("BUNDLE SUMMARY", strings.Join(lines, "\n"))
}
