// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintProfile outputs the non-empty fields of an imported profile in profile key order.
// Password values are masked.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	filled := 0
	for _, role := range types.AllRoles {
		value := profile.Get(role)
		if value == "" {
			continue
		}
		filled++
		if role == types.RolePassword || role == types.RolePassword2 {
			value = strings.Repeat("*", 8)
		}
		sb.WriteString(fmt.Sprintf("%-14s %s\n", role, value))
	}
	if filled == 0 {
		sb.WriteString("(no recognized fields)\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d fields filled", filled, len(types.AllRoles)))

	p.printBox("IMPORTED PROFILE", sb.String())
}

// PrintMapping outputs each mapped role with its selector in profile key order.
func (p *Printer) PrintMapping(result *types.GenerateResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.FormSelector != nil {
		sb.WriteString(fmt.Sprintf("Scope:  %s\n\n", *result.FormSelector))
	}
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("⚠ %s", result.Error))
		p.printBox("FORM MAPPING", sb.String())
		return
	}

	for _, role := range types.AllRoles {
		if selector, ok := result.Mappings[role]; ok {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", role, selector))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d roles mapped", len(result.Mappings)))

	p.printBox("FORM MAPPING", sb.String())
}

// PrintBatchSummary outputs per-file mapping counts for a batch run, listing failures first.
func (p *Printer) PrintBatchSummary(results []formmap.FileResult) {
	if len(results) == 0 {
		return
	}

	var failed, mapped []string
	for _, r := range results {
		name := filepath.Base(r.Path)
		if r.Result == nil || r.Result.Error != "" {
			failed = append(failed, name)
			continue
		}
		mapped = append(mapped, fmt.Sprintf("%s (%d)", name, len(r.Result.Mappings)))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Files: %d  Mapped: %d  Failed: %d\n", len(results), len(mapped), len(failed)))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + title + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}
	writeList("Scope not found", failed)
	writeList("Mapped", mapped)

	p.printBox("BATCH MAPPING", strings.TrimSuffix(sb.String(), "\n"))
}
