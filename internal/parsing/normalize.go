// Package parsing turns loosely structured import data into comparable keys and raw rows.
package parsing

import (
	"regexp"
	"strings"
)

var (
	separatorRuns  = regexp.MustCompile(`[.\-_/]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// NormalizeHeader canonicalizes a free-text column label into a comparable key:
// lowercased, with runs of ". - _ /" and of whitespace each collapsed to a single
// space, and surrounding space trimmed. NormalizeHeader(NormalizeHeader(x)) == NormalizeHeader(x).
func NormalizeHeader(label string) string {
	if label == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = separatorRuns.ReplaceAllString(normalized, " ")
	normalized = whitespaceRuns.ReplaceAllString(normalized, " ")

	return strings.TrimSpace(normalized)
}
