package sites

import (
	"regexp"
	"strings"
)

// MaxBulkURLs caps how many URLs a bulk open request may produce.
const MaxBulkURLs = 500

var (
	urlPattern        = regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>]+`)
	trailingPunct     = regexp.MustCompile(`[),.;!]+$`)
	restrictedSchemes = regexp.MustCompile(`(?i)^(chrome|chrome-extension|edge|about|moz-extension)://`)
)

// ExtractURLs finds http(s) URLs in free text, strips trailing punctuation and keeps
// first occurrences in order. A positive limit caps the result.
func ExtractURLs(text string, limit int) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})

	for _, match := range urlPattern.FindAllString(text, -1) {
		u := trailingPunct.ReplaceAllString(match, "")
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out
}

// IsRestrictedURL reports URLs that a page cannot be filled on: empty ones and browser-internal schemes.
func IsRestrictedURL(u string) bool {
	u = strings.TrimSpace(u)
	return u == "" || restrictedSchemes.MatchString(u)
}
