package search

import (
	"strings"

	"github.com/nikbrunner/chromemarks/internal/fold"
)

// Query is a parsed launcher query.
//
// Examples:
//   - ""          -> list the root
//   - "Work/"     -> list folder Work
//   - "Work/jira" -> search "jira" inside folder Work
//   - "jira"      -> search "jira" in the root
type Query struct {
	Raw     string   // original input
	Path    []string // folder names to descend through, from the root
	Term    string   // folded search term, valid when HasTerm
	HasTerm bool
}

// ParseQuery splits raw on "/" into a folder path and an optional search term.
// A trailing "/" means every segment is a folder to descend into.
func ParseQuery(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	parts := splitAndClean(trimmed, "/")

	q := Query{Raw: raw}
	switch {
	case len(parts) == 0:
		// Root listing.
	case strings.HasSuffix(trimmed, "/"):
		q.Path = parts
	default:
		q.Path = parts[:len(parts)-1]
		q.Term = fold.Fold(parts[len(parts)-1])
		q.HasTerm = true
	}
	return q
}

// BasePath returns the folder path joined with "/" and a trailing "/",
// or "" at the root. Folder results append their name to it.
func (q Query) BasePath() string {
	if len(q.Path) == 0 {
		return ""
	}
	return strings.Join(q.Path, "/") + "/"
}

// splitAndClean splits a string by separator and returns non-empty trimmed parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
