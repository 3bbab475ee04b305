package search

import (
	"github.com/nikbrunner/chromemarks/internal/model"
	"github.com/sahilm/fuzzy"
)

// FuzzyResult represents a fuzzy search match anywhere in the tree.
type FuzzyResult struct {
	Bookmark       *model.Bookmark
	Path           []string // folders between the root and the bookmark
	MatchedIndexes []int
	Score          int
}

type entry struct {
	bookmark *model.Bookmark
	path     []string
}

// entries implements fuzzy.Source over bookmark names.
type entries []entry

func (e entries) String(i int) string {
	return e[i].bookmark.Name
}

func (e entries) Len() int {
	return len(e)
}

// FuzzyFind searches every bookmark below root by name using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzyFind(root *model.Folder, query string) []FuzzyResult {
	if query == "" {
		return nil
	}

	var all entries
	root.Walk(func(path []string, b *model.Bookmark) {
		all = append(all, entry{bookmark: b, path: path})
	})

	matches := fuzzy.FindFrom(query, all)

	results := make([]FuzzyResult, len(matches))
	for i, m := range matches {
		results[i] = FuzzyResult{
			Bookmark:       all[m.Index].bookmark,
			Path:           all[m.Index].path,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
