package search

import "sort"

// DefaultLimit is the number of results shown when none is configured.
const DefaultLimit = 10

// Rank orders candidates with folders first and bookmarks by most recent
// use, keeping sibling order for ties, then keeps at most limit entries.
// A limit <= 0 means no limit. The input slice is not modified.
func Rank(candidates []Candidate, limit int) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		return a.LastUsed() > b.LastUsed()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
