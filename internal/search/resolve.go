package search

import (
	"github.com/nikbrunner/chromemarks/internal/fold"
	"github.com/nikbrunner/chromemarks/internal/model"
)

// Candidate is a folder or bookmark selected by a query.
type Candidate struct {
	Kind     model.Kind
	Folder   *model.Folder
	Bookmark *model.Bookmark
}

// Title returns the display name regardless of kind.
func (c Candidate) Title() string {
	if c.Kind == model.KindFolder {
		return c.Folder.Name
	}
	return c.Bookmark.Name
}

// IsFolder returns true if this candidate is a folder.
func (c Candidate) IsFolder() bool {
	return c.Kind == model.KindFolder
}

// LastUsed returns the bookmark's last-used timestamp; folders report 0.
func (c Candidate) LastUsed() int64 {
	if c.Kind == model.KindBookmark {
		return c.Bookmark.LastUsed
	}
	return 0
}

// Resolution is the outcome of resolving a query against a tree.
type Resolution struct {
	Query      Query
	BasePath   string
	Found      bool // false when a path segment matched no folder
	Candidates []Candidate
}

// Resolve interprets raw against root. A path segment without a matching
// folder yields an empty, not-found resolution rather than an error.
// The tree is not modified.
func Resolve(root *model.Folder, raw string) Resolution {
	q := ParseQuery(raw)
	res := Resolution{
		Query:    q,
		BasePath: q.BasePath(),
	}

	folder, ok := root.Descend(q.Path)
	if !ok {
		return res
	}

	res.Found = true
	res.Candidates = Filter(folder.Children, q)
	return res
}

// Filter returns the nodes matching q in sibling order. Without a search
// term every node matches. Folders match on name, bookmarks on name or URL.
func Filter(nodes []model.Node, q Query) []Candidate {
	candidates := make([]Candidate, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *model.Folder:
			if !q.HasTerm || fold.Contains(n.Name, q.Term) {
				candidates = append(candidates, Candidate{Kind: model.KindFolder, Folder: n})
			}
		case *model.Bookmark:
			if !q.HasTerm || fold.Contains(n.Name, q.Term) || fold.Contains(n.URL, q.Term) {
				candidates = append(candidates, Candidate{Kind: model.KindBookmark, Bookmark: n})
			}
		}
	}
	return candidates
}
