package search

import (
	"testing"

	"github.com/nikbrunner/chromemarks/internal/model"
)

// testTree builds:
//
//	root
//	├── Work/
//	│   ├── Jira        (last used 300)
//	│   ├── Projects/
//	│   └── Docs        https://example.com/docs
//	├── Café/
//	│   └── Menu
//	├── GitHub          (last used 500)
//	└── Docs            https://example.com/docs (last used 200)
func testTree() *model.Folder {
	return &model.Folder{ID: "1", Name: "Bookmarks bar", Children: []model.Node{
		&model.Folder{ID: "10", Name: "Work", Children: []model.Node{
			&model.Bookmark{ID: "11", Name: "Jira", URL: "https://tracker.atlassian.net", LastUsed: 300},
			&model.Folder{ID: "12", Name: "Projects", Children: []model.Node{}},
			&model.Bookmark{ID: "13", Name: "Docs", URL: "https://example.com/docs"},
		}},
		&model.Folder{ID: "20", Name: "Café", Children: []model.Node{
			&model.Bookmark{ID: "21", Name: "Menu", URL: "https://menu.example.com"},
		}},
		&model.Bookmark{ID: "30", Name: "GitHub", URL: "https://github.com", LastUsed: 500},
		&model.Bookmark{ID: "31", Name: "Docs", URL: "https://example.com/docs", LastUsed: 200},
	}}
}

func ids(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		if c.IsFolder() {
			out[i] = c.Folder.ID
		} else {
			out[i] = c.Bookmark.ID
		}
	}
	return out
}

func equalIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
