package model_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/chromemarks/internal/model"
)

func testTree() *model.Folder {
	return &model.Folder{
		ID:   "1",
		Name: "Bookmarks bar",
		Children: []model.Node{
			&model.Folder{ID: "2", Name: "Work", Children: []model.Node{
				&model.Bookmark{ID: "3", Name: "Jira", URL: "https://jira.example.com"},
				&model.Folder{ID: "4", Name: "Café", Children: []model.Node{
					&model.Bookmark{ID: "5", Name: "Menu", URL: "https://cafe.example.com/menu"},
				}},
			}},
			&model.Folder{ID: "6", Name: "work", Children: []model.Node{}},
			&model.Bookmark{ID: "7", Name: "GitHub", URL: "https://github.com"},
		},
	}
}

func TestFolder_ChildFolder(t *testing.T) {
	root := testTree()

	tests := []struct {
		name   string
		query  string
		wantID string
		wantOK bool
	}{
		{"exact", "Work", "2", true},
		{"case insensitive picks first duplicate", "WORK", "2", true},
		{"bookmarks are not folders", "GitHub", "", false},
		{"not recursive", "Café", "", false},
		{"missing", "Nope", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := root.ChildFolder(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("got folder %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestFolder_Descend(t *testing.T) {
	root := testTree()

	got, ok := root.Descend([]string{"work", "CAFE"})
	if !ok {
		t.Fatal("expected descent to succeed")
	}
	if got.ID != "4" {
		t.Errorf("expected folder 4, got %q", got.ID)
	}

	if _, ok := root.Descend([]string{"Work", "Missing"}); ok {
		t.Error("expected descent through a missing folder to fail")
	}

	self, ok := root.Descend(nil)
	if !ok || self != root {
		t.Error("expected empty path to return the root itself")
	}
}

func TestFolder_Walk(t *testing.T) {
	root := testTree()

	var ids []string
	var paths [][]string
	root.Walk(func(path []string, b *model.Bookmark) {
		ids = append(ids, b.ID)
		paths = append(paths, path)
	})

	wantIDs := []string{"3", "5", "7"}
	if len(ids) != len(wantIDs) {
		t.Fatalf("expected %d bookmarks, got %d", len(wantIDs), len(ids))
	}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] {
			t.Errorf("bookmark %d: got %q, want %q", i, ids[i], wantIDs[i])
		}
	}
	if len(paths[1]) != 2 || paths[1][0] != "Work" || paths[1][1] != "Café" {
		t.Errorf("unexpected path for nested bookmark: %v", paths[1])
	}
	if len(paths[2]) != 0 {
		t.Errorf("expected root bookmark to have empty path, got %v", paths[2])
	}
}

func TestFolder_FindBookmark(t *testing.T) {
	root := testTree()

	tests := []struct {
		id      string
		wantURL string
		wantOK  bool
	}{
		{"7", "https://github.com", true},
		{"5", "https://cafe.example.com/menu", true},
		{"4", "", false}, // folder ids are not bookmarks
		{"99", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := root.FindBookmark(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.URL != tt.wantURL {
				t.Errorf("got url %q, want %q", got.URL, tt.wantURL)
			}
		})
	}
}

func TestChromeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		us   int64
	}{
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 11644473600000000},
		{"chrome epoch", time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 13348540800000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.ToChromeTime(tt.t); got != tt.us {
				t.Errorf("ToChromeTime = %d, want %d", got, tt.us)
			}
			if got := model.FromChromeTime(tt.us); !got.Equal(tt.t) {
				t.Errorf("FromChromeTime = %v, want %v", got, tt.t)
			}
		})
	}
}

func TestBookmark_LastUsedTime(t *testing.T) {
	b := &model.Bookmark{ID: "1"}
	if !b.LastUsedTime().IsZero() {
		t.Error("expected zero time for unused bookmark")
	}

	b.LastUsed = 13348540800000000
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !b.LastUsedTime().Equal(want) {
		t.Errorf("got %v, want %v", b.LastUsedTime(), want)
	}
}
