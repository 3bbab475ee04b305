package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nikbrunner/chromemarks/internal/model"
)

// Node type values used by Chromium.
const (
	typeFolder = "folder"
	typeURL    = "url"
)

// document mirrors the parts of the bookmarks file we read.
type document struct {
	Roots map[string]json.RawMessage `json:"roots"`
}

// rawNode is a bookmark tree node as stored on disk.
type rawNode struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	URL          string     `json:"url"`
	DateLastUsed chromeTime `json:"date_last_used"` // string-encoded on disk
	Children     []rawNode  `json:"children"`
}

// LoadTree parses a bookmarks document and returns the folder stored under
// roots[rootKey]. Other roots are ignored.
func LoadTree(r io.Reader, rootKey string) (*model.Folder, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	if doc.Roots == nil {
		return nil, fmt.Errorf("%w: missing roots", ErrMalformedStore)
	}

	data, ok := doc.Roots[rootKey]
	if !ok {
		return nil, fmt.Errorf("%w: root %q not found", ErrMalformedStore, rootKey)
	}

	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: root %q: %v", ErrMalformedStore, rootKey, err)
	}
	if root.Type != "" && root.Type != typeFolder {
		return nil, fmt.Errorf("%w: root %q is not a folder", ErrMalformedStore, rootKey)
	}

	return root.folder(), nil
}

func (n rawNode) folder() *model.Folder {
	f := &model.Folder{
		ID:       n.ID,
		Name:     n.Name,
		Children: make([]model.Node, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		switch child.Type {
		case typeFolder:
			f.Children = append(f.Children, child.folder())
		case typeURL:
			f.Children = append(f.Children, child.bookmark())
		}
		// Any other node type is not part of the navigable tree.
	}
	return f
}

func (n rawNode) bookmark() *model.Bookmark {
	return &model.Bookmark{
		ID:       n.ID,
		Name:     n.Name,
		URL:      n.URL,
		LastUsed: int64(n.DateLastUsed),
	}
}

// chromeTime is a date_last_used value. Chromium writes a decimal string;
// bare numbers are accepted too and any other value decodes as 0.
type chromeTime int64

func (t *chromeTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// not a string: keep the raw literal, which is a number or junk
		s = string(data)
	}
	*t = chromeTime(parseChromeTime(s))
	return nil
}

// parseChromeTime parses a string-encoded timestamp, treating anything
// unparsable as "never".
func parseChromeTime(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
