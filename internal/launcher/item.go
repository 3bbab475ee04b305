package launcher

import (
	"fmt"
	"strings"
)

// ItemKind distinguishes the rows returned to a host.
type ItemKind int

const (
	ItemFolder ItemKind = iota
	ItemBookmark
	ItemError
)

func (k ItemKind) String() string {
	switch k {
	case ItemFolder:
		return "folder"
	case ItemBookmark:
		return "bookmark"
	case ItemError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets hosts encode the kind by name.
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *ItemKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "folder":
		*k = ItemFolder
	case "bookmark":
		*k = ItemBookmark
	case "error":
		*k = ItemError
	default:
		return fmt.Errorf("unknown item kind %q", text)
	}
	return nil
}

// Item is one result row.
type Item struct {
	Kind        ItemKind    `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Query       string      `json:"query,omitempty"`  // folders: query that lists the folder
	Action      *OpenAction `json:"action,omitempty"` // bookmarks: what to open
	LastUsed    int64       `json:"last_used,omitempty"`
}

// OpenAction carries everything needed to open a bookmark and record its use.
type OpenAction struct {
	Profile    string `json:"profile"`
	URL        string `json:"url"`
	BookmarkID string `json:"bookmark_id"`
	StorePath  string `json:"store_path"`
	RootKey    string `json:"root_key"`
}

var urlPrefixes = []string{"http://www.", "https://www.", "http://", "https://"}

// trimURLPrefix drops the scheme and a leading "www." for display.
func trimURLPrefix(url string) string {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(url, prefix) {
			return url[len(prefix):]
		}
	}
	return url
}
