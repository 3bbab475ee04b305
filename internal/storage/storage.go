package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nikbrunner/chromemarks/internal/model"
)

// Root keys of the "roots" map in a Chromium bookmarks document.
const (
	RootBookmarkBar = "bookmark_bar"
	RootOther       = "other"
	RootSynced      = "synced"
)

var (
	// ErrMalformedStore is returned when the bookmarks document cannot be
	// parsed or lacks the configured root.
	ErrMalformedStore = errors.New("malformed bookmark store")
	// ErrPersistence is returned when an updated document cannot be written back.
	ErrPersistence = errors.New("failed to persist bookmark store")
)

// Storage reads the bookmark tree and records bookmark usage.
type Storage interface {
	Load() (*model.Folder, error)
	MarkUsed(id string) (bool, error)
}

// ChromeStore implements Storage on top of a Chromium "Bookmarks" file.
type ChromeStore struct {
	path    string
	rootKey string
	now     func() time.Time
}

// NewChromeStore creates a ChromeStore reading the given root of the file at path.
// An empty rootKey selects the bookmarks bar.
func NewChromeStore(path, rootKey string) *ChromeStore {
	if rootKey == "" {
		rootKey = RootBookmarkBar
	}
	return &ChromeStore{path: path, rootKey: rootKey, now: time.Now}
}

// Path returns the bookmarks file path.
func (s *ChromeStore) Path() string {
	return s.path
}

// RootKey returns the configured root subtree key.
func (s *ChromeStore) RootKey() string {
	return s.rootKey
}

// Load reads and parses the configured root subtree.
// The file is read on every call.
func (s *ChromeStore) Load() (*model.Folder, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open bookmarks: %w", err)
	}
	defer f.Close()

	return LoadTree(f, s.rootKey)
}

// MarkUsed stamps the bookmark with the current time.
// Returns false if no bookmark with that id exists under the configured root.
func (s *ChromeStore) MarkUsed(id string) (bool, error) {
	return MarkUsedAt(s.path, s.rootKey, id, s.now())
}
