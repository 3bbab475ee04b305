// Package favicon resolves bookmark URLs to cached favicon images extracted
// from a Chromium "Favicons" database.
package favicon

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/nikbrunner/chromemarks/internal/logger"
	"github.com/nikbrunner/chromemarks/internal/storage"
)

//go:embed icons/*.png
var builtinIcons embed.FS

// Built-in icons, written into the cache directory under a "builtin-" prefix
// that cannot collide with hashed cache entries.
const (
	builtinPrefix  = "builtin-"
	builtinBrowser = "browser.png"
	builtinFolder  = "folder.png"
)

// Options configures a Store.
type Options struct {
	CacheDir     string        // directory holding one PNG per URL
	DatabasePath string        // the browser's Favicons database
	Placeholder  string        // icon returned when nothing can be resolved; built-in when empty
	FolderIcon   string        // icon for folder rows; built-in when empty
	Logger       logger.Logger // optional
}

// Store resolves URLs to icon files, caching extracted images on disk.
// Cache entries never expire; ClearCache wipes them all.
type Store struct {
	cacheDir    string
	dbPath      string
	placeholder string
	folderIcon  string
	builtins    []string // embedded icons in use
	log         logger.Logger
}

// New creates a Store and makes sure the cache directory exists.
func New(opts Options) (*Store, error) {
	if opts.CacheDir == "" {
		return nil, errors.New("favicon cache dir is required")
	}
	if err := os.MkdirAll(opts.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create favicon cache: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Store{
		cacheDir:    opts.CacheDir,
		dbPath:      opts.DatabasePath,
		placeholder: opts.Placeholder,
		folderIcon:  opts.FolderIcon,
		log:         log.With(logger.String("component", "favicon")),
	}
	if s.placeholder == "" {
		s.placeholder = s.builtinPath(builtinBrowser)
		s.builtins = append(s.builtins, builtinBrowser)
	}
	if s.folderIcon == "" {
		s.folderIcon = s.builtinPath(builtinFolder)
		s.builtins = append(s.builtins, builtinFolder)
	}
	if err := s.writeBuiltins(); err != nil {
		return nil, err
	}
	return s, nil
}

// CacheDir returns the cache directory.
func (s *Store) CacheDir() string {
	return s.cacheDir
}

// Placeholder returns the fallback icon path.
func (s *Store) Placeholder() string {
	return s.placeholder
}

// FolderIcon returns the icon path for folder rows.
func (s *Store) FolderIcon() string {
	return s.folderIcon
}

// CachePath returns where the icon for url is cached.
// The name is derived from a 64-bit xxhash of the URL.
func (s *Store) CachePath(url string) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("%016x.png", xxhash.Sum64String(url)))
}

// Icon returns the icon path for url: a cached file, a file freshly
// extracted from the database, or the placeholder. It never fails.
func (s *Store) Icon(url string) string {
	return s.Icons([]string{url})[0]
}

// Icons resolves a batch of URLs. Cache misses share a single copy of the
// database. The result has one path per input URL, in order.
func (s *Store) Icons(urls []string) []string {
	paths := make([]string, len(urls))
	var misses []int

	for i, url := range urls {
		path := s.CachePath(url)
		if fileExists(path) {
			paths[i] = path
			continue
		}
		paths[i] = s.placeholder
		misses = append(misses, i)
	}

	if len(misses) == 0 {
		return paths
	}
	if s.dbPath == "" || !fileExists(s.dbPath) {
		s.log.Debug("favicon database not found", logger.String("path", s.dbPath))
		return paths
	}

	snap, err := openSnapshot(s.dbPath)
	if err != nil {
		s.log.Debug("failed to open favicon database", logger.Error(err))
		return paths
	}
	defer snap.Close()

	for _, i := range misses {
		url := urls[i]
		data, err := snap.lookup(url)
		if err != nil {
			s.log.Debug("favicon lookup failed", logger.String("url", url), logger.Error(err))
			continue
		}
		if len(data) == 0 {
			continue
		}

		path := s.CachePath(url)
		if err := storage.WriteFileAtomic(path, data, 0644); err != nil {
			s.log.Debug("failed to cache favicon", logger.String("url", url), logger.Error(err))
			continue
		}
		paths[i] = path
	}

	return paths
}

// ClearCache removes every cached icon and recreates the empty directory.
// Returns whether anything was removed.
func (s *Store) ClearCache() (bool, error) {
	entries, err := os.ReadDir(s.cacheDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	removed := false
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), builtinPrefix) {
			removed = true
			break
		}
	}

	if err := os.RemoveAll(s.cacheDir); err != nil {
		return false, err
	}
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return removed, err
	}
	return removed, s.writeBuiltins()
}

func (s *Store) builtinPath(name string) string {
	return filepath.Join(s.cacheDir, builtinPrefix+name)
}

// writeBuiltins copies the embedded icons into the cache directory.
func (s *Store) writeBuiltins() error {
	for _, name := range s.builtins {
		data, err := builtinIcons.ReadFile("icons/" + name)
		if err != nil {
			return fmt.Errorf("read built-in icon %s: %w", name, err)
		}
		if err := storage.WriteFileAtomic(s.builtinPath(name), data, 0644); err != nil {
			return fmt.Errorf("write built-in icon %s: %w", name, err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
