package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/chromemarks/internal/linkcheck"
	"github.com/nikbrunner/chromemarks/internal/search"
	"github.com/nikbrunner/chromemarks/internal/storage"
)

// Config holds application configuration.
type Config struct {
	Browser       string `yaml:"browser"`        // chrome | chromium | brave | vivaldi | edge
	Profile       string `yaml:"profile"`        // profile directory name, e.g. "Default"
	BookmarksPath string `yaml:"bookmarks_path"` // overrides the browser/profile lookup
	FaviconsPath  string `yaml:"favicons_path"`  // overrides the browser/profile lookup
	Root          string `yaml:"root"`           // bookmark_bar | other | synced
	MaxItems      int    `yaml:"max_items"`      // -1 = unlimited
	CacheDir      string `yaml:"cache_dir"`      // favicon cache, empty = user cache dir

	Keyword         string `yaml:"keyword"`          // prefix of follow-up queries, e.g. "bm"
	PlaceholderIcon string `yaml:"placeholder_icon"` // empty = built-in icon
	FolderIcon      string `yaml:"folder_icon"`      // empty = built-in icon

	LogLevel   string `yaml:"log_level"`  // debug | info | warn | error
	LogFormat  string `yaml:"log_format"` // console | json
	ListenAddr string `yaml:"listen_addr"`

	CheckConcurrency    int      `yaml:"check_concurrency"`
	CheckExcludeDomains []string `yaml:"check_exclude_domains"` // 404s here are treated as private
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Browser:         storage.BrowserChrome,
		Profile:         storage.DefaultProfile,
		Root:            storage.RootBookmarkBar,
		MaxItems:   search.DefaultLimit,
		LogLevel:   "warn",
		LogFormat:  "console",
		ListenAddr: "127.0.0.1:7766",

		CheckConcurrency:    linkcheck.DefaultConcurrency,
		CheckExcludeDomains: []string{"github.com", "gitlab.com"},
	}
}

// Load reads config from the YAML file, applies CHROMEMARKS_* environment
// overrides and then defaults for fields still unset, so a zero value means
// the same thing in either source.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: keep defaults even if the file cannot be created
		_ = Save(path, &config)
	case err != nil:
		return nil, err
	default:
		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		config = fromFile
	}

	applyEnv(&config)
	config = withDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the configuration can locate a bookmarks file.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: root must not be empty")
	}
	if c.BookmarksPath == "" && c.Browser == "" {
		return errors.New("config: either browser or bookmarks_path is required")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// Limit returns the result limit; 0 means unlimited.
func (c *Config) Limit() int {
	if c.MaxItems < 0 {
		return 0
	}
	return c.MaxItems
}

// BookmarksFile returns the bookmarks document to read.
func (c *Config) BookmarksFile() (string, error) {
	if c.BookmarksPath != "" {
		return expandHome(c.BookmarksPath)
	}
	dir, err := storage.ProfileDir(c.Browser, c.Profile)
	if err != nil {
		return "", err
	}
	return storage.BookmarksPath(dir), nil
}

// FaviconsFile returns the icon database. Without an explicit path it sits
// next to the bookmarks file.
func (c *Config) FaviconsFile() (string, error) {
	if c.FaviconsPath != "" {
		return expandHome(c.FaviconsPath)
	}
	bookmarks, err := c.BookmarksFile()
	if err != nil {
		return "", err
	}
	return storage.FaviconsPath(filepath.Dir(bookmarks)), nil
}

// FaviconCacheDir returns the favicon cache directory:
// <user cache dir>/chromemarks/favicons unless configured.
func (c *Config) FaviconCacheDir() (string, error) {
	if c.CacheDir != "" {
		return expandHome(c.CacheDir)
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "chromemarks", "favicons"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/chromemarks/config.yaml
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "chromemarks", "config.yaml"), nil
}

func withDefaults(c Config) Config {
	defaults := DefaultConfig()
	if c.Browser == "" {
		c.Browser = defaults.Browser
	}
	if c.Profile == "" {
		c.Profile = defaults.Profile
	}
	if c.Root == "" {
		c.Root = defaults.Root
	}
	if c.MaxItems == 0 {
		c.MaxItems = defaults.MaxItems
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
	if c.CheckConcurrency <= 0 {
		c.CheckConcurrency = defaults.CheckConcurrency
	}
	if c.CheckExcludeDomains == nil {
		c.CheckExcludeDomains = defaults.CheckExcludeDomains
	}
	return c
}

func applyEnv(c *Config) {
	c.Browser = getenv("CHROMEMARKS_BROWSER", c.Browser)
	c.Profile = getenv("CHROMEMARKS_PROFILE", c.Profile)
	c.BookmarksPath = getenv("CHROMEMARKS_BOOKMARKS", c.BookmarksPath)
	c.FaviconsPath = getenv("CHROMEMARKS_FAVICONS", c.FaviconsPath)
	c.Root = getenv("CHROMEMARKS_ROOT", c.Root)
	c.MaxItems = getenvInt("CHROMEMARKS_MAX_ITEMS", c.MaxItems)
	c.CacheDir = getenv("CHROMEMARKS_CACHE_DIR", c.CacheDir)
	c.Keyword = getenv("CHROMEMARKS_KEYWORD", c.Keyword)
	c.LogLevel = getenv("CHROMEMARKS_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("CHROMEMARKS_LOG_FORMAT", c.LogFormat)
	c.ListenAddr = getenv("CHROMEMARKS_LISTEN_ADDR", c.ListenAddr)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
