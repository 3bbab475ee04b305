package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/chromemarks/internal/config"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, config.DefaultConfig())

	_, err = os.Stat(path)
	assert.NilError(t, err, "expected config file to be created")

	// Reloading the written file yields the same config.
	again, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *again, *cfg)
}

func TestLoad_AppliesDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "browser: brave\nroot: other\nkeyword: bm\n"
	assert.NilError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Browser, "brave")
	assert.Equal(t, cfg.Root, "other")
	assert.Equal(t, cfg.Keyword, "bm")
	assert.Equal(t, cfg.Profile, "Default")
	assert.Equal(t, cfg.MaxItems, 10)
	assert.Equal(t, cfg.LogFormat, "console")
	assert.Equal(t, cfg.CheckConcurrency, 8)
	assert.DeepEqual(t, cfg.CheckExcludeDomains, []string{"github.com", "gitlab.com"})
}

func TestLoad_EmptyExcludeListKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("check_exclude_domains: []\n"), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, len(cfg.CheckExcludeDomains), 0)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("max_items: 5\n"), 0644))

	t.Setenv("CHROMEMARKS_MAX_ITEMS", "3")
	t.Setenv("CHROMEMARKS_ROOT", "synced")
	t.Setenv("CHROMEMARKS_BOOKMARKS", "/tmp/Bookmarks")

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.MaxItems, 3)
	assert.Equal(t, cfg.Root, "synced")
	assert.Equal(t, cfg.BookmarksPath, "/tmp/Bookmarks")
}

func TestLoad_InvalidEnvIntIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("max_items: 7\n"), 0644))
	t.Setenv("CHROMEMARKS_MAX_ITEMS", "lots")

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.MaxItems, 7)
}

func TestLoad_MaxItemsSameFromFileAndEnv(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		env       string
		wantItems int
		wantLimit int
	}{
		{"file zero", "max_items: 0\n", "", 10, 10},
		{"env zero", "", "0", 10, 10},
		{"env zero over file", "max_items: 4\n", "0", 10, 10},
		{"file unlimited", "max_items: -1\n", "", -1, 0},
		{"env unlimited", "", "-1", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			assert.NilError(t, os.WriteFile(path, []byte("browser: chrome\n"+tt.yaml), 0644))
			if tt.env != "" {
				t.Setenv("CHROMEMARKS_MAX_ITEMS", tt.env)
			}

			cfg, err := config.Load(path)
			assert.NilError(t, err)
			assert.Equal(t, cfg.MaxItems, tt.wantItems)
			assert.Equal(t, cfg.Limit(), tt.wantLimit)
		})
	}
}

func TestLoad_IconsDefaultToBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("folder_icon: /usr/share/icons/folder.png\n"), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.PlaceholderIcon, "")
	assert.Equal(t, cfg.FolderIcon, "/usr/share/icons/folder.png")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"invalid yaml", "browser: [unterminated\n", "parse config"},
		{"bad log format", "log_format: xml\n", "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			assert.NilError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := config.Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestConfig_Limit(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, cfg.Limit(), 10)

	cfg.MaxItems = -1
	assert.Equal(t, cfg.Limit(), 0)
}

func TestConfig_Files(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BookmarksPath = "/profiles/Work/Bookmarks"

	bookmarks, err := cfg.BookmarksFile()
	assert.NilError(t, err)
	assert.Equal(t, bookmarks, "/profiles/Work/Bookmarks")

	favicons, err := cfg.FaviconsFile()
	assert.NilError(t, err)
	assert.Equal(t, favicons, filepath.Join("/profiles/Work", "Favicons"))

	cfg.FaviconsPath = "/elsewhere/Favicons"
	favicons, err = cfg.FaviconsFile()
	assert.NilError(t, err)
	assert.Equal(t, favicons, "/elsewhere/Favicons")
}

func TestConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.DefaultConfig()
	cfg.CacheDir = "~/icons"

	dir, err := cfg.FaviconCacheDir()
	assert.NilError(t, err)
	assert.Equal(t, dir, filepath.Join(home, "icons"))
}
