package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Browsers whose profile layout is known.
const (
	BrowserChrome   = "chrome"
	BrowserChromium = "chromium"
	BrowserBrave    = "brave"
	BrowserVivaldi  = "vivaldi"
	BrowserEdge     = "edge"
)

// DefaultProfile is the directory name of a browser's first profile.
const DefaultProfile = "Default"

// userDataDirs maps a browser to its user data directory, relative to the
// per-OS base directory.
var userDataDirs = map[string]map[string]string{
	"linux": {
		BrowserChrome:   "google-chrome",
		BrowserChromium: "chromium",
		BrowserBrave:    filepath.Join("BraveSoftware", "Brave-Browser"),
		BrowserVivaldi:  "vivaldi",
		BrowserEdge:     "microsoft-edge",
	},
	"darwin": {
		BrowserChrome:   filepath.Join("Google", "Chrome"),
		BrowserChromium: "Chromium",
		BrowserBrave:    filepath.Join("BraveSoftware", "Brave-Browser"),
		BrowserVivaldi:  "Vivaldi",
		BrowserEdge:     "Microsoft Edge",
	},
	"windows": {
		BrowserChrome:   filepath.Join("Google", "Chrome", "User Data"),
		BrowserChromium: filepath.Join("Chromium", "User Data"),
		BrowserBrave:    filepath.Join("BraveSoftware", "Brave-Browser", "User Data"),
		BrowserVivaldi:  filepath.Join("Vivaldi", "User Data"),
		BrowserEdge:     filepath.Join("Microsoft", "Edge", "User Data"),
	},
}

// ProfileDir returns the profile directory of browser on the current OS,
// e.g. ~/.config/google-chrome/Default on Linux.
func ProfileDir(browser, profile string) (string, error) {
	base, err := userDataBase(runtime.GOOS)
	if err != nil {
		return "", err
	}
	return profileDir(runtime.GOOS, base, browser, profile)
}

func profileDir(goos, base, browser, profile string) (string, error) {
	dirs, ok := userDataDirs[goos]
	if !ok {
		return "", fmt.Errorf("unsupported OS %q", goos)
	}
	dir, ok := dirs[browser]
	if !ok {
		return "", fmt.Errorf("unknown browser %q", browser)
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return filepath.Join(base, dir, profile), nil
}

func userDataBase(goos string) (string, error) {
	if goos == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("LOCALAPPDATA is not set")
	}
	return os.UserConfigDir()
}

// BookmarksPath returns the bookmarks file inside a profile directory.
func BookmarksPath(profileDir string) string {
	return filepath.Join(profileDir, "Bookmarks")
}

// FaviconsPath returns the icon database inside a profile directory.
func FaviconsPath(profileDir string) string {
	return filepath.Join(profileDir, "Favicons")
}
