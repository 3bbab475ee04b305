package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/storage"
)

// browserBinaries lists the executables tried per browser on Linux.
var browserBinaries = map[string][]string{
	storage.BrowserChrome:   {"google-chrome", "google-chrome-stable"},
	storage.BrowserChromium: {"chromium", "chromium-browser"},
	storage.BrowserBrave:    {"brave-browser", "brave"},
	storage.BrowserVivaldi:  {"vivaldi", "vivaldi-stable"},
	storage.BrowserEdge:     {"microsoft-edge", "microsoft-edge-stable"},
}

// browserOpener opens bookmarks in the configured browser profile when the
// browser can be found, and in the system default browser otherwise.
type browserOpener struct {
	browser  string
	goos     string
	lookPath func(string) (string, error)
}

func newBrowserOpener(browser string) browserOpener {
	return browserOpener{browser: browser, goos: runtime.GOOS, lookPath: exec.LookPath}
}

func (o browserOpener) Open(action launcher.OpenAction) error {
	name, args := o.command(action)
	if name == "" {
		return fmt.Errorf("opening URLs is not supported on %s", o.goos)
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

func (o browserOpener) command(action launcher.OpenAction) (string, []string) {
	if o.goos == "linux" && action.Profile != "" {
		for _, bin := range browserBinaries[o.browser] {
			if path, err := o.lookPath(bin); err == nil {
				return path, []string{"--profile-directory=" + action.Profile, "--", action.URL}
			}
		}
	}

	switch o.goos {
	case "darwin":
		return "open", []string{action.URL}
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{action.URL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", action.URL}
	}
	return "", nil
}
