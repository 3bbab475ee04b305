package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/chromemarks/internal/config"
	"github.com/nikbrunner/chromemarks/internal/exporter"
	"github.com/nikbrunner/chromemarks/internal/favicon"
	"github.com/nikbrunner/chromemarks/internal/httpserver"
	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/linkcheck"
	"github.com/nikbrunner/chromemarks/internal/logger"
	"github.com/nikbrunner/chromemarks/internal/model"
	"github.com/nikbrunner/chromemarks/internal/picker"
	"github.com/nikbrunner/chromemarks/internal/search"
	"github.com/nikbrunner/chromemarks/internal/storage"
	"github.com/nikbrunner/chromemarks/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "query":
			runQuery(strings.Join(os.Args[2:], " "))
			return
		case "find":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: chromemarks find <query>\n")
				os.Exit(1)
			}
			runFind(strings.Join(os.Args[2:], " "))
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "clear-cache":
			runClearCache()
			return
		case "check":
			runCheck()
			return
		case "serve":
			runServe()
			return
		default:
			// Anything else is the initial launcher query
			runTUI(strings.Join(os.Args[1:], " "))
			return
		}
	}

	runTUI("")
}

func printHelp() {
	help := `chromemarks - launcher for Chromium bookmarks

Usage:
  chromemarks                 Open the interactive launcher
  chromemarks <query>         Open the launcher with an initial query
  chromemarks query <query>   Print matching rows (tab separated)
  chromemarks find <query>    Fuzzy search every bookmark → select → open
  chromemarks export [path]   Export bookmarks to HTML
  chromemarks clear-cache     Delete cached favicons
  chromemarks check           Report bookmarks whose URLs no longer answer
  chromemarks serve           Serve the launcher over HTTP
  chromemarks help            Show this help

Query syntax:
  term                Search the top level by name or URL
  Work/               List the Work folder
  Work/Archive/wiki   Search inside Work/Archive
  Matching ignores case and accents; folders come first, then the most
  recently used bookmarks.

Launcher Keybindings:
  ↑/↓, ctrl+p/n   Move up/down
  Enter           Enter folder / open bookmark
  shift+tab       Go to the parent folder
  ctrl+y          Copy URL to clipboard
  esc             Quit

Configuration:
  ~/.config/chromemarks/config.yaml (override with CHROMEMARKS_CONFIG)
`
	fmt.Print(help)
}

// app bundles everything a command needs.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	store    *storage.ChromeStore
	favicons *favicon.Store
	launcher *launcher.Launcher
}

// setup loads the configuration and wires the launcher. Failures are fatal.
func setup() *app {
	configPath := os.Getenv("CHROMEMARKS_CONFIG")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigFilePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat == "console")

	bookmarksPath, err := cfg.BookmarksFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating bookmarks: %v\n", err)
		os.Exit(1)
	}
	store := storage.NewChromeStore(bookmarksPath, cfg.Root)

	faviconsPath, err := cfg.FaviconsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating favicons: %v\n", err)
		os.Exit(1)
	}
	cacheDir, err := cfg.FaviconCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting cache dir: %v\n", err)
		os.Exit(1)
	}
	favicons, err := favicon.New(favicon.Options{
		CacheDir:     cacheDir,
		DatabasePath: faviconsPath,
		Placeholder:  cfg.PlaceholderIcon,
		FolderIcon:   cfg.FolderIcon,
		Logger:       log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating favicon cache: %v\n", err)
		os.Exit(1)
	}

	l := launcher.New(launcher.Params{
		Store:           store,
		Icons:           favicons,
		Opener:          newBrowserOpener(cfg.Browser),
		Logger:          log,
		Limit:           cfg.Limit(),
		Keyword:         cfg.Keyword,
		Profile:         cfg.Profile,
		FolderIcon:      favicons.FolderIcon(),
		PlaceholderIcon: favicons.Placeholder(),
	})

	log.Debug("configured",
		logger.String("bookmarks", bookmarksPath),
		logger.String("favicons", faviconsPath),
		logger.String("cache", cacheDir),
		logger.String("root", cfg.Root))

	return &app{cfg: cfg, log: log, store: store, favicons: favicons, launcher: l}
}

// close waits for pending last-used updates and flushes the log.
func (a *app) close() {
	a.launcher.Wait()
	_ = a.log.Sync()
}

// runTUI runs the interactive launcher and opens the chosen bookmark.
func runTUI(query string) {
	a := setup()
	defer a.close()

	ui := tui.NewApp(tui.AppParams{
		Searcher: a.launcher,
		Query:    query,
		Keyword:  a.cfg.Keyword,
	})
	p := tea.NewProgram(ui, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	chosen := finalModel.(tui.App).Chosen()
	if chosen == nil {
		return
	}
	if _, err := a.launcher.Select(*chosen); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bookmark: %v\n", err)
	}
}

// runQuery prints one row per result: kind, name, description, icon and
// either the follow-up query or the URL.
func runQuery(query string) {
	a := setup()
	defer a.close()

	for _, item := range a.launcher.Search(query) {
		target := item.Query
		if item.Action != nil {
			target = item.Action.URL
		}
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", item.Kind, item.Name, item.Description, item.Icon, target)
	}
}

// runFind performs a fuzzy search over every bookmark and opens the selection.
func runFind(query string) {
	a := setup()
	defer a.close()

	root, err := a.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	results := search.FuzzyFind(root, query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	selected := results[0].Bookmark
	if len(results) == 1 {
		fmt.Printf("Opening: %s\n", selected.Name)
	} else {
		program := tea.NewProgram(picker.New(results, query))
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		return
	}

	err = a.launcher.Open(launcher.OpenAction{
		Profile:    a.cfg.Profile,
		URL:        selected.URL,
		BookmarkID: selected.ID,
		StorePath:  a.store.Path(),
		RootKey:    a.store.RootKey(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening bookmark: %v\n", err)
	}
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	a := setup()
	defer a.close()

	root, err := a.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(root)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	folders, bookmarks := countNodes(root)
	fmt.Printf("Exported %d bookmarks, %d folders to %s\n", bookmarks, folders, outputPath)
}

// countNodes counts the folders and bookmarks below root.
func countNodes(root *model.Folder) (folders, bookmarks int) {
	for _, n := range root.Children {
		switch n := n.(type) {
		case *model.Folder:
			f, b := countNodes(n)
			folders += f + 1
			bookmarks += b
		case *model.Bookmark:
			bookmarks++
		}
	}
	return folders, bookmarks
}

func runClearCache() {
	a := setup()
	defer a.close()

	removed, err := a.favicons.ClearCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing cache: %v\n", err)
		os.Exit(1)
	}
	if removed {
		fmt.Printf("Cleared %s\n", a.favicons.CacheDir())
	} else {
		fmt.Println("Cache was already empty")
	}
}

// runCheck probes every bookmark URL and lists the dead and unreachable ones.
func runCheck() {
	a := setup()
	defer a.close()

	root, err := a.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checker := linkcheck.New(linkcheck.Options{
		Concurrency:    a.cfg.CheckConcurrency,
		ExcludeDomains: a.cfg.CheckExcludeDomains,
	})
	targets := linkcheck.Targets(root)
	results := checker.Check(ctx, targets, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
	})
	if len(targets) > 0 {
		fmt.Fprintln(os.Stderr)
	}

	dead, unreachable := 0, 0
	for _, r := range results {
		if r.Status == linkcheck.Healthy {
			continue
		}
		if r.Status == linkcheck.Dead {
			dead++
		} else {
			unreachable++
		}
		detail := r.Error
		if detail == "" {
			detail = strconv.Itoa(r.StatusCode)
		}
		location := strings.Join(append(r.Path, r.Bookmark.Name), "/")
		fmt.Printf("%s\t%s\t%s\t%s\n", r.Status, detail, location, r.Bookmark.URL)
	}
	fmt.Printf("Checked %d bookmarks: %d dead, %d unreachable\n", len(results), dead, unreachable)
}

// runServe serves the launcher over HTTP until interrupted.
func runServe() {
	a := setup()
	defer a.close()

	srv := httpserver.New(a.cfg.ListenAddr, httpserver.Deps{
		Launcher: a.launcher,
		Favicons: a.favicons,
		Logger:   a.log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running server: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			a.log.Error("shutdown failed", logger.Error(err))
		}
	}
}
