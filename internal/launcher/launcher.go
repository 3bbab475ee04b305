package launcher

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/nikbrunner/chromemarks/internal/logger"
	"github.com/nikbrunner/chromemarks/internal/model"
	"github.com/nikbrunner/chromemarks/internal/search"
	"github.com/nikbrunner/chromemarks/internal/storage"
)

var (
	// ErrBookmarkNotFound is returned when a bookmark id is not in the store.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrUnsupportedURL is returned for URLs that are not http, https or file.
	ErrUnsupportedURL = errors.New("unsupported bookmark url")
)

// openSchemes lists the URL schemes handed to the opener.
var openSchemes = map[string]bool{"http": true, "https": true, "file": true}

// Store is the bookmark source a Launcher reads from.
type Store interface {
	storage.Storage
	Path() string
	RootKey() string
}

// IconResolver maps bookmark URLs to icon paths, one per URL.
type IconResolver interface {
	Icons(urls []string) []string
}

// Opener opens a bookmark, typically in a browser.
type Opener interface {
	Open(action OpenAction) error
}

// Params holds parameters for creating a new Launcher.
type Params struct {
	Store  Store
	Icons  IconResolver  // optional
	Opener Opener        // optional
	Logger logger.Logger // optional

	Limit           int    // 0 = unlimited
	Keyword         string // prefix of follow-up queries
	Profile         string
	FolderIcon      string
	PlaceholderIcon string // error rows, and bookmarks when Icons is nil
}

// Launcher answers queries and handles selections for a host.
type Launcher struct {
	store       Store
	icons       IconResolver
	opener      Opener
	log         logger.Logger
	limit       int
	keyword     string
	profile     string
	folderIcon  string
	placeholder string

	pending sync.WaitGroup
}

// New creates a Launcher with the given parameters.
func New(params Params) *Launcher {
	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Launcher{
		store:       params.Store,
		icons:       params.Icons,
		opener:      params.Opener,
		log:         log.With(logger.String("component", "launcher")),
		limit:       params.Limit,
		keyword:     params.Keyword,
		profile:     params.Profile,
		folderIcon:  params.FolderIcon,
		placeholder: params.PlaceholderIcon,
	}
}

// Search answers a raw query. The tree is re-read on every call. Failures
// to load it come back as a single error item, never as an error.
func (l *Launcher) Search(raw string) []Item {
	root, err := l.store.Load()
	if err != nil {
		l.log.Error("failed to load bookmarks", logger.String("path", l.store.Path()), logger.Error(err))
		return []Item{{
			Kind:        ItemError,
			Name:        "Error reading bookmarks",
			Description: err.Error(),
			Icon:        l.placeholder,
		}}
	}

	res := search.Resolve(root, l.stripKeyword(raw))
	if !res.Found {
		l.log.Debug("folder not found", logger.String("query", raw))
	}
	ranked := search.Rank(res.Candidates, l.limit)

	var urls []string
	for _, c := range ranked {
		if !c.IsFolder() {
			urls = append(urls, c.Bookmark.URL)
		}
	}
	icons := l.resolveIcons(urls)

	items := make([]Item, 0, len(ranked))
	for _, c := range ranked {
		if c.IsFolder() {
			items = append(items, Item{
				Kind:        ItemFolder,
				Name:        c.Folder.Name,
				Description: "Open folder",
				Icon:        l.folderIcon,
				Query:       l.followUp(res.BasePath + c.Folder.Name + "/"),
			})
			continue
		}

		b := c.Bookmark
		items = append(items, Item{
			Kind:        ItemBookmark,
			Name:        b.Name,
			Description: trimURLPrefix(b.URL),
			Icon:        icons[0],
			LastUsed:    b.LastUsed,
			Action:      l.action(b),
		})
		icons = icons[1:]
	}

	return items
}

// Select handles a chosen item. Folders return the query to issue next.
// Bookmarks are opened and their last-used time is recorded in the
// background; call Wait before exiting to let the update finish.
func (l *Launcher) Select(item Item) (string, error) {
	switch item.Kind {
	case ItemFolder:
		return item.Query, nil
	case ItemBookmark:
		if item.Action == nil {
			return "", nil
		}
		return "", l.Open(*item.Action)
	default:
		return "", nil
	}
}

// OpenBookmark looks up a bookmark by id in the launcher's store and opens
// it with the configured profile. The action that was opened is returned.
func (l *Launcher) OpenBookmark(id string) (OpenAction, error) {
	root, err := l.store.Load()
	if err != nil {
		return OpenAction{}, err
	}
	b, ok := root.FindBookmark(id)
	if !ok {
		return OpenAction{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	action := *l.action(b)
	return action, l.Open(action)
}

// Open records the bookmark as used and opens it. A failed update is
// logged and never prevents opening. URLs outside openSchemes are refused
// before anything runs.
func (l *Launcher) Open(action OpenAction) error {
	if err := checkURL(action.URL); err != nil {
		return err
	}

	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		l.markUsed(action)
	}()

	if l.opener == nil {
		return nil
	}
	return l.opener.Open(action)
}

// Wait blocks until background last-used updates have finished.
func (l *Launcher) Wait() {
	l.pending.Wait()
}

func (l *Launcher) markUsed(action OpenAction) {
	log := l.log.With(logger.String("bookmark_id", action.BookmarkID))

	if action.StorePath != l.store.Path() || action.RootKey != l.store.RootKey() {
		log.Warn("not recording use for a bookmark from another store",
			logger.String("store_path", action.StorePath), logger.String("root_key", action.RootKey))
		return
	}

	found, err := l.store.MarkUsed(action.BookmarkID)
	if err != nil {
		log.Error("failed to record bookmark use", logger.Error(err))
		return
	}
	if !found {
		log.Warn("bookmark not found while recording use")
		return
	}
	log.Debug("recorded bookmark use")
}

func (l *Launcher) action(b *model.Bookmark) *OpenAction {
	return &OpenAction{
		Profile:    l.profile,
		URL:        b.URL,
		BookmarkID: b.ID,
		StorePath:  l.store.Path(),
		RootKey:    l.store.RootKey(),
	}
}

// checkURL accepts absolute http, https and file URLs only.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !openSchemes[u.Scheme] {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	if u.Scheme != "file" && u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return nil
}

func (l *Launcher) resolveIcons(urls []string) []string {
	if l.icons == nil {
		icons := make([]string, len(urls))
		for i := range icons {
			icons[i] = l.placeholder
		}
		return icons
	}
	return l.icons.Icons(urls)
}

// followUp prefixes a query with the keyword so hosts can re-issue it verbatim.
func (l *Launcher) followUp(query string) string {
	if l.keyword == "" {
		return query
	}
	return l.keyword + " " + query
}

func (l *Launcher) stripKeyword(raw string) string {
	if l.keyword == "" {
		return raw
	}
	trimmed := strings.TrimLeft(raw, " ")
	if trimmed == l.keyword {
		return ""
	}
	if rest, ok := strings.CutPrefix(trimmed, l.keyword+" "); ok {
		return rest
	}
	return raw
}
