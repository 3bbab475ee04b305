package launcher_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/model"
	"github.com/nikbrunner/chromemarks/internal/storage"
)

func copyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "storage", "testdata", "Bookmarks"))
	assert.NilError(t, err)
	path := filepath.Join(t.TempDir(), "Bookmarks")
	assert.NilError(t, os.WriteFile(path, data, 0600))
	return path
}

type fakeIcons struct{}

func (fakeIcons) Icons(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = "icon:" + u
	}
	return out
}

type fakeOpener struct {
	mu     sync.Mutex
	opened []launcher.OpenAction
	err    error
}

func (o *fakeOpener) Open(action launcher.OpenAction) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, action)
	return o.err
}

func newLauncher(t *testing.T, path string, opener launcher.Opener, keyword string) *launcher.Launcher {
	t.Helper()
	return launcher.New(launcher.Params{
		Store:           storage.NewChromeStore(path, storage.RootBookmarkBar),
		Icons:           fakeIcons{},
		Opener:          opener,
		Limit:           10,
		Keyword:         keyword,
		Profile:         "Default",
		FolderIcon:      "folder.png",
		PlaceholderIcon: "browser.png",
	})
}

func names(items []launcher.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSearch_RootListing(t *testing.T) {
	l := newLauncher(t, copyFixture(t), nil, "")

	items := l.Search("")
	assert.DeepEqual(t, names(items), []string{"Work", "Café", "GitHub", "Hacker News"})

	work := items[0]
	assert.Equal(t, work.Kind, launcher.ItemFolder)
	assert.Equal(t, work.Icon, "folder.png")
	assert.Equal(t, work.Query, "Work/")
	assert.Assert(t, work.Action == nil)

	gh := items[2]
	assert.Equal(t, gh.Kind, launcher.ItemBookmark)
	assert.Equal(t, gh.Description, "github.com")
	assert.Equal(t, gh.Icon, "icon:https://github.com")
	assert.Equal(t, gh.LastUsed, int64(13345000000000000))
	assert.Equal(t, gh.Action.URL, "https://github.com")
	assert.Equal(t, gh.Action.BookmarkID, "30")
	assert.Equal(t, gh.Action.Profile, "Default")
	assert.Equal(t, gh.Action.RootKey, storage.RootBookmarkBar)
}

func TestSearch_FolderNavigationWithKeyword(t *testing.T) {
	l := newLauncher(t, copyFixture(t), nil, "bm")

	root := l.Search("bm ")
	assert.Equal(t, root[0].Query, "bm Work/")

	items := l.Search(root[0].Query)
	assert.DeepEqual(t, names(items), []string{"Archive", "Jira", "Docs"})
	assert.Equal(t, items[0].Query, "bm Work/Archive/")
	assert.Equal(t, items[2].Description, "example.com/docs")
	assert.Equal(t, items[2].Icon, "icon:https://example.com/docs")
}

func TestSearch_TermInsideFolder(t *testing.T) {
	l := newLauncher(t, copyFixture(t), nil, "")

	items := l.Search("work/ARCH")
	assert.DeepEqual(t, names(items), []string{"Archive"})
	assert.Equal(t, items[0].Query, "work/Archive/")
}

func TestSearch_MissingFolderIsEmpty(t *testing.T) {
	l := newLauncher(t, copyFixture(t), nil, "")

	items := l.Search("NoSuchFolder/term")
	assert.Equal(t, len(items), 0)
}

func TestSearch_Limit(t *testing.T) {
	l := launcher.New(launcher.Params{
		Store: storage.NewChromeStore(copyFixture(t), storage.RootBookmarkBar),
		Limit: 2,
	})

	items := l.Search("")
	assert.DeepEqual(t, names(items), []string{"Work", "Café"})
}

func TestSearch_MalformedStoreBecomesErrorItem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks")
	assert.NilError(t, os.WriteFile(path, []byte("{broken"), 0600))
	l := newLauncher(t, path, nil, "")

	items := l.Search("anything")
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Kind, launcher.ItemError)
	assert.Equal(t, items[0].Name, "Error reading bookmarks")
	assert.Equal(t, items[0].Icon, "browser.png")
	assert.Check(t, is.Contains(items[0].Description, "malformed bookmark store"))
}

func TestSearch_MissingStoreBecomesErrorItem(t *testing.T) {
	l := newLauncher(t, filepath.Join(t.TempDir(), "missing"), nil, "")

	items := l.Search("")
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Kind, launcher.ItemError)
}

func TestSelect_Folder(t *testing.T) {
	opener := &fakeOpener{}
	l := newLauncher(t, copyFixture(t), opener, "")

	next, err := l.Select(l.Search("")[0])
	assert.NilError(t, err)
	assert.Equal(t, next, "Work/")
	assert.Equal(t, len(opener.opened), 0)
}

func TestSelect_BookmarkOpensAndRecordsUse(t *testing.T) {
	path := copyFixture(t)
	opener := &fakeOpener{}
	l := newLauncher(t, path, opener, "")

	hn := l.Search("hacker")[0]
	assert.Equal(t, hn.LastUsed, int64(0))

	next, err := l.Select(hn)
	assert.NilError(t, err)
	assert.Equal(t, next, "")
	l.Wait()

	assert.Equal(t, len(opener.opened), 1)
	assert.Equal(t, opener.opened[0].URL, "https://news.ycombinator.com")

	// Recently used now, so it ranks above GitHub.
	items := l.Search("")
	assert.DeepEqual(t, names(items), []string{"Work", "Café", "Hacker News", "GitHub"})
}

func TestSelect_OpenerErrorStillRecordsUse(t *testing.T) {
	path := copyFixture(t)
	opener := &fakeOpener{err: errors.New("no browser")}
	l := newLauncher(t, path, opener, "")

	_, err := l.Select(l.Search("hacker")[0])
	assert.ErrorContains(t, err, "no browser")
	l.Wait()

	assert.Assert(t, l.Search("hacker")[0].LastUsed > 0)
}

func TestOpenBookmark_ResolvesFromStore(t *testing.T) {
	path := copyFixture(t)
	opener := &fakeOpener{}
	l := newLauncher(t, path, opener, "")

	action, err := l.OpenBookmark("31")
	assert.NilError(t, err)
	l.Wait()

	want := launcher.OpenAction{
		Profile:    "Default",
		URL:        "https://news.ycombinator.com",
		BookmarkID: "31",
		StorePath:  path,
		RootKey:    storage.RootBookmarkBar,
	}
	assert.DeepEqual(t, action, want)
	assert.DeepEqual(t, opener.opened, []launcher.OpenAction{want})
	assert.Assert(t, l.Search("hacker")[0].LastUsed > 0)
}

func TestOpenBookmark_UnknownID(t *testing.T) {
	path := copyFixture(t)
	opener := &fakeOpener{}
	l := newLauncher(t, path, opener, "")

	for _, id := range []string{"999", "10", ""} {
		_, err := l.OpenBookmark(id)
		assert.Check(t, errors.Is(err, launcher.ErrBookmarkNotFound), "id %q: %v", id, err)
	}
	l.Wait()
	assert.Equal(t, len(opener.opened), 0)
}

func TestOpen_RejectsUnsupportedURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"browser flag", "--gpu-launcher=/bin/sh"},
		{"javascript", "javascript:alert(1)"},
		{"data", "data:text/html,<h1>x</h1>"},
		{"relative", "github.com"},
		{"no host", "https://"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := copyFixture(t)
			before, err := os.ReadFile(path)
			assert.NilError(t, err)
			opener := &fakeOpener{}
			l := newLauncher(t, path, opener, "")

			err = l.Open(launcher.OpenAction{URL: tt.url, BookmarkID: "30", StorePath: path, RootKey: storage.RootBookmarkBar})
			l.Wait()

			assert.Check(t, errors.Is(err, launcher.ErrUnsupportedURL), "got %v", err)
			assert.Equal(t, len(opener.opened), 0)
			after, err := os.ReadFile(path)
			assert.NilError(t, err)
			assert.Equal(t, string(after), string(before))
		})
	}
}

func TestOpen_FileURL(t *testing.T) {
	opener := &fakeOpener{}
	l := newLauncher(t, copyFixture(t), opener, "")

	assert.NilError(t, l.Open(launcher.OpenAction{URL: "file:///home/me/notes.html"}))
	l.Wait()
	assert.Equal(t, len(opener.opened), 1)
}

func TestOpen_OtherStoreIsNotRewritten(t *testing.T) {
	path := copyFixture(t)
	other := copyFixture(t)
	before, err := os.ReadFile(other)
	assert.NilError(t, err)
	opener := &fakeOpener{}
	l := newLauncher(t, path, opener, "")

	err = l.Open(launcher.OpenAction{URL: "https://github.com", BookmarkID: "30", StorePath: other, RootKey: storage.RootBookmarkBar})
	assert.NilError(t, err)
	l.Wait()

	after, err := os.ReadFile(other)
	assert.NilError(t, err)
	assert.Equal(t, string(after), string(before))
	assert.Equal(t, l.Search("github")[0].LastUsed, int64(13345000000000000))
}

type failingStore struct{}

func (failingStore) Load() (*model.Folder, error) {
	return &model.Folder{Children: []model.Node{
		&model.Bookmark{ID: "1", Name: "Example", URL: "https://example.com"},
	}}, nil
}
func (failingStore) MarkUsed(string) (bool, error) { return false, storage.ErrPersistence }
func (failingStore) Path() string                  { return "fake" }
func (failingStore) RootKey() string               { return storage.RootBookmarkBar }

func TestSelect_PersistenceErrorDoesNotBlockOpen(t *testing.T) {
	opener := &fakeOpener{}
	l := launcher.New(launcher.Params{Store: failingStore{}, Opener: opener, PlaceholderIcon: "p.png"})

	items := l.Search("")
	assert.Equal(t, items[0].Icon, "p.png")

	_, err := l.Select(items[0])
	assert.NilError(t, err)
	l.Wait()

	assert.Equal(t, len(opener.opened), 1)
}

func TestSelect_ErrorItemIsNoop(t *testing.T) {
	opener := &fakeOpener{}
	l := newLauncher(t, filepath.Join(t.TempDir(), "missing"), opener, "")

	next, err := l.Select(l.Search("")[0])
	assert.NilError(t, err)
	assert.Equal(t, next, "")
	assert.Equal(t, len(opener.opened), 0)
}

func TestItemKind_MarshalText(t *testing.T) {
	for kind, want := range map[launcher.ItemKind]string{
		launcher.ItemFolder:   "folder",
		launcher.ItemBookmark: "bookmark",
		launcher.ItemError:    "error",
	} {
		got, err := kind.MarshalText()
		assert.NilError(t, err)
		assert.Equal(t, string(got), want)
	}
}
