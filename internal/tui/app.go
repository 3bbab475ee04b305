package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/chromemarks/internal/launcher"
)

// Searcher answers launcher queries.
type Searcher interface {
	Search(raw string) []launcher.Item
}

// ResultsMsg carries the rows found for Query.
type ResultsMsg struct {
	Query string
	Items []launcher.Item
}

// App is the bubbletea model for the interactive launcher. Every edit starts
// a search in a command; results for anything but the current query are
// dropped. The app quits once a bookmark is chosen and leaves opening it to
// the caller.
type App struct {
	searcher Searcher
	keys     KeyMap
	styles   Styles
	keyword  string
	copyText func(string) error

	input     textinput.Model
	items     []launcher.Item
	cursor    int
	status    string
	searching bool

	chosen    *launcher.Item
	cancelled bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Searcher Searcher
	Query    string  // initial query
	Keyword  string  // kept in front of the query when moving to a parent folder
	Keys     *KeyMap // optional, uses default if nil
	Styles   *Styles // optional, uses default if nil

	// CopyText writes to the system clipboard. Defaults to clipboard.WriteAll.
	CopyText func(string) error
}

// NewApp creates a new App. The initial query runs from Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	copyText := params.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	input := textinput.New()
	input.Prompt = "› "
	input.PromptStyle = styles.Prompt
	input.Placeholder = "folder/sub/term"
	input.SetValue(params.Query)
	input.CursorEnd()
	input.Focus()

	return App{
		searcher: params.Searcher,
		keys:     keys,
		styles:   styles,
		keyword:  params.Keyword,
		copyText: copyText,
		input:    input,
		width:    80,
		height:   24,

		searching: true,
	}
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Query returns the current query text.
func (a App) Query() string {
	return a.input.Value()
}

// Items returns the current result rows.
func (a App) Items() []launcher.Item {
	return a.items
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Status returns the transient message shown above the hints.
func (a App) Status() string {
	return a.status
}

// Chosen returns the bookmark picked with Enter, or nil.
func (a App) Chosen() *launcher.Item {
	return a.chosen
}

// Cancelled reports whether the user quit without choosing.
func (a App) Cancelled() bool {
	return a.cancelled
}

// Searching reports whether results for the current query are pending.
func (a App) Searching() bool {
	return a.searching
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.search())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case ResultsMsg:
		if msg.Query != a.input.Value() {
			return a, nil
		}
		a.items = msg.Items
		a.cursor = 0
		a.searching = false
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.cancelled = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Down):
			if len(a.items) > 0 && a.cursor < len(a.items)-1 {
				a.cursor++
			}
			return a, nil

		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil

		case key.Matches(msg, a.keys.Select):
			return a.selectCurrent()

		case key.Matches(msg, a.keys.Parent):
			return a, a.setQuery(parentQuery(a.input.Value(), a.keyword))

		case key.Matches(msg, a.keys.YankURL):
			a.yankURL()
			return a, nil
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		cmd = tea.Batch(cmd, a.queryChanged())
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) current() (launcher.Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return launcher.Item{}, false
	}
	return a.items[a.cursor], true
}

func (a App) selectCurrent() (tea.Model, tea.Cmd) {
	item, ok := a.current()
	if !ok {
		return a, nil
	}

	switch item.Kind {
	case launcher.ItemFolder:
		return a, a.setQuery(item.Query)
	case launcher.ItemBookmark:
		a.chosen = &item
		return a, tea.Quit
	default:
		return a, nil
	}
}

func (a *App) yankURL() {
	item, ok := a.current()
	if !ok || item.Action == nil {
		return
	}
	if err := a.copyText(item.Action.URL); err != nil {
		a.status = "Copy failed: " + err.Error()
		return
	}
	a.status = "Copied " + item.Action.URL
}

func (a *App) setQuery(q string) tea.Cmd {
	a.input.SetValue(q)
	a.input.CursorEnd()
	return a.queryChanged()
}

func (a *App) queryChanged() tea.Cmd {
	a.status = ""
	a.searching = true
	return a.search()
}

// search returns a command running the current query off the update loop.
func (a App) search() tea.Cmd {
	searcher, q := a.searcher, a.input.Value()
	return func() tea.Msg {
		return ResultsMsg{Query: q, Items: searcher.Search(q)}
	}
}

// parentQuery drops the last path segment or search term from q, keeping a
// leading keyword in place.
func parentQuery(q, keyword string) string {
	prefix := ""
	if keyword != "" {
		trimmed := strings.TrimLeft(q, " ")
		if rest, ok := strings.CutPrefix(trimmed, keyword+" "); ok {
			prefix, q = keyword+" ", rest
		}
	}

	q = strings.TrimRight(q, "/ ")
	i := strings.LastIndex(q, "/")
	if i < 0 {
		return prefix
	}
	return prefix + q[:i+1]
}
