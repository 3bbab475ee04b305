package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the launcher key bindings. Printable keys go to the query
// input, so navigation uses arrows and control keys.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Parent  key.Binding
	YankURL key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/ctrl+p", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Parent: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "parent folder"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// hints returns the bindings shown in the footer, in display order.
func (k KeyMap) hints() []key.Binding {
	return []key.Binding{k.Select, k.Parent, k.YankURL, k.Quit}
}
