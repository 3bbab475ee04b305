package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/tui/layout"
)

// prompt, blank line, blank line, status/hints and the app padding.
const chromeHeight = 5

// nameShare is the percentage of a row given to the item name.
const nameShare = 45

func (a App) renderView() string {
	var b strings.Builder

	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	b.WriteString(a.renderItems())
	b.WriteString("\n")

	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
	} else {
		b.WriteString(a.renderHints())
	}

	return a.styles.App.Render(b.String())
}

func (a App) renderItems() string {
	if len(a.items) == 0 {
		if a.searching {
			return a.styles.Empty.Render("Searching…") + "\n"
		}
		return a.styles.Empty.Render("No matches") + "\n"
	}

	rowWidth := a.width - 6
	if rowWidth < 10 {
		rowWidth = 10
	}

	start, end := a.visibleRange()
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderItem(a.items[i], i == a.cursor, rowWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRange returns the window of rows that fits the terminal and
// contains the cursor.
func (a App) visibleRange() (int, int) {
	rows := a.height - chromeHeight
	if rows < 1 {
		rows = 1
	}
	if len(a.items) <= rows {
		return 0, len(a.items)
	}

	start := 0
	if a.cursor >= rows {
		start = a.cursor - rows + 1
	}
	return start, start + rows
}

func (a App) renderItem(item launcher.Item, selected bool, width int) string {
	name := item.Name
	if item.Kind == launcher.ItemFolder {
		name += "/"
	}
	line := layout.TwoColumns(name, item.Description, width, nameShare)

	switch {
	case selected:
		return a.styles.ItemSelected.Render("› " + line)
	case item.Kind == launcher.ItemError:
		return a.styles.Error.Render("  " + line)
	case item.Kind == launcher.ItemFolder:
		return a.styles.Item.Inherit(a.styles.Folder).Render("  " + line)
	default:
		return a.styles.Item.Render("  " + line)
	}
}

func (a App) renderHints() string {
	hints := a.keys.hints()
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		help := h.Help()
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.HintKey.Render(help.Key), " ", a.styles.HintDesc.Render(help.Desc)))
	}
	return strings.Join(parts, "  ")
}
