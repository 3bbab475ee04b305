package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the number of runes left after stripping ANSI codes.
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// Truncate shortens plain text to maxWidth runes, ending in an ellipsis
// when anything was cut.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return Ellipsis
	}
	return string(runes[:maxWidth-1]) + Ellipsis
}

// TwoColumns lays out name and detail on one line of at most width runes.
// The name keeps up to nameShare percent of the line; the detail gets the
// rest and is dropped entirely when no room is left.
func TwoColumns(name, detail string, width, nameShare int) string {
	if width <= 0 {
		return ""
	}
	if detail == "" {
		return Truncate(name, width)
	}

	nameWidth := width * nameShare / 100
	if n := utf8.RuneCountInString(name); n < nameWidth {
		nameWidth = n
	}
	name = Truncate(name, nameWidth)

	// two spaces between the columns
	rest := width - utf8.RuneCountInString(name) - 2
	if rest <= 0 {
		return name
	}
	return name + strings.Repeat(" ", 2) + Truncate(detail, rest)
}
