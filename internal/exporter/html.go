package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/chromemarks/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the tree below root to Netscape bookmark HTML format.
// Sibling order is kept; bookmarks with a recorded use get LAST_VISIT.
func ExportHTML(root *model.Folder) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, root, 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes the children of a folder.
func writeItems(b *strings.Builder, folder *model.Folder, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, child := range folder.Children {
		switch n := child.(type) {
		case *model.Folder:
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(n.Name))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeItems(b, n, indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)

		case *model.Bookmark:
			if n.LastUsed > 0 {
				fmt.Fprintf(b,
					"%s<DT><A HREF=\"%s\" LAST_VISIT=\"%d\">%s</A>\n",
					prefix,
					html.EscapeString(n.URL),
					n.LastUsedTime().Unix(),
					html.EscapeString(n.Name),
				)
				continue
			}
			fmt.Fprintf(b,
				"%s<DT><A HREF=\"%s\">%s</A>\n",
				prefix,
				html.EscapeString(n.URL),
				html.EscapeString(n.Name),
			)
		}
	}
}
