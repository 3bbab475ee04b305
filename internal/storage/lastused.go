package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nikbrunner/chromemarks/internal/model"
)

// MarkUsedAt sets date_last_used of the bookmark with the given id under
// roots[rootKey] to t. The whole document is rewritten atomically; every
// other value is carried over unchanged. Returns false without writing
// when the id is not found.
func MarkUsedAt(path, rootKey, id string, t time.Time) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat bookmarks: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read bookmarks: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}

	roots, ok := doc["roots"].(map[string]any)
	if !ok {
		return false, fmt.Errorf("%w: missing roots", ErrMalformedStore)
	}
	root, ok := roots[rootKey].(map[string]any)
	if !ok {
		return false, fmt.Errorf("%w: root %q not found", ErrMalformedStore, rootKey)
	}

	node := findBookmark(root, id)
	if node == nil {
		return false, nil
	}
	node["date_last_used"] = strconv.FormatInt(model.ToChromeTime(t), 10)

	out, err := encodeDocument(doc)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := WriteFileAtomic(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return true, nil
}

// findBookmark searches node depth-first for a url node with the given id.
func findBookmark(node map[string]any, id string) map[string]any {
	children, _ := node["children"].([]any)
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}
		switch child["type"] {
		case typeURL:
			if child["id"] == id {
				return child
			}
		case typeFolder:
			if found := findBookmark(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// encodeDocument serializes doc the way Chromium writes it: three-space
// indentation and no HTML escaping.
func encodeDocument(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
