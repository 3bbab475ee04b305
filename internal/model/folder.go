package model

import "github.com/nikbrunner/chromemarks/internal/fold"

// Folder is a named container of ordered child nodes.
type Folder struct {
	ID       string
	Name     string
	Children []Node
}

func (f *Folder) Kind() Kind    { return KindFolder }
func (f *Folder) Title() string { return f.Name }
func (f *Folder) node()         {}

// ChildFolder returns the first immediate child folder whose name matches
// name ignoring case and accents. Nested folders are not searched.
func (f *Folder) ChildFolder(name string) (*Folder, bool) {
	for _, child := range f.Children {
		sub, ok := child.(*Folder)
		if ok && fold.Equal(sub.Name, name) {
			return sub, true
		}
	}
	return nil, false
}

// Descend follows path from f one folder at a time.
// Returns false as soon as a segment has no matching child folder.
func (f *Folder) Descend(path []string) (*Folder, bool) {
	current := f
	for _, name := range path {
		next, ok := current.ChildFolder(name)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// WalkFunc is called for every bookmark reached by Walk.
// path holds the names of the folders between the walk root and the bookmark.
type WalkFunc func(path []string, b *Bookmark)

// Walk visits every bookmark below f depth-first in sibling order.
func (f *Folder) Walk(fn WalkFunc) {
	f.walk(nil, fn)
}

func (f *Folder) walk(path []string, fn WalkFunc) {
	for _, child := range f.Children {
		switch n := child.(type) {
		case *Folder:
			n.walk(append(path[:len(path):len(path)], n.Name), fn)
		case *Bookmark:
			fn(path, n)
		}
	}
}

// FindBookmark returns the bookmark with the given id anywhere below f.
func (f *Folder) FindBookmark(id string) (*Bookmark, bool) {
	for _, child := range f.Children {
		switch n := child.(type) {
		case *Folder:
			if b, ok := n.FindBookmark(id); ok {
				return b, true
			}
		case *Bookmark:
			if n.ID == id {
				return n, true
			}
		}
	}
	return nil, false
}
