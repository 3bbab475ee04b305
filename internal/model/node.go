package model

// Kind distinguishes folders from bookmarks.
type Kind int

const (
	KindFolder Kind = iota
	KindBookmark
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindBookmark:
		return "bookmark"
	default:
		return "unknown"
	}
}

// Node is a single entry of the bookmark tree.
// It is implemented only by *Folder and *Bookmark.
type Node interface {
	Kind() Kind
	Title() string
	node()
}
