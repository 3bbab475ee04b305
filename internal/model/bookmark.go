package model

import "time"

// Bookmark is a saved URL.
type Bookmark struct {
	ID       string
	Name     string
	URL      string
	LastUsed int64 // microseconds since 1601-01-01 UTC, 0 = never used
}

func (b *Bookmark) Kind() Kind    { return KindBookmark }
func (b *Bookmark) Title() string { return b.Name }
func (b *Bookmark) node()         {}

// LastUsedTime returns LastUsed as a time.Time, or the zero time if never used.
func (b *Bookmark) LastUsedTime() time.Time {
	if b.LastUsed == 0 {
		return time.Time{}
	}
	return FromChromeTime(b.LastUsed)
}
