package model

import "time"

// chromeEpochOffset is the number of microseconds between
// 1601-01-01T00:00:00Z and the Unix epoch.
const chromeEpochOffset int64 = 11644473600000000

// ToChromeTime converts t to microseconds since 1601-01-01 UTC,
// the timestamp convention of Chromium bookmark files.
func ToChromeTime(t time.Time) int64 {
	return t.UnixMicro() + chromeEpochOffset
}

// FromChromeTime converts microseconds since 1601-01-01 UTC to a time.Time.
func FromChromeTime(us int64) time.Time {
	return time.UnixMicro(us - chromeEpochOffset).UTC()
}
