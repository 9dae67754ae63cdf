// Package daily selects the word of the day and rotates per-session words.
//
// The daily index is derived only from the calendar date so every client and
// server computes the same word without coordination:
//
//	key   = date formatted as YYYYMMDD
//	hash  = 0; for each byte c of key: hash = hash*31 + c   (int32, wrapping)
//	index = |hash| mod len(list)
//
// This matches the JavaScript idiom `hash = ((hash << 5) - hash) + c; hash |= 0`.
package daily

import (
	"errors"
	"time"
)

// ErrEmptyWordList is returned when there is nothing to select from.
var ErrEmptyWordList = errors.New("daily: word list is empty")

// DateKey returns YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SeedKey returns the canonical hash input YYYYMMDD in t's own location.
func SeedKey(t time.Time) string {
	return t.Format("20060102")
}

// Hash is the 31-multiplier rolling hash with 32-bit wraparound.
func Hash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h*31 + int32(s[i])
	}
	return h
}

// WordIndex returns the deterministic list index for date.
func WordIndex(date time.Time, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyWordList
	}
	h := int64(Hash(SeedKey(date)))
	if h < 0 {
		h = -h // int64 so MinInt32 stays positive
	}
	return int(h % int64(n)), nil
}

// SelectWord returns the word of the day for date from list.
func SelectWord(date time.Time, list []string) (string, error) {
	i, err := WordIndex(date, len(list))
	if err != nil {
		return "", err
	}
	return list[i], nil
}

// Today returns the current time in loc (UTC when nil).
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}
