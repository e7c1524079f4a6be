package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxFieldLen is the largest number of bytes kept for a title or artist.
const MaxFieldLen = 99

var ErrNegativeDuration = errors.New("duration must not be negative")

// Song is a single playlist entry. Its identity is its position in the playlist.
type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"` // In seconds
}

// NewSong builds a Song, truncating over-long text fields.
func NewSong(title, artist string, duration int) (Song, error) {
	if duration < 0 {
		return Song{}, fmt.Errorf("song %q: %w", title, ErrNegativeDuration)
	}
	return Song{
		Title:    Truncate(title, MaxFieldLen),
		Artist:   Truncate(artist, MaxFieldLen),
		Duration: duration,
	}, nil
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// A rune has at most UTFMax-1 continuation bytes; invalid input is cut bytewise
	cut := n
	for back := 0; cut > 0 && back < utf8.UTFMax-1 && !utf8.RuneStart(s[cut]); back++ {
		cut--
	}
	if !utf8.RuneStart(s[cut]) {
		cut = n
	}
	return s[:cut]
}

func (s Song) String() string {
	return fmt.Sprintf("%s - %s [%d sec]", s.Title, s.Artist, s.Duration)
}
