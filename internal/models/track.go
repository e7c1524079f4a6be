package models

import (
	"time"

	"gorm.io/gorm"
)

// Track is a catalog entry songs can be appended from
type Track struct {
	gorm.Model

	Key    string `gorm:"uniqueIndex;not null" json:"key"` // Source path of the audio file
	Title  string `gorm:"index" json:"title"`
	Artist string `gorm:"index" json:"artist"`
	Album  string `json:"album"`
	Genre  string `gorm:"index" json:"genre"`

	Duration int `json:"duration"` // In seconds

	PlayCount  int        `gorm:"default:0" json:"play_count"`
	LastPlayed *time.Time `gorm:"index" json:"last_played"`
}

// Song converts the catalog entry into a bounded playlist record.
func (t Track) Song() (Song, error) {
	return NewSong(t.Title, t.Artist, t.Duration)
}
