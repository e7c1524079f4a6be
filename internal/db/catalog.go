package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-spotify/internal/models"
)

var ErrTrackNotFound = errors.New("track not found")

// FindTrack loads one catalog entry by primary key.
func (c *Client) FindTrack(id uint) (models.Track, error) {
	var t models.Track
	err := c.DB.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t, fmt.Errorf("track %d: %w", id, ErrTrackNotFound)
	}
	return t, err
}

// SearchTracks matches q against title and artist. An empty q lists everything.
func (c *Client) SearchTracks(q string, limit int) ([]models.Track, error) {
	var tracks []models.Track

	query := c.DB.Order("artist asc, title asc")
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(artist) LIKE ?", like, like)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&tracks).Error
	return tracks, err
}

// UpsertTrack inserts t or refreshes the tags of the entry with the same Key.
func (c *Client) UpsertTrack(t *models.Track) error {
	return c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "artist", "album", "genre", "duration", "updated_at"}),
	}).Create(t).Error
}

// MarkPlayed bumps the play counter of a track that was queued.
func (c *Client) MarkPlayed(id uint) error {
	now := time.Now()
	return c.DB.Model(&models.Track{}).Where("id = ?", id).Updates(map[string]interface{}{
		"play_count":  gorm.Expr("play_count + ?", 1),
		"last_played": &now,
	}).Error
}

// PruneTracks hard-deletes entries whose Key starts with prefix but is not in
// keep. Soft deletion would leave the unique Key taken if the file comes back.
func (c *Client) PruneTracks(prefix string, keep []string) (int64, error) {
	if prefix == "" {
		return 0, errors.New("refusing to prune without a key prefix")
	}

	q := c.DB.Unscoped().Where(`substr("key", 1, ?) = ?`, utf8.RuneCountInString(prefix), prefix)
	if len(keep) > 0 {
		q = q.Where(`"key" NOT IN ?`, keep)
	}
	res := q.Delete(&models.Track{})
	return res.RowsAffected, res.Error
}
