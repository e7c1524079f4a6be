package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go-spotify/internal/models"
	"go-spotify/internal/playlist"

	"github.com/gin-gonic/gin"
)

// PlaylistHandler serves the shared in-memory playlist
type PlaylistHandler struct {
	pl      *playlist.Shared
	catalog Catalog
}

// NewPlaylistHandler creates a new PlaylistHandler. catalog may be nil.
func NewPlaylistHandler(pl *playlist.Shared, catalog Catalog) *PlaylistHandler {
	return &PlaylistHandler{pl: pl, catalog: catalog}
}

// GetPlaylist returns every song plus the container counters
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	c.JSON(http.StatusOK, h.pl.View())
}

// GetSong returns the song at a 0-based index
func (h *PlaylistHandler) GetSong(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	song, err := h.pl.Get(index)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// AddSong appends a song built from the JSON body
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var input struct {
		Title    string `json:"title" binding:"required"`
		Artist   string `json:"artist" binding:"required"`
		Duration *int   `json:"duration" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	change, err := h.pl.AppendIndexed(models.Song{Title: input.Title, Artist: input.Artist, Duration: *input.Duration})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, change)
}

// AddFromCatalog appends a catalog track and bumps its play counter
func (h *PlaylistHandler) AddFromCatalog(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog is not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track ID"})
		return
	}

	track, err := h.catalog.FindTrack(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	song, err := track.Song()
	if err != nil {
		writeError(c, err)
		return
	}
	change, err := h.pl.AppendIndexed(song)
	if err != nil {
		writeError(c, err)
		return
	}

	// The song is already queued; a failed counter update is not worth a 500
	if err := h.catalog.MarkPlayed(track.ID); err != nil {
		slog.Warn("Failed to update play count", "track_id", track.ID, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"index":    change.Index,
		"count":    change.Count,
		"capacity": change.Capacity,
		"song":     song,
	})
}

// RemoveSong deletes the song at a 0-based index, keeping the order of the rest
func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	change, err := h.pl.RemoveIndexed(index)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Song removed",
		"count":    change.Count,
		"capacity": change.Capacity,
	})
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid song index"})
		return 0, false
	}
	return index, true
}

// writeError maps domain errors to HTTP status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, playlist.ErrIndexOutOfRange), errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrNegativeDuration):
		status = http.StatusBadRequest
	case errors.Is(err, playlist.ErrAllocation):
		status = http.StatusInsufficientStorage
	case errors.Is(err, playlist.ErrReleased):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
