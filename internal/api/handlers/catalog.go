package handlers

import (
	"net/http"
	"strconv"

	database "go-spotify/internal/db"
	"go-spotify/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrNotFound is the error a Catalog wraps when a track does not exist.
var ErrNotFound = database.ErrTrackNotFound

// Catalog is the read side of the song catalog
type Catalog interface {
	FindTrack(id uint) (models.Track, error)
	SearchTracks(q string, limit int) ([]models.Track, error)
	MarkPlayed(id uint) error
}

// CatalogHandler exposes catalog search
type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// SearchTracks returns a lightweight list of matching tracks
func (h *CatalogHandler) SearchTracks(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 200 {
		limit = 200 // Hard cap to protect the server
	}

	tracks, err := h.catalog.SearchTracks(c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search catalog"})
		return
	}
	if tracks == nil {
		tracks = []models.Track{}
	}

	c.JSON(http.StatusOK, gin.H{"data": tracks})
}
