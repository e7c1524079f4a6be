package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-spotify/internal/config"
	"go-spotify/internal/playlist"

	"go-spotify/internal/api/handlers"
	"go-spotify/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	pl      *playlist.Shared
	catalog handlers.Catalog
	router  *gin.Engine
}

// New wires the routes. catalog may be nil when no database is configured.
func New(cfg *config.Config, pl *playlist.Shared, catalog handlers.Catalog) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		pl:      pl,
		catalog: catalog,
		router:  gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery(), middleware.RequestID(), middleware.SilentLogger())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	playlistHandler := handlers.NewPlaylistHandler(s.pl, s.catalog)
	catalogHandler := handlers.NewCatalogHandler(s.catalog)

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "go-spotify"})
	})

	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// READ ROUTES (always public)
		// ==========================================
		v1.GET("/playlist", playlistHandler.GetPlaylist)
		v1.GET("/playlist/songs/:index", playlistHandler.GetSong)
		v1.GET("/catalog/tracks", catalogHandler.SearchTracks)

		// ==========================================
		// WRITE ROUTES (JWT required when a secret is configured)
		// ==========================================
		write := v1.Group("/")
		if secret := s.cfg.API.JWTSecret; secret != "" {
			write.Use(middleware.RequireAuth([]byte(secret)), middleware.RequireRole("editor"))
		}
		{
			write.POST("/playlist/songs", playlistHandler.AddSong)
			write.POST("/playlist/songs/from-catalog/:id", playlistHandler.AddFromCatalog)
			write.DELETE("/playlist/songs/:index", playlistHandler.RemoveSong)
		}
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
