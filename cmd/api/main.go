package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-spotify/internal/api/handlers"
	"go-spotify/internal/config"
	database "go-spotify/internal/db"
	"go-spotify/internal/playlist"

	// Use an alias to prevent naming collisions with the 'server' variable
	apiserver "go-spotify/internal/api/server"
)

func main() {
	noCatalog := flag.Bool("no-catalog", false, "Run without the catalog database")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Playlist API Server...")

	// 1. Setup Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 2. Playlist + Metrics
	metrics, err := playlist.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("❌ Failed to register metrics: %v", err)
	}
	pl, err := playlist.New(
		playlist.WithMaxCapacity(cfg.Playlist.MaxCapacity),
		playlist.WithObserver(metrics),
	)
	if err != nil {
		log.Fatalf("❌ Memory allocation failed: %v", err)
	}
	shared := playlist.NewShared(pl)
	defer shared.Release()

	// 3. Catalog
	var catalog handlers.Catalog
	if !*noCatalog {
		db, err := database.New(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.AutoMigrate(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := db.SeedCatalog(cfg.Database.SeedFile); err != nil {
			log.Printf("⚠️ Seeding failed: %v", err)
		}
		catalog = db
	}

	// 4. Expose Metrics
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, mux); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 5. Start Server
	srv := apiserver.New(cfg, shared, catalog)

	log.Printf("🚀 API Server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
