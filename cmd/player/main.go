package main

import (
	"flag"
	"log"
	"os"

	"go-spotify/internal/cli"
	"go-spotify/internal/config"
	database "go-spotify/internal/db"
	"go-spotify/internal/playlist"
)

func main() {
	useLibrary := flag.Bool("library", false, "Enable adding songs from the catalog database")
	seed := flag.Bool("seed", false, "Seed the catalog with sample tracks before starting")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	pl, err := playlist.New(playlist.WithMaxCapacity(cfg.Playlist.MaxCapacity))
	if err != nil {
		log.Fatalf("❌ Memory allocation failed: %v", err)
	}

	var catalog cli.Catalog
	if *useLibrary || *seed {
		db, err := database.New(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.AutoMigrate(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		if *seed {
			if err := db.SeedCatalog(cfg.Database.SeedFile); err != nil {
				log.Fatalf("❌ Seeding failed: %v", err)
			}
		}
		catalog = db
	}

	if err := cli.New(os.Stdin, os.Stdout, pl, catalog).Run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
