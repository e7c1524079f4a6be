package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-spotify/internal/config"
	database "go-spotify/internal/db"
	"go-spotify/internal/library"
)

func main() {
	dirFlag := flag.String("dir", "", "Override library directory (library.dir)")
	watch := flag.Bool("watch", false, "Keep running and re-import on file changes")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Library Ingester...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *dirFlag != "" {
		cfg.Library.Dir = *dirFlag
	}
	if *watch {
		cfg.Library.Watch = true
	}
	if cfg.Library.Dir == "" {
		log.Fatal("❌ No library directory (SPOTIFY_LIBRARY_DIR or -dir)")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if _, err := library.Import(db, cfg.Library.Dir); err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}
	if !cfg.Library.Watch {
		return
	}

	w, err := library.NewWatcher(cfg.Library.Dir, db)
	if err != nil {
		log.Fatalf("❌ Failed to create watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		log.Fatalf("❌ Failed to watch %s: %v", cfg.Library.Dir, err)
	}
	log.Printf("👀 Watching %s. Ctrl+C to stop.", cfg.Library.Dir)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	w.Stop()
}
