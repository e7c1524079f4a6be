package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"

	"go-spotify/internal/models"
)

// SeedFile matches the YAML layout of a catalog seed file
type SeedFile struct {
	Tracks []SeedTrack `yaml:"tracks"`
}

type SeedTrack struct {
	Key      string `yaml:"key"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Album    string `yaml:"album"`
	Genre    string `yaml:"genre"`
	Duration int    `yaml:"duration"`
}

// Fallback when no seed file is configured or it does not exist
var defaultSeed = []models.Track{
	{Key: "seed/bohemian_rhapsody", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Genre: "Rock", Duration: 354},
	{Key: "seed/so_what", Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz", Duration: 562},
	{Key: "seed/windowlicker", Title: "Windowlicker", Artist: "Aphex Twin", Album: "Windowlicker", Genre: "Electronic", Duration: 367},
	{Key: "seed/teardrop", Title: "Teardrop", Artist: "Massive Attack", Album: "Mezzanine", Genre: "Trip Hop", Duration: 330},
	{Key: "seed/heroes", Title: "Heroes", Artist: "David Bowie", Album: "Heroes", Genre: "Rock", Duration: 371},
	{Key: "seed/strobe", Title: "Strobe", Artist: "deadmau5", Album: "For Lack of a Better Name", Genre: "Electronic", Duration: 637},
}

// LoadSeedTracks reads catalog entries from a YAML seed file.
func LoadSeedTracks(path string) ([]models.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	tracks := make([]models.Track, 0, len(f.Tracks))
	for i, t := range f.Tracks {
		if t.Key == "" {
			return nil, fmt.Errorf("%s: track %d has no key", path, i+1)
		}
		if t.Duration < 0 {
			return nil, fmt.Errorf("%s: track %q: %w", path, t.Key, models.ErrNegativeDuration)
		}
		tracks = append(tracks, models.Track{
			Key:      t.Key,
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Genre:    t.Genre,
			Duration: t.Duration,
		})
	}
	return tracks, nil
}

// SeedCatalog populates the catalog from path, or from the built-in list
// when path is empty or missing. Existing keys are left alone.
func (c *Client) SeedCatalog(path string) error {
	tracks := defaultSeed
	if path != "" {
		loaded, err := LoadSeedTracks(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("Info: seed file %s not found, using built-in tracks", path)
		case err != nil:
			return err
		default:
			tracks = loaded
		}
	}

	log.Printf("🌱 Seeding %d catalog tracks...", len(tracks))
	for _, t := range tracks {
		// UPSERT based on 'Key' to prevent duplicates on restart
		err := c.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&t).Error
		if err != nil {
			return err
		}
	}
	return nil
}
