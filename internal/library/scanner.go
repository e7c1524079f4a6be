package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"go-spotify/internal/models"
	"go-spotify/internal/utils"
)

// UnknownArtist is used when a file carries no artist tag.
const UnknownArtist = "Unknown Artist"

var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
}

// Catalog is the part of the catalog store the importer needs.
type Catalog interface {
	UpsertTrack(t *models.Track) error
	PruneTracks(prefix string, keep []string) (int64, error)
}

// Scan walks dir and returns one catalog entry per audio file.
func Scan(dir string) ([]models.Track, error) {
	var tracks []models.Track

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audioExts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		t, err := readTrack(path)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v", path, err)
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})

	return tracks, err
}

func readTrack(path string) (models.Track, error) {
	t := models.Track{
		Key:    filepath.ToSlash(path),
		Title:  utils.CleanFilename(path),
		Artist: UnknownArtist,
	}

	f, err := os.Open(path)
	if err != nil {
		return t, err
	}
	defer f.Close()

	// Untagged files keep the filename-derived defaults
	if m, err := tag.ReadFrom(f); err == nil {
		t.Title = utils.Default(m.Title(), t.Title)
		t.Artist = utils.Default(m.Artist(), utils.Default(m.AlbumArtist(), UnknownArtist))
		t.Album = strings.TrimSpace(m.Album())
		t.Genre = strings.TrimSpace(m.Genre())
	}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return t, err
		}
		dur, err := mp3Duration(f)
		if err != nil {
			dur = 0
		}
		t.Duration = int(dur / time.Second)
	}

	return t, nil
}

func mp3Duration(r io.Reader) (time.Duration, error) {
	d := mp3.NewDecoder(r)
	var frame mp3.Frame
	var skipped int
	var duration time.Duration

	for {
		err := d.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, err
		}
		duration += frame.Duration()
	}
	return duration, nil
}

// Import scans dir, upserts every track into the catalog and drops
// entries under dir whose file is gone.
func Import(c Catalog, dir string) (int, error) {
	tracks, err := Scan(dir)
	if err != nil {
		return 0, err
	}

	n := 0
	keys := make([]string, 0, len(tracks))
	for i := range tracks {
		keys = append(keys, tracks[i].Key)
		if err := c.UpsertTrack(&tracks[i]); err != nil {
			log.Printf("❌ Failed to store %s: %v", tracks[i].Key, err)
			continue
		}
		n++
	}
	log.Printf("✅ Imported %d/%d tracks from %s", n, len(tracks), dir)

	if prefix := keyPrefix(dir); prefix != "" {
		removed, err := c.PruneTracks(prefix, keys)
		if err != nil {
			return n, fmt.Errorf("prune %s: %w", dir, err)
		}
		if removed > 0 {
			log.Printf("🧹 Removed %d tracks no longer in %s", removed, dir)
		}
	}
	return n, nil
}

// keyPrefix is the Key prefix shared by every file Scan finds under dir.
// Files under "." have no common prefix, so nothing is pruned for them.
func keyPrefix(dir string) string {
	clean := filepath.Clean(dir)
	if clean == "." {
		return ""
	}
	return strings.TrimSuffix(filepath.ToSlash(clean), "/") + "/"
}
