package playlist

import (
	"io"
	"sync"

	"go-spotify/internal/models"
)

// Shared guards a Playlist for concurrent use: one writer at a time,
// readers in parallel when no writer holds the lock.
type Shared struct {
	mu sync.RWMutex
	pl *Playlist
}

func NewShared(pl *Playlist) *Shared {
	return &Shared{pl: pl}
}

func (s *Shared) Append(title, artist string, duration int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pl.Append(title, artist, duration)
}

func (s *Shared) AppendSong(song models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pl.AppendSong(song)
}

func (s *Shared) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pl.RemoveAt(index)
}

// Change reports the list after a write, read under the lock that made it.
type Change struct {
	Index    int `json:"index"` // Position of the appended or removed song
	Count    int `json:"count"`
	Capacity int `json:"capacity"`
}

// AppendIndexed appends song and returns where it landed.
func (s *Shared) AppendIndexed(song models.Song) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pl.AppendSong(song); err != nil {
		return Change{}, err
	}
	return Change{Index: s.pl.Len() - 1, Count: s.pl.Len(), Capacity: s.pl.Cap()}, nil
}

// RemoveIndexed removes the song at index and returns the resulting counters.
func (s *Shared) RemoveIndexed(index int) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pl.RemoveAt(index); err != nil {
		return Change{}, err
	}
	return Change{Index: index, Count: s.pl.Len(), Capacity: s.pl.Cap()}, nil
}

func (s *Shared) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pl.Release()
}

func (s *Shared) Get(index int) (models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pl.Get(index)
}

// Stats returns count, capacity and total duration from one consistent view.
func (s *Shared) Stats() (count, capacity, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pl.Len(), s.pl.Cap(), s.pl.TotalDuration()
}

// View is a copy of the whole list taken under one read lock.
type View struct {
	Songs         []models.Song `json:"songs"`
	Count         int           `json:"count"`
	Capacity      int           `json:"capacity"`
	TotalDuration int           `json:"total_duration"`
}

func (s *Shared) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return View{
		Songs:         s.copySongs(),
		Count:         s.pl.Len(),
		Capacity:      s.pl.Cap(),
		TotalDuration: s.pl.TotalDuration(),
	}
}

// Snapshot copies the live songs so callers can iterate without the lock.
func (s *Shared) Snapshot() []models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copySongs()
}

func (s *Shared) copySongs() []models.Song {
	out := make([]models.Song, 0, s.pl.Len())
	for _, song := range s.pl.All() {
		out = append(out, song)
	}
	return out
}

// Print writes the listing under the read lock. It fails with ErrReleased
// after Release, like Playlist.Print.
func (s *Shared) Print(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pl.Print(w)
}
