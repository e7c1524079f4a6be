package playlist

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"go-spotify/internal/models"
)

// InitialCapacity is the slot count of a freshly created playlist.
const InitialCapacity = 2

// Allocator returns storage for exactly n songs.
type Allocator func(n int) ([]models.Song, error)

// Observer is notified after every structural change and every failure.
type Observer interface {
	Appended(count, capacity int)
	Removed(count, capacity int)
	Grew(from, to int)
	Failed(err error)
}

type Option func(*Playlist)

// WithAllocator replaces the default make-based allocator.
func WithAllocator(a Allocator) Option {
	return func(p *Playlist) { p.alloc = a }
}

// WithMaxCapacity caps the default allocator. Zero means unlimited.
func WithMaxCapacity(n int) Option {
	return func(p *Playlist) { p.maxCap = n }
}

func WithObserver(o Observer) Option {
	return func(p *Playlist) { p.observer = o }
}

// Playlist is an insertion-ordered, growable list of songs.
// It is not safe for concurrent use; see Shared.
type Playlist struct {
	songs    []models.Song // len(songs) is the capacity
	count    int
	alloc    Allocator
	maxCap   int
	observer Observer
	released bool
}

// New returns an empty playlist with InitialCapacity slots.
func New(opts ...Option) (*Playlist, error) {
	p := &Playlist{}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if p.alloc == nil {
		p.alloc = makeAllocator(p.maxCap)
	}

	songs, err := p.allocate(InitialCapacity)
	if err != nil {
		p.observer.Failed(err)
		return nil, err
	}
	p.songs = songs
	return p, nil
}

func makeAllocator(limit int) Allocator {
	return func(n int) ([]models.Song, error) {
		if limit > 0 && n > limit {
			return nil, fmt.Errorf("%w: %d slots exceeds limit of %d", ErrAllocation, n, limit)
		}
		return make([]models.Song, n), nil
	}
}

func (p *Playlist) allocate(n int) ([]models.Song, error) {
	songs, err := p.alloc(n)
	switch {
	case err != nil && errors.Is(err, ErrAllocation):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	case len(songs) < n:
		return nil, fmt.Errorf("%w: got %d of %d slots", ErrAllocation, len(songs), n)
	}
	return songs[:n], nil
}

// Len returns the number of songs.
func (p *Playlist) Len() int { return p.count }

// Cap returns the number of allocated slots.
func (p *Playlist) Cap() int { return len(p.songs) }

// Append adds a song at the end, doubling the storage when it is full.
func (p *Playlist) Append(title, artist string, duration int) error {
	return p.AppendSong(models.Song{Title: title, Artist: artist, Duration: duration})
}

// AppendSong adds an already built song. Text fields are re-truncated.
func (p *Playlist) AppendSong(s models.Song) error {
	if p.released {
		return ErrReleased
	}
	s, err := models.NewSong(s.Title, s.Artist, s.Duration)
	if err != nil {
		p.observer.Failed(err)
		return err
	}

	if p.count == len(p.songs) {
		if err := p.grow(); err != nil {
			p.observer.Failed(err)
			return err
		}
	}

	p.songs[p.count] = s
	p.count++
	p.observer.Appended(p.count, len(p.songs))
	return nil
}

// grow doubles the capacity. The old storage stays in place until the
// new one is obtained and filled.
func (p *Playlist) grow() error {
	from := len(p.songs)
	to := from * 2

	songs, err := p.allocate(to)
	if err != nil {
		return fmt.Errorf("grow %d -> %d: %w", from, to, err)
	}
	copy(songs, p.songs[:p.count])
	p.songs = songs

	p.observer.Grew(from, to)
	return nil
}

// RemoveAt deletes the song at index, shifting later songs one slot left.
func (p *Playlist) RemoveAt(index int) error {
	if p.released {
		return ErrReleased
	}
	if err := p.checkIndex(index); err != nil {
		p.observer.Failed(err)
		return err
	}

	copy(p.songs[index:p.count-1], p.songs[index+1:p.count])
	p.count--
	p.songs[p.count] = models.Song{}

	p.observer.Removed(p.count, len(p.songs))
	return nil
}

// Get returns a copy of the song at index.
func (p *Playlist) Get(index int) (models.Song, error) {
	if p.released {
		return models.Song{}, ErrReleased
	}
	if err := p.checkIndex(index); err != nil {
		return models.Song{}, err
	}
	return p.songs[index], nil
}

func (p *Playlist) checkIndex(index int) error {
	if index < 0 || index >= p.count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, p.count)
	}
	return nil
}

// All yields every song in insertion order. The sequence can be ranged
// over more than once but must not outlive a structural change.
func (p *Playlist) All() iter.Seq2[int, models.Song] {
	return func(yield func(int, models.Song) bool) {
		for i := 0; i < p.count; i++ {
			if !yield(i, p.songs[i]) {
				return
			}
		}
	}
}

// TotalDuration returns the summed duration in seconds.
func (p *Playlist) TotalDuration() int {
	total := 0
	for _, s := range p.All() {
		total += s.Duration
	}
	return total
}

// Print writes the numbered listing shown by the menu.
func (p *Playlist) Print(w io.Writer) error {
	if p.released {
		return ErrReleased
	}
	return printSongs(w, p.All())
}

func printSongs(w io.Writer, songs iter.Seq2[int, models.Song]) error {
	if _, err := fmt.Fprintln(w, "\nYour Playlist:"); err != nil {
		return err
	}
	for i, s := range songs {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}

// Release drops the backing storage. It is safe to call more than once.
func (p *Playlist) Release() {
	p.songs = nil
	p.count = 0
	p.released = true
}

type nopObserver struct{}

func (nopObserver) Appended(int, int) {}
func (nopObserver) Removed(int, int)  {}
func (nopObserver) Grew(int, int)     {}
func (nopObserver) Failed(error)      {}
