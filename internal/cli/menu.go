package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-spotify/internal/models"
	"go-spotify/internal/playlist"
	"go-spotify/internal/utils"
)

// searchLimit caps how many catalog matches are offered at once.
const searchLimit = 10

// Catalog is what the menu needs to add songs from the library.
type Catalog interface {
	SearchTracks(q string, limit int) ([]models.Track, error)
	MarkPlayed(id uint) error
}

type entry struct {
	label string
	run   func() error
}

// Menu is the interactive playlist editor.
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	pl      *playlist.Playlist
	catalog Catalog
}

// New builds a menu over pl. catalog may be nil, which hides the library entry.
func New(in io.Reader, out io.Writer, pl *playlist.Playlist, catalog Catalog) *Menu {
	return &Menu{
		in:      bufio.NewReader(in),
		out:     out,
		pl:      pl,
		catalog: catalog,
	}
}

var errExit = errors.New("exit")

// Run loops until the user exits or input ends. The playlist is released
// on return. Only allocation failures are returned; everything else is
// reported to the user and the loop goes on.
func (m *Menu) Run() error {
	defer m.pl.Release()

	entries := []entry{
		{"Add Song", m.addSong},
		{"View Playlist", func() error { return m.pl.Print(m.out) }},
		{"Remove Song", m.removeSong},
	}
	if m.catalog != nil {
		entries = append(entries, entry{"Add From Library", m.addFromLibrary})
	}
	entries = append(entries, entry{"Exit", func() error { return errExit }})

	fmt.Fprintln(m.out, "Welcome to C-Spotify!")
	for {
		fmt.Fprintln(m.out)
		for i, e := range entries {
			fmt.Fprintf(m.out, "%d. %s\n", i+1, e.label)
		}

		choice, err := m.readInt("Enter your choice: ")
		switch {
		case errors.Is(err, io.EOF):
			return m.goodbye(nil)
		case err != nil:
			fmt.Fprintln(m.out, "Invalid input!")
			continue
		case choice < 1 || choice > len(entries):
			fmt.Fprintln(m.out, "Invalid choice!")
			continue
		}

		err = entries[choice-1].run()
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return m.goodbye(nil)
		case errors.Is(err, playlist.ErrAllocation):
			fmt.Fprintln(m.out, "Memory allocation failed!")
			return m.goodbye(err)
		default:
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *Menu) goodbye(err error) error {
	fmt.Fprintln(m.out, "Goodbye!")
	return err
}

func (m *Menu) addSong() error {
	title, err := m.readLine("Enter song title: ")
	if err != nil {
		return err
	}
	artist, err := m.readLine("Enter artist name: ")
	if err != nil {
		return err
	}
	duration, err := m.readInt("Enter song duration (sec): ")
	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return nil
	}

	err = m.pl.Append(title, artist, duration)
	if errors.Is(err, models.ErrNegativeDuration) {
		fmt.Fprintln(m.out, "Invalid duration!")
		return nil
	}
	return err
}

func (m *Menu) removeSong() error {
	index, err := m.readInt("Enter song index to remove: ")
	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input!")
		return nil
	}

	// Users count from 1
	err = m.pl.RemoveAt(index - 1)
	if errors.Is(err, playlist.ErrIndexOutOfRange) {
		fmt.Fprintln(m.out, "Invalid index!")
		return nil
	}
	return err
}

func (m *Menu) addFromLibrary() error {
	q, err := m.readLine("Search library: ")
	if err != nil {
		return err
	}

	tracks, err := m.catalog.SearchTracks(q, searchLimit)
	if err != nil {
		return fmt.Errorf("search library: %w", err)
	}
	if len(tracks) == 0 {
		fmt.Fprintln(m.out, "No matching tracks.")
		return nil
	}

	for i, t := range tracks {
		fmt.Fprintf(m.out, "%d. %s - %s [%d sec]\n", i+1, t.Title, t.Artist, t.Duration)
	}
	n, err := m.readInt("Enter track number to add: ")
	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil || n < 1 || n > len(tracks) {
		fmt.Fprintln(m.out, "Invalid index!")
		return nil
	}

	t := tracks[n-1]
	song, err := t.Song()
	if err != nil {
		return err
	}
	if err := m.pl.AppendSong(song); err != nil {
		return err
	}
	if err := m.catalog.MarkPlayed(t.ID); err != nil {
		fmt.Fprintf(m.out, "Warning: play count not updated: %v\n", err)
	}
	return nil
}

// readLine prompts and returns one line without its terminator.
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return utils.TrimLine(line), nil
}

func (m *Menu) readInt(prompt string) (int, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}
