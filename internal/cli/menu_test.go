package cli

import (
	"errors"
	"strings"
	"testing"

	"go-spotify/internal/models"
	"go-spotify/internal/playlist"
)

type stubCatalog struct {
	tracks []models.Track
	played []uint
}

func (s *stubCatalog) SearchTracks(q string, _ int) ([]models.Track, error) {
	var out []models.Track
	for _, t := range s.tracks {
		if strings.Contains(strings.ToLower(t.Title+" "+t.Artist), strings.ToLower(q)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubCatalog) MarkPlayed(id uint) error {
	s.played = append(s.played, id)
	return nil
}

func run(t *testing.T, input string, catalog Catalog, opts ...playlist.Option) (string, *playlist.Playlist, error) {
	t.Helper()
	pl, err := playlist.New(opts...)
	if err != nil {
		t.Fatalf("playlist.New() failed: %v", err)
	}

	var out strings.Builder
	err = New(strings.NewReader(input), &out, pl, catalog).Run()
	return out.String(), pl, err
}

func TestMenuAddViewRemove(t *testing.T) {
	input := strings.Join([]string{
		"1", "A", "X", "100",
		"1", "B", "Y", "200",
		"1", "C", "Z", "300",
		"3", "1",
		"2",
		"4",
	}, "\n") + "\n"

	out, pl, err := run(t, input, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := "\nYour Playlist:\n1. B - Y [200 sec]\n2. C - Z [300 sec]\n"
	if !strings.Contains(out, want) {
		t.Errorf("output missing listing %q:\n%s", want, out)
	}
	if !strings.HasPrefix(out, "Welcome to C-Spotify!") || !strings.HasSuffix(out, "Goodbye!\n") {
		t.Errorf("unexpected banner/farewell:\n%s", out)
	}
	if strings.Contains(out, "Add From Library") {
		t.Error("library entry shown without a catalog")
	}
	if _, err := pl.Get(0); !errors.Is(err, playlist.ErrReleased) {
		t.Errorf("playlist not released on exit: %v", err)
	}
}

func TestMenuInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Bad Choice", "abc\n4\n", "Invalid input!"},
		{"Choice Out Of Range", "9\n4\n", "Invalid choice!"},
		{"Bad Duration", "1\nA\nX\nlong\n4\n", "Invalid input!"},
		{"Negative Duration", "1\nA\nX\n-5\n4\n", "Invalid duration!"},
		{"Remove From Empty", "3\n1\n4\n", "Invalid index!"},
		{"Remove Zero", "1\nA\nX\n1\n3\n0\n4\n", "Invalid index!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.input, nil)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if !strings.HasSuffix(out, "Goodbye!\n") {
				t.Errorf("menu did not exit cleanly:\n%s", out)
			}
		})
	}
}

func TestMenuEOFExits(t *testing.T) {
	out, _, err := run(t, "1\nHalf", nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Errorf("EOF did not end the menu:\n%s", out)
	}
}

func TestMenuTrimsNewlines(t *testing.T) {
	out, _, err := run(t, "1\r\nTitle\r\nArtist\r\n42\r\n2\r\n4\r\n", nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out, "1. Title - Artist [42 sec]\n") {
		t.Errorf("line endings leaked into the record:\n%s", out)
	}
}

func TestMenuAllocationFailure(t *testing.T) {
	input := "1\nA\nX\n1\n1\nB\nY\n2\n1\nC\nZ\n3\n4\n"
	out, _, err := run(t, input, nil, playlist.WithMaxCapacity(2))
	if !errors.Is(err, playlist.ErrAllocation) {
		t.Fatalf("Run() error = %v, want ErrAllocation", err)
	}
	if !strings.Contains(out, "Memory allocation failed!") {
		t.Errorf("output missing allocation message:\n%s", out)
	}
}

func TestMenuAddFromLibrary(t *testing.T) {
	catalog := &stubCatalog{tracks: []models.Track{
		{Title: "Teardrop", Artist: "Massive Attack", Duration: 330},
		{Title: "Heroes", Artist: "David Bowie", Duration: 371},
	}}
	catalog.tracks[0].ID = 3
	catalog.tracks[1].ID = 5

	input := "4\nbowie\n1\n4\npolka\n2\n5\n"
	out, _, err := run(t, input, catalog)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !strings.Contains(out, "4. Add From Library\n5. Exit") {
		t.Errorf("library entry missing:\n%s", out)
	}
	if !strings.Contains(out, "1. Heroes - David Bowie [371 sec]") {
		t.Errorf("playlist missing library song:\n%s", out)
	}
	if !strings.Contains(out, "No matching tracks.") {
		t.Errorf("empty search not reported:\n%s", out)
	}
	if len(catalog.played) != 1 || catalog.played[0] != 5 {
		t.Errorf("played = %v, want [5]", catalog.played)
	}
}
