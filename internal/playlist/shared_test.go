package playlist

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"go-spotify/internal/models"
)

func TestSharedConcurrentUse(t *testing.T) {
	sh := NewShared(mustNew(t))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := sh.Append("S", "A", i); err != nil {
					t.Errorf("Append() failed: %v", err)
				}
			}
		}()
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				count, capacity, _ := sh.Stats()
				if count > capacity {
					t.Errorf("count %d > capacity %d", count, capacity)
				}
				_ = sh.Snapshot()
			}
		}()
	}
	wg.Wait()

	count, capacity, _ := sh.Stats()
	if count != 200 || capacity != 256 {
		t.Errorf("count=%d capacity=%d, want 200/256", count, capacity)
	}
}

func TestSharedSnapshotIsACopy(t *testing.T) {
	sh := NewShared(mustNew(t))
	_ = sh.Append("A", "X", 1)
	_ = sh.Append("B", "Y", 2)

	snap := sh.Snapshot()
	if err := sh.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt(0) failed: %v", err)
	}
	if len(snap) != 2 || snap[0].Title != "A" {
		t.Errorf("snapshot changed after removal: %+v", snap)
	}

	got, err := sh.Get(0)
	if err != nil || got.Title != "B" {
		t.Errorf("Get(0) = %+v, %v", got, err)
	}
}

func TestSharedPrintAndRelease(t *testing.T) {
	sh := NewShared(mustNew(t))
	_ = sh.Append("A", "X", 100)

	var buf bytes.Buffer
	if err := sh.Print(&buf); err != nil {
		t.Fatalf("Print() failed: %v", err)
	}
	if want := "\nYour Playlist:\n1. A - X [100 sec]\n"; buf.String() != want {
		t.Errorf("Print() = %q, want %q", buf.String(), want)
	}

	sh.Release()
	if err := sh.Append("B", "Y", 1); !errors.Is(err, ErrReleased) {
		t.Errorf("Append() after Release error = %v", err)
	}
}

func TestSharedIndexedWrites(t *testing.T) {
	sh := NewShared(mustNew(t))

	for i, title := range []string{"A", "B", "C"} {
		change, err := sh.AppendIndexed(models.Song{Title: title, Artist: "X", Duration: i})
		if err != nil {
			t.Fatalf("AppendIndexed(%q) failed: %v", title, err)
		}
		if change.Index != i || change.Count != i+1 {
			t.Errorf("AppendIndexed(%q) = %+v", title, change)
		}
	}

	change, err := sh.RemoveIndexed(1)
	if err != nil {
		t.Fatalf("RemoveIndexed(1) failed: %v", err)
	}
	if change != (Change{Index: 1, Count: 2, Capacity: 4}) {
		t.Errorf("RemoveIndexed(1) = %+v", change)
	}
	if _, err := sh.RemoveIndexed(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveIndexed(7) error = %v", err)
	}
	if _, err := sh.AppendIndexed(models.Song{Title: "neg", Duration: -1}); !errors.Is(err, models.ErrNegativeDuration) {
		t.Errorf("AppendIndexed(negative) error = %v", err)
	}

	view := sh.View()
	if view.Count != 2 || view.Capacity != 4 || view.TotalDuration != 2 || len(view.Songs) != 2 {
		t.Errorf("View() = %+v", view)
	}
	if view.Songs[0].Title != "A" || view.Songs[1].Title != "C" {
		t.Errorf("View() songs = %+v", view.Songs)
	}
}

func TestSharedPrintAfterRelease(t *testing.T) {
	sh := NewShared(mustNew(t))
	_ = sh.Append("A", "X", 100)
	sh.Release()

	var buf bytes.Buffer
	if err := sh.Print(&buf); !errors.Is(err, ErrReleased) {
		t.Errorf("Print() after Release error = %v, want ErrReleased", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Print() after Release wrote %q", buf.String())
	}
}
