package library

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-imports the library whenever files under its root change.
type Watcher struct {
	dir      string
	catalog  Catalog
	debounce time.Duration
	onImport func(n int)

	watcher  *fsnotify.Watcher
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewWatcher(dir string, c Catalog) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:      dir,
		catalog:  c,
		debounce: DefaultDebounce,
		watcher:  fw,
		quit:     make(chan struct{}),
	}, nil
}

// OnImport registers a callback run after every re-import.
func (w *Watcher) OnImport(fn func(n int)) { w.onImport = fn }

// Start watches dir and every sub-directory present at start time.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the event loop to exit. Later calls are no-ops.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.quit)
		w.watcher.Close()
		w.wg.Wait()
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						log.Printf("ERROR: cannot watch %s: %v", event.Name, err)
					}
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			n, err := Import(w.catalog, w.dir)
			if err != nil {
				log.Printf("ERROR: library re-import failed: %v", err)
				continue
			}
			if w.onImport != nil {
				w.onImport(n)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ERROR library watcher: %v", err)

		case <-w.quit:
			timer.Stop()
			return
		}
	}
}
