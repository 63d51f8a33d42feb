package storagewatch

import (
	"context"
	"crypto/sha256"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
)

// DebounceInterval lets a burst of filesystem events settle before the tree
// is re-hashed. Atomic writes land as a temp-file write plus a rename, so a
// single logical change produces several events.
const DebounceInterval = 100 * time.Millisecond

// Watcher observes the local storage directory and publishes a
// storage.changed event when another process mutates the data. It is the
// cross-process counterpart to the in-process bus: a second instance writing
// the same directory still refreshes this one's listeners.
type Watcher struct {
	baseDir string
	bus     *eventbus.Bus

	mu       sync.Mutex
	lastHash [sha256.Size]byte
}

func New(baseDir string, bus *eventbus.Bus) *Watcher {
	return &Watcher{baseDir: baseDir, bus: bus}
}

// Run watches until ctx is canceled. The initial tree hash is taken before
// watching so events caused by this process's own boot writes are deduped.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.baseDir); err != nil {
		return err
	}
	w.mu.Lock()
	w.lastHash = w.hashTree()
	w.mu.Unlock()

	slog.Info("watching storage directory", "dir", w.baseDir)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// New subdirectories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(watcher, event.Name); err != nil {
						slog.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, w.checkChanged)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("storage watcher error", "error", err)
		}
	}
}

// checkChanged re-hashes the tree and publishes only when the content
// actually differs, so touch-only events and our own redundant writes stay
// quiet.
func (w *Watcher) checkChanged() {
	w.mu.Lock()
	defer w.mu.Unlock()

	h := w.hashTree()
	if h == w.lastHash {
		return
	}
	w.lastHash = h
	w.bus.PublishNew(eventbus.EventStorageChanged, "", "", nil)
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// hashTree folds every file's path and content into one digest. The data
// directory is small, a handful of YAML files, so a full rescan per change
// is cheap.
func (w *Watcher) hashTree() [sha256.Size]byte {
	h := sha256.New()
	_ = filepath.WalkDir(w.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		io.WriteString(h, path)
		io.Copy(h, f)
		return nil
	})
	var result [sha256.Size]byte
	copy(result[:], h.Sum(nil))
	return result
}
