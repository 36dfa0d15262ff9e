package loader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to files under an asset root as asset URLs.
type Watcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	root     string
	debounce time.Duration
	timers   map[string]*time.Timer
	onChange func(url string)
	logger   *slog.Logger
	closed   bool
}

// NewWatcher watches every directory below root.
//
// Parameters:
//   - root: the asset root directory
//   - debounce: quiet period before a change is reported
//   - onChange: called with the changed file's URL ("/dir/file.obj"), from a timer goroutine
//   - logger: logger for watcher errors, nil uses slog.Default
//
// Returns:
//   - *Watcher: the watcher, not yet started
//   - error: error if the watcher cannot be created or a directory cannot be added
func NewWatcher(root string, debounce time.Duration, onChange func(url string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	return &Watcher{
		watcher:  w,
		root:     abs,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start consumes filesystem events on a background goroutine until Close.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.handleChange(event.Name)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("asset watcher error", "err", err)
			}
		}
	}()
}

func (w *Watcher) handleChange(name string) {
	url, ok := assetURL(w.root, name)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, exists := w.timers[url]; exists {
		timer.Stop()
	}
	w.timers[url] = time.AfterFunc(w.debounce, func() {
		w.onChange(url)
	})
}

// Close stops the watcher and cancels pending notifications.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	return w.watcher.Close()
}

// assetURL maps an absolute file path under root to a slash-rooted asset URL.
func assetURL(root, name string) (string, bool) {
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == "." || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}
