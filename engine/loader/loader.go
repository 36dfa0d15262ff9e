package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-room/engine/model"
)

var (
	// ErrUnsupportedFormat is returned for model files no backend can read.
	ErrUnsupportedFormat = errors.New("loader: unsupported model format")

	// ErrNotLoaded is returned by Get-style lookups for models that are not cached.
	ErrNotLoaded = errors.New("loader: model not loaded")

	// ErrClosed is reported for asynchronous loads requested after Close.
	ErrClosed = errors.New("loader: closed")
)

// Result reports a finished asynchronous load.
type Result struct {
	ObjURL string
	MtlURL string
	Model  model.Model
	Err    error
}

// Key returns the cache key of the request.
func (r Result) Key() string {
	return cacheKey(r.ObjURL, r.MtlURL)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu *sync.RWMutex

	fsys    fs.FS
	backend loaderBackend
	logger  *slog.Logger

	workers int
	pool    worker.DynamicWorkerPool
	taskID  int
	closed  bool

	modelCache map[string]model.Model
	sources    map[string][]string
	pending    map[string]bool
	done       []Result

	requested int
	completed int
}

// Loader loads and caches models addressed by (objURL, mtlURL) pairs.
// URLs are slash-separated paths relative to the asset root; a leading "/" is optional.
type Loader interface {
	// Load reads a model synchronously, returning the cached copy on repeated calls.
	//
	// Parameters:
	//   - objURL: model file URL
	//   - mtlURL: material library URL, may be empty
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: ErrUnsupportedFormat, a file error or a parse error
	Load(objURL, mtlURL string) (model.Model, error)

	// LoadAsync queues a load on the worker pool. Cached models are reported on the
	// next Poll without touching the pool, and a request already in flight is not repeated.
	//
	// Parameters:
	//   - objURL: model file URL
	//   - mtlURL: material library URL, may be empty
	LoadAsync(objURL, mtlURL string)

	// Poll drains the results finished since the last call. Call it from the frame loop.
	//
	// Returns:
	//   - []Result: finished loads in completion order
	Poll() []Result

	// Get returns a cached model.
	//
	// Parameters:
	//   - objURL: model file URL
	//   - mtlURL: material library URL
	//
	// Returns:
	//   - model.Model: the model or nil
	//   - error: ErrNotLoaded when not cached
	Get(objURL, mtlURL string) (model.Model, error)

	// Progress returns the completion percentage (0-100) of the current batch of async loads.
	Progress() float32

	// Active reports whether any async load is in flight.
	Active() bool

	// Invalidate drops every cached model that was read from url.
	//
	// Parameters:
	//   - url: an asset URL, model or material
	//
	// Returns:
	//   - int: number of cache entries dropped
	Invalidate(url string) int

	// Close stops the worker pool. Later LoadAsync calls for uncached models
	// report ErrClosed; Load keeps working synchronously.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader reading OBJ/MTL assets.
//
// Parameters:
//   - options: functional options; WithAssetRoot or WithFS selects the files
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         &sync.RWMutex{},
		fsys:       os.DirFS("."),
		backend:    newOBJLoaderBackend(),
		logger:     slog.Default(),
		workers:    2,
		modelCache: make(map[string]model.Model),
		sources:    make(map[string][]string),
		pending:    make(map[string]bool),
	}
	for _, option := range options {
		option(l)
	}
	if l.workers > 0 {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	}
	return l
}

func (l *loader) Load(objURL, mtlURL string) (model.Model, error) {
	key := cacheKey(objURL, mtlURL)
	l.mu.RLock()
	if cached, ok := l.modelCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(objURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, read, err := backend.Load(l.fsys, assetPath(objURL), assetPath(mtlURL))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", objURL, err)
	}

	l.mu.Lock()
	l.modelCache[key] = m
	l.sources[key] = read
	l.mu.Unlock()

	l.logger.Info("model loaded", "obj", objURL, "meshes", len(m.Meshes()), "vertices", m.VertexCount(), "elapsed", time.Since(start))
	return m, nil
}

func (l *loader) LoadAsync(objURL, mtlURL string) {
	key := cacheKey(objURL, mtlURL)

	l.mu.Lock()
	if cached, ok := l.modelCache[key]; ok {
		l.done = append(l.done, Result{ObjURL: objURL, MtlURL: mtlURL, Model: cached})
		l.mu.Unlock()
		return
	}
	if l.closed {
		l.done = append(l.done, Result{ObjURL: objURL, MtlURL: mtlURL, Err: ErrClosed})
		l.mu.Unlock()
		return
	}
	if l.pending[key] {
		l.mu.Unlock()
		return
	}
	if len(l.pending) == 0 {
		l.requested, l.completed = 0, 0
	}
	l.pending[key] = true
	l.requested++
	id := l.taskID
	l.taskID++
	pool := l.pool
	l.mu.Unlock()

	run := func() (any, error) {
		m, err := l.Load(objURL, mtlURL)
		if err != nil {
			l.logger.Error("model load failed", "obj", objURL, "mtl", mtlURL, "err", err)
		}
		l.mu.Lock()
		delete(l.pending, key)
		l.completed++
		l.done = append(l.done, Result{ObjURL: objURL, MtlURL: mtlURL, Model: m, Err: err})
		l.mu.Unlock()
		return m, err
	}

	if pool == nil {
		run()
		return
	}
	pool.SubmitTask(worker.Task{ID: id, Do: run})
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	pool := l.pool
	l.pool = nil
	l.mu.Unlock()

	if pool != nil {
		pool.Stop()
	}
}

func (l *loader) Poll() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.done) == 0 {
		return nil
	}
	out := l.done
	l.done = nil
	return out
}

func (l *loader) Get(objURL, mtlURL string) (model.Model, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.modelCache[cacheKey(objURL, mtlURL)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", objURL, ErrNotLoaded)
	}
	return m, nil
}

func (l *loader) Progress() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.requested == 0 {
		return 100
	}
	return float32(l.completed) * 100 / float32(l.requested)
}

func (l *loader) Active() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.pending) > 0
}

func (l *loader) Invalidate(url string) int {
	p := assetPath(url)
	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for key, read := range l.sources {
		for _, r := range read {
			if r == p {
				delete(l.modelCache, key)
				delete(l.sources, key)
				dropped++
				break
			}
		}
	}
	if dropped > 0 {
		l.logger.Info("model cache invalidated", "path", p, "entries", dropped)
	}
	return dropped
}

// resolveBackend selects a backend by the model file extension.
func (l *loader) resolveBackend(objURL string) (loaderBackend, error) {
	ext := strings.ToLower(path.Ext(objURL))
	switch ext {
	case ".obj":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}
}

func cacheKey(objURL, mtlURL string) string {
	return assetPath(objURL) + "|" + assetPath(mtlURL)
}

// assetPath converts an asset URL to an fs.FS path.
func assetPath(url string) string {
	if url == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+url), "/")
}
