package loader

import (
	"io/fs"
	"log/slog"
	"os"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithAssetRoot reads assets from a directory on disk.
//
// Parameters:
//   - dir: the asset root directory
//
// Returns:
//   - LoaderBuilderOption: a function that sets the asset filesystem
func WithAssetRoot(dir string) LoaderBuilderOption {
	return func(l *loader) {
		if dir == "" {
			dir = "."
		}
		l.fsys = os.DirFS(dir)
	}
}

// WithFS reads assets from an arbitrary filesystem.
//
// Parameters:
//   - fsys: the asset filesystem
//
// Returns:
//   - LoaderBuilderOption: a function that sets the asset filesystem
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithWorkers sets the worker pool size for LoadAsync. Zero runs loads inline.
//
// Parameters:
//   - workers: number of pool workers
//
// Returns:
//   - LoaderBuilderOption: a function that sets the worker count
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = workers
	}
}

// WithLogger sets the logger used for load diagnostics.
//
// Parameters:
//   - logger: the logger, nil keeps the default
//
// Returns:
//   - LoaderBuilderOption: a function that sets the logger
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
