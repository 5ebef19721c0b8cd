package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aussiebroadwan/doorman/pkg/slogx"
	"github.com/fsnotify/fsnotify"
)

// File serves switches resolved from a YAML file plus environment
// overrides. Reads are always current: environment overrides are looked up
// on every call and the file is re-read as soon as its size or modification
// time changes. Watch adds change notifications on top. It is safe for
// concurrent use.
type File struct {
	path string

	mu      sync.RWMutex
	values  map[string]bool // defaults merged with the file
	sources map[string]string
	stamp   fileStamp
}

// fileStamp identifies one version of the settings file.
type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

// Open resolves settings from path. An empty path or a missing file leaves
// the defaults (and env overrides) in effect.
func Open(path string) (*File, error) {
	f := &File{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Enabled(feature string) bool {
	if v, ok := envOverride(feature); ok {
		return v
	}
	f.refresh()

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[feature]
}

// Attributes lists every feature with its resolved value and source.
func (f *File) Attributes() []Attribute {
	f.refresh()

	f.mu.RLock()
	values := make(map[string]bool, len(f.values))
	sources := make(map[string]string, len(f.sources))
	for name, v := range f.values {
		values[name] = v
		sources[name] = f.sources[name]
	}
	f.mu.RUnlock()

	for name := range values {
		if v, ok := envOverride(name); ok {
			values[name] = v
			sources[name] = SourceEnv
		}
	}
	return sortedAttributes(values, sources)
}

// Reload re-reads the file. On error the previous values stay in effect.
func (f *File) Reload() error {
	stamp := f.statFile()

	values := Defaults()
	sources := make(map[string]string, len(values))
	for name := range values {
		sources[name] = SourceDefault
	}

	if f.path != "" {
		data, err := os.ReadFile(f.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("settings: read %s: %w", f.path, err)
		default:
			fromFile, err := Parse(data)
			if err != nil {
				return err
			}
			for name, v := range fromFile {
				values[name] = v
				sources[name] = SourceFile
			}
		}
	}

	f.mu.Lock()
	f.values = values
	f.sources = sources
	f.stamp = stamp
	f.mu.Unlock()
	return nil
}

// refresh reloads the file when it changed since the last load. A file that
// fails to load is remembered so it is not re-parsed on every read.
func (f *File) refresh() {
	if f.path == "" {
		return
	}
	stamp := f.statFile()

	f.mu.RLock()
	unchanged := stamp == f.stamp
	f.mu.RUnlock()
	if unchanged {
		return
	}

	if err := f.Reload(); err != nil {
		f.mu.Lock()
		f.stamp = stamp
		f.mu.Unlock()
	}
}

func (f *File) statFile() fileStamp {
	if f.path == "" {
		return fileStamp{}
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// Watch reloads the file whenever it is written, created or renamed into
// place, until ctx is cancelled. The parent directory is watched so editors
// that replace the file are handled. onReload, when non-nil, is called after
// each successful reload.
func (f *File) Watch(ctx context.Context, onReload func([]Attribute)) error {
	if f.path == "" {
		return errors.New("settings: no file to watch")
	}
	l := slogx.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings: create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("settings: watch %s: %w", dir, err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if err := f.Reload(); err != nil {
				l.Warn("settings reload failed, keeping previous values",
					slog.String("path", f.path), slog.Any("error", err))
				continue
			}
			l.Info("settings reloaded", slog.String("path", f.path))
			if onReload != nil {
				onReload(f.Attributes())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Warn("settings watcher error", slog.Any("error", err))
		}
	}
}
