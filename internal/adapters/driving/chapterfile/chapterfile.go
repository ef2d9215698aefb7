// Package chapterfile loads chapter files from disk and watches them for edits.
package chapterfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/logger"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// Load reads a chapter file and normalises it to prose.
// mimeType overrides detection from the file extension when set.
// A nil registry returns the file content unchanged.
func Load(ctx context.Context, registry driven.NormaliserRegistry, path, mimeType string) (*domain.Manuscript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Normalise(ctx, registry, path, mimeType, data)
}

// Normalise converts raw chapter bytes to prose.
func Normalise(
	ctx context.Context,
	registry driven.NormaliserRegistry,
	uri, mimeType string,
	data []byte,
) (*domain.Manuscript, error) {
	if mimeType == "" {
		mimeType = normalisers.MIMETypeForPath(uri)
	}

	if registry == nil {
		return &domain.Manuscript{
			URI:       uri,
			Title:     normalisers.TitleFromURI(uri),
			Format:    "text",
			Content:   string(data),
			CreatedAt: time.Now(),
		}, nil
	}

	m, err := registry.Normalise(ctx, &domain.RawManuscript{
		URI:      uri,
		MIMEType: mimeType,
		Content:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("normalising %s: %w", uri, err)
	}
	return m, nil
}

// Watcher reloads a chapter file whenever it changes on disk.
type Watcher struct {
	path     string
	mimeType string
	registry driven.NormaliserRegistry
}

// NewWatcher creates a watcher for path.
func NewWatcher(path, mimeType string, registry driven.NormaliserRegistry) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		mimeType: mimeType,
		registry: registry,
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch emits the normalised chapter after every write until ctx is done.
// The parent directory is watched so editors that save by renaming a
// temporary file over the chapter are picked up.
func (w *Watcher) Watch(ctx context.Context) (<-chan *domain.Manuscript, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", w.path, err)
	}

	out := make(chan *domain.Manuscript, 1)
	go func() {
		defer close(out)
		defer watcher.Close() //nolint:errcheck

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				m := w.handleFsEvent(ctx, event)
				if m == nil {
					continue
				}
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("chapterfile: watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

// handleFsEvent reloads the chapter for writes and creates of the watched file.
// Other files and other operations return nil.
func (w *Watcher) handleFsEvent(ctx context.Context, event fsnotify.Event) *domain.Manuscript {
	if filepath.Clean(event.Name) != w.path {
		return nil
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	m, err := Load(ctx, w.registry, w.path, w.mimeType)
	if err != nil {
		logger.Warn("chapterfile: %v", err)
		return nil
	}
	logger.Debug("chapterfile: reloaded %s (%d bytes)", w.path, len(m.Content))
	return m
}
