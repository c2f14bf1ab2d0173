// Package inbox watches a directory for documents using fsnotify.
package inbox

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeSource = (*Watcher)(nil)

// DefaultMaxFileSize is the largest file read into a change (64 MiB).
const DefaultMaxFileSize = 64 << 20

// Watcher reports document changes under a root directory. Hidden files
// and directories below the root are ignored.
type Watcher struct {
	root        string
	maxFileSize int64

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMaxFileSize skips files larger than n bytes.
func WithMaxFileSize(n int64) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.maxFileSize = n
		}
	}
}

// New creates a watcher for root.
func New(root string, opts ...Option) *Watcher {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	w := &Watcher{root: root, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Validate checks that the root is an existing directory.
func (w *Watcher) Validate() error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("inbox %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("inbox %s is not a directory: %w", w.root, domain.ErrInvalidInput)
	}
	return nil
}

// Watch starts watching the root and every visible subdirectory.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.addTree(fw, w.root); err != nil {
		fw.Close()
		return nil, err
	}

	w.mu.Lock()
	if w.watcher != nil {
		w.mu.Unlock()
		fw.Close()
		return nil, fmt.Errorf("inbox %s is already being watched: %w", w.root, domain.ErrInvalidInput)
	}
	w.watcher = fw
	w.mu.Unlock()

	out := make(chan domain.RawDocumentChange, 16)
	go func() {
		defer close(out)
		defer w.release(fw)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					w.watchNewDir(fw, event.Name)
				}
				change := w.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case out <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("watching %s: %v", w.root, err)
			}
		}
	}()

	logger.Debug("watching %s", w.root)
	return out, nil
}

// Scan reports every visible file under the root as created.
func (w *Watcher) Scan(ctx context.Context) ([]domain.RawDocumentChange, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	var changes []domain.RawDocumentChange
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("scanning %s: %v", path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != w.root && w.hidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if change := w.readChange(path, domain.ChangeCreated); change != nil {
			changes = append(changes, *change)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", w.root, err)
	}
	return changes, nil
}

// Close stops an active watch.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// release closes fw and forgets it if it is still the active watcher.
func (w *Watcher) release(fw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == fw {
		w.watcher = nil
	}
	fw.Close()
}

// addTree adds dir and its visible subdirectories to fw.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) watchNewDir(fw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.hidden(path) {
		return
	}
	if err := w.addTree(fw, path); err != nil {
		logger.Warn("%v", err)
	}
}

// handleFsEvent converts an fsnotify event into a change, or nil when the
// event is not relevant.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	if w.hidden(event.Name) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Create):
		return w.readChange(event.Name, domain.ChangeCreated)
	case event.Has(fsnotify.Write):
		return w.readChange(event.Name, domain.ChangeUpdated)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.RawDocumentChange{Type: domain.ChangeDeleted, Path: event.Name}
	default:
		return nil
	}
}

// readChange loads path into a change. Directories, unreadable files and
// files over the size limit yield nil.
func (w *Watcher) readChange(path string, typ domain.ChangeType) *domain.RawDocumentChange {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	if info.Size() > w.maxFileSize {
		logger.Warn("skipping %s: %d bytes exceeds limit of %d", path, info.Size(), w.maxFileSize)
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("reading %s: %v", path, err)
		return nil
	}

	return &domain.RawDocumentChange{
		Type: typ,
		Path: path,
		Document: domain.RawDocument{
			Name:     filepath.Base(path),
			MIMEType: detectMIMEType(path),
			Content:  content,
		},
	}
}

// hidden reports whether path is hidden relative to the root, so a root
// inside a dot directory still works.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return isHidden(rel)
}

// isHidden reports whether any element of path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}

// mimeOverrides covers extensions the system MIME table may not know.
var mimeOverrides = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".mdown":    "text/markdown",
	".txt":      "text/plain",
	".text":     "text/plain",
	".htm":      "text/html",
	".html":     "text/html",
	".pdf":      "application/pdf",
}

// detectMIMEType guesses a media type from the file extension.
func detectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "text/plain"
	}
	if mt, ok := mimeOverrides[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
		return mt
	}
	return "application/octet-stream"
}
