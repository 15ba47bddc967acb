// Package watch decodes every image that lands in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"lsbmark/pkg/watermark"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultSettleTime = 500 * time.Millisecond

	minTickInterval = time.Millisecond
)

var (
	ErrNotDirectory = errors.New("watch path is not a directory")

	imageExtensions = map[string]bool{
		".png": true, ".bmp": true, ".gif": true, ".tif": true, ".tiff": true, ".webp": true, ".jpg": true, ".jpeg": true,
	}
)

type Event struct {
	Path   string
	Result model.DecodeResult
	Stats  model.DecodeStats
	Err    error
}

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	settle    time.Duration
	config    config.WatermarkConfig

	// path -> time of the last write seen for it
	pending map[string]time.Time
}

// New starts watching dir right away, so files created after New returns are never missed
func New(dir string, wConfig config.WatermarkConfig, settle time.Duration) (*Watcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absDir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = fsWatcher.Add(absDir); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	if settle <= 0 {
		settle = DefaultSettleTime
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		dir:       absDir,
		settle:    settle,
		config:    wConfig,
		pending:   make(map[string]time.Time),
	}, nil
}

// Run hands an Event to handle for every image once it has stopped changing for the settle time. It blocks until ctx
// is cancelled and closes the watcher before returning
func (w *Watcher) Run(ctx context.Context, handle func(Event)) error {
	defer w.fsWatcher.Close()

	logger := logging.BuildLogger()
	logger.Info("Watching directory for images", "dir", w.dir)

	ticker := time.NewTicker(max(w.settle/2, minTickInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !isImage(event.Name) {
				continue
			}
			w.pending[event.Name] = time.Now()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("Watcher error")

		case now := <-ticker.C:
			for path, lastWrite := range w.pending {
				if now.Sub(lastWrite) < w.settle {
					continue
				}
				delete(w.pending, path)
				handle(w.decode(path))
			}
		}
	}
}

func (w *Watcher) decode(path string) Event {
	result, stats, err := watermark.DecodeFile(path, w.config)
	return Event{Path: path, Result: result, Stats: stats, Err: err}
}

// isImage skips hidden files, which includes the temporary files written while an output is being saved
func isImage(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(base))]
}
