package bindingfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	fsnotify "github.com/fsnotify/fsnotify"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	logger "github.com/inference-gateway/keybind/internal/logger"
	zap "go.uber.org/zap"
)

// ChangeFunc receives the reloaded table, or the error that prevented loading it
type ChangeFunc func(keybinding.Table, error)

// Watcher reloads a binding file whenever it is written or recreated.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	path      string
	onChange  ChangeFunc
	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	mutex     sync.Mutex
	running   bool
}

// NewWatcher creates a watcher for the binding file at path
func NewWatcher(path string, onChange ChangeFunc) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("change callback cannot be nil")
	}
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve binding file path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:      abs,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Start watches until ctx is cancelled or Close is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true

	go w.loop(ctx)

	logger.Info("Watching binding file", "path", w.path)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	ctx = logger.With(ctx, zap.String("watcher", "bindingfile"))
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			logger.Debug("Binding file changed", "path", w.path, "op", event.Op.String())
			table, err := Load(ctx, w.path)
			w.onChange(table, err)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Error("Binding file watcher error", "path", w.path, "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close stops watching and waits for the event loop to exit
func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	err := w.fsWatcher.Close()
	if w.running {
		<-w.done
		w.running = false
	}
	return err
}
