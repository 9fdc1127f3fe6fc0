// Package filesignal carries named cross-process signals through a shared
// directory. A sender touches <dir>/<name>; a Watcher on the same directory
// publishes bus.Named(name) once per burst of changes.
package filesignal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/rimed/internal/bus"
	"github.com/bft-labs/rimed/pkg/log"
)

// DefaultDebounce is the quiet period after a change before publishing.
const DefaultDebounce = 100 * time.Millisecond

// Post signals name to every watcher of dir.
func Post(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create signal dir: %w", err)
	}
	stamp := time.Now().UTC().Format(time.RFC3339Nano) + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("post %s: %w", name, err)
	}
	return nil
}

// Watcher publishes bus.Named(name) when <dir>/<name> is written.
type Watcher struct {
	mu sync.Mutex

	dir      string
	name     string
	debounce time.Duration
	bus      *bus.Bus
	logger   log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	timer  *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher. Call Start to begin watching.
func NewWatcher(dir, name string, b *bus.Bus, logger log.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		name:     name,
		debounce: DefaultDebounce,
		bus:      b,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start creates the directory if needed and watches it until ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create signal dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.logger.Info("watching for signal", log.String("dir", w.dir), log.String("name", w.name))

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)
	return nil
}

// Stop ends watching and drops any pending publish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("signal watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		n := w.bus.Publish(bus.Named(w.name))
		w.logger.Debug("signal received", log.String("name", w.name), log.Int("subscribers", n))
	})
}
