// SPDX-License-Identifier: MIT

package settingsfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	xglog "github.com/xanmankey/WiiMix/internal/log"
)

// DefaultDebounce is the quiet period after the last change before the
// watcher fires.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a function whenever a settings file changes on disk.
// Bursts of events within the debounce window produce a single call.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context, path string)
	logger   zerolog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher returns a Watcher for path. A debounce of zero selects
// DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, onChange func(ctx context.Context, path string)) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   xglog.WithComponent("settingsfile").With().Str(xglog.FieldPath, path).Logger(),
	}
}

// Start begins watching. The parent directory is watched so that atomic
// replacements, which swap the inode, are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch settings directory: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.Info().
		Str(xglog.FieldEvent, "settings.watcher_started").
		Msg("watching settings file for changes")

	go w.loop(loopCtx, fw, w.done)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	defer func() { _ = fw.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(xglog.FieldEvent, "settings.watcher_stopped").Msg("settings watcher stopped")
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().
				Str(xglog.FieldEvent, "settings.file_changed").
				Str("op", event.Op.String()).
				Msg("settings file changed")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.onChange(ctx, w.path)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "settings.watcher_error").
				Msg("settings watcher error")
		}
	}
}

// Stop ends watching and waits for the loop to exit. It is safe to call on
// a watcher that was never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.watcher, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
