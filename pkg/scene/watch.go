package scene

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher renders once and then again whenever the mesh or the config file
// changes.
type Watcher struct {
	// Load returns the config to render. It is called before every render
	// so edits to the config file take effect.
	Load func() (Config, error)

	// ConfigPath is watched as well when set.
	ConfigPath string

	// Debounce collapses bursts of events; editors often write a file in
	// several steps. Defaults to 100ms.
	Debounce time.Duration

	// OnRender receives every render outcome.
	OnRender func(*Result, error)

	Logger *slog.Logger
}

// Run blocks until ctx is done. Render failures are reported through
// OnRender and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch parent directories; editors often replace files by rename.
	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	track := func(path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			return
		}
		if err := fw.Add(dir); err != nil {
			logger.Warn("cannot watch directory", slog.String("dir", dir), slog.Any("err", err))
			return
		}
		dirs[dir] = true
	}

	renderNow := func() {
		cfg, err := w.Load()
		if err != nil {
			w.report(nil, err)
			return
		}
		clear(targets)
		track(w.ConfigPath)
		track(cfg.Mesh)
		w.report(Render(ctx, cfg, logger))
	}

	track(w.ConfigPath)
	renderNow()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change detected", slog.String("path", abs), slog.String("op", ev.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("err", err))
		case <-timer.C:
			renderNow()
		}
	}
}

func (w *Watcher) report(res *Result, err error) {
	if w.OnRender != nil {
		w.OnRender(res, err)
	}
}
