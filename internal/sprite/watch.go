package sprite

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-registers sprites when image files in a directory are created or
// rewritten. The sprite name is StemName of the file, matching BuildIndex.
type Watcher struct {
	atlas  *Atlas
	fw     *fsnotify.Watcher
	logger *slog.Logger

	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts watching dir (not recursive).
func Watch(a *Atlas, dir string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("sprite: watch %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("sprite: watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{atlas: a, fw: fw, logger: logger}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !Supported(ev.Name) {
				continue
			}
			name := StemName(ev.Name)
			err := w.atlas.RegisterFile(name, ev.Name)
			if err != nil {
				// Partially written files fail here and succeed on the next Write.
				w.logger.Debug("sprite reload failed", "name", name, "path", ev.Name, "err", err)
			} else {
				w.logger.Info("sprite reloaded", "name", name, "path", ev.Name)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sprite watcher error", "err", err)
		}
	}
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fw.Close()
		w.wg.Wait()
	})
	return err
}
