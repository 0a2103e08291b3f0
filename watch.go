package rigging

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher observes definition directories and turns file-system writes of
// .entdef files into pending save events. It covers files edited outside the
// editor; the editor's own save routine must still call
// Coordinator.DefinitionSaved directly.
//
// fsnotify delivers events on its own goroutine. To keep the engine
// single-threaded the watcher only buffers paths on a channel; the editor
// drains them on its thread with Drain, typically once per frame.
type Watcher struct {
	fsw     *fsnotify.Watcher
	pending chan string
	done    chan struct{}
}

// NewWatcher starts watching the given directories. Missing directories are
// skipped, matching the index's scan behavior.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Warn("not watching directory", "dir", dir, "err", err)
		}
	}

	w := &Watcher{
		fsw:     fsw,
		pending: make(chan string, 64),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(ev.Name, DefExt) {
				continue
			}
			select {
			case w.pending <- filepath.Clean(ev.Name):
			default:
				// Buffer full; the next scan or save will catch up.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Drain forwards every pending save event to the coordinator and reports how
// many were delivered. Non-blocking; call from the editor thread.
func (w *Watcher) Drain(co *Coordinator) int {
	n := 0
	for {
		select {
		case path := <-w.pending:
			co.DefinitionSaved(path)
			n++
		default:
			return n
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
