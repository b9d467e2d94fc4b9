package watch

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

// DefaultInterval is the minimal delay between two runs when none is configured.
const DefaultInterval = 2 * time.Second

var log = logging.Logger("watch")

// Watcher runs a callback whenever the content of a binding root changes. Kubernetes
// refreshes projected bindings by swapping a "..data" link inside every binding directory,
// so the root and each of its subdirectories are watched.
type Watcher struct {
	Root string
	// Interval is the minimal delay between two runs; events arriving meanwhile are folded
	// into the next run.
	Interval time.Duration
}

// Run calls fn once, then again after every change below Root, until ctx is done. Errors
// returned by fn are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "unable to create file watcher")
	}
	defer fsw.Close()

	if err := fsw.Add(w.Root); err != nil {
		return errors.Wrapf(err, "unable to watch %q", w.Root)
	}
	entries, err := ioutil.ReadDir(w.Root)
	if err != nil {
		return errors.Wrapf(err, "unable to list %q", w.Root)
	}
	for _, e := range entries {
		w.addDir(fsw, filepath.Join(w.Root, e.Name()))
	}

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()

	w.invoke(fn)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			log.Trace("Binding root changed", "name", ev.Name, "op", ev.Op.String())
			if ev.Op&fsnotify.Create != 0 {
				w.addDir(fsw, ev.Name)
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			w.drain(fsw)
			w.invoke(fn)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "File watcher failure", "root", w.Root)
		}
	}
}

func (w *Watcher) invoke(fn func() error) {
	if err := fn(); err != nil {
		log.Error(err, "Unable to translate bindings", "root", w.Root)
	}
}

// addDir watches path when it is a direct subdirectory of the root.
func (w *Watcher) addDir(fsw *fsnotify.Watcher, path string) {
	if filepath.Dir(path) != filepath.Clean(w.Root) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := fsw.Add(path); err != nil {
		log.Warning("Unable to watch binding", "path", path, "error", err.Error())
	}
}

// drain consumes the events already queued so a burst results in a single run.
func (w *Watcher) drain(fsw *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				w.addDir(fsw, ev.Name)
			}
		default:
			return
		}
	}
}
