package source

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/haukened/hostblock/internal/hosts/domain"
)

// NotifyDetector layers an fsnotify watch over a StatDetector so the hot
// path skips the stat syscall entirely while the file is untouched.
// Events only set a dirty hint; the metadata compare and stability probe
// stay authoritative, which keeps the contract identical to polling.
//
// The watch covers the file's directory, not the file itself, so editors
// and updaters that replace the file (rename-over) are still observed.
type NotifyDetector struct {
	stat    *StatDetector
	path    string // cleaned, for event comparison
	dirty   atomic.Bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewNotifyDetector starts watching the directory containing stat.Path.
// The detector begins dirty so the first check performs one authoritative
// metadata compare.
func NewNotifyDetector(stat *StatDetector) (*NotifyDetector, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(stat.Path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	d := &NotifyDetector{
		stat:    stat,
		path:    filepath.Clean(stat.Path),
		watcher: w,
		done:    make(chan struct{}),
	}
	d.dirty.Store(true)
	go d.run()
	return d, nil
}

func (d *NotifyDetector) run() {
	defer close(d.done)
	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == d.path {
				d.dirty.Store(true)
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.stat.Logger.Warn(map[string]any{"path": d.path, "error": err.Error()}, "override watch error")
			// fall back to the authoritative compare on the next check
			d.dirty.Store(true)
		}
	}
}

func (d *NotifyDetector) ShouldReload(last domain.Snapshot) bool {
	if !d.dirty.Load() {
		return false
	}
	snap, err := Stat(d.path)
	if err != nil {
		return false
	}
	if snap.Equal(last) {
		// The event was a no-op or the reload already happened; back to
		// the quiet path. A genuinely mid-write file stays dirty.
		d.dirty.Store(false)
		return false
	}
	return d.stat.stable()
}

// Close stops the watch and waits for the event loop to exit. After Close
// the detector never reports a change again; ForceReload still works.
func (d *NotifyDetector) Close() error {
	err := d.watcher.Close()
	<-d.done
	return err
}

var _ Detector = (*NotifyDetector)(nil)
