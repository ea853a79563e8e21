// Package watch polls a directory tree for changes to source files.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cae.watch")

// Ext is the extension of the files a Watcher reports.
const Ext = ".cae"

const DefaultInterval = time.Second

// Handler is told about files that appeared, changed or disappeared.
type Handler interface {
	Changed(path string)
	Removed(path string)
}

type Watcher struct {
	root     string
	handler  Handler
	interval time.Duration
	modTimes map[string]time.Time
}

type Option func(*Watcher)

func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.interval = d
	}
}

func New(root string, h Handler, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		handler:  h,
		interval: DefaultInterval,
		modTimes: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run scans immediately and then once per interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.Scan(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.Scan(); err != nil {
				return err
			}
		}
	}
}

// Scan walks the tree once. New and modified files are passed to Changed in
// path order, then files that are gone to Removed.
func (w *Watcher) Scan() error {
	current := make(map[string]bool)
	var changed []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return err
			}
			log.Debugf("skip %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != w.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true
		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			changed = append(changed, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var removed []string
	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			removed = append(removed, path)
		}
	}
	sort.Strings(removed)

	for _, path := range changed {
		log.Debugf("changed: %s", path)
		w.handler.Changed(path)
	}
	for _, path := range removed {
		log.Debugf("removed: %s", path)
		w.handler.Removed(path)
	}
	return nil
}
