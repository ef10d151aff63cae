package plugins

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher observes the registry's plugin paths and invalidates the manifest
// cache when a manifest changes on disk. Discovery itself re-scans on every
// call; the watcher only keeps the cache honest and lets interested callers
// react to plugin churn (e.g. a server refreshing its plugin listing).
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	log      *logrus.Logger
	done     chan struct{}
}

// NewWatcher creates a watcher over the registry's currently registered paths.
func NewWatcher(registry *Registry, log *logrus.Logger) (*Watcher, error) {
	if log == nil {
		log = logrus.New()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, path := range registry.Paths() {
		if err := fsWatcher.Add(path); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("failed to watch plugin path %s: %w", path, err)
		}
	}

	return &Watcher{
		registry: registry,
		watcher:  fsWatcher,
		log:      log,
		done:     make(chan struct{}),
	}, nil
}

// Start begins processing filesystem events. onChange, when non-nil, is called
// after the cache has been invalidated for each relevant event. Start returns
// immediately; call Close to stop.
func (w *Watcher) Start(onChange func(fsnotify.Event)) {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				// Only manifest churn matters; editor temp files are noise.
				if filepath.Base(event.Name) != ManifestFileName && event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				w.log.Debugf("Plugin path changed: %s (%s)", event.Name, event.Op)
				w.registry.InvalidateCache()
				if onChange != nil {
					onChange(event)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warnf("Plugin watcher error: %v", err)
			case <-w.done:
				return
			}
		}
	}()
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
