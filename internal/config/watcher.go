package config

import (
	"log"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events a single save produces
const reloadDelay = 100 * time.Millisecond

// Watcher watches a config file and reloads it when it changes. The
// containing directory is watched so editors that save by rename are
// still seen. Handlers only run when the loaded config differs from the
// current one.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.RWMutex
	config   *Config
	handlers []func(*Config)
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher loads path and prepares to watch it
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{
		path:    abs,
		watcher: w,
		config:  cfg,
		done:    make(chan struct{}),
	}, nil
}

// Start starts watching for config file changes
func (w *Watcher) Start() {
	go w.watch()
}

// Stop stops the config watcher
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
}

// OnReload registers a handler called with each successfully reloaded
// config
func (w *Watcher) OnReload(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the current config
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(reloadDelay)
		return
	}
	w.timer = time.AfterFunc(reloadDelay, w.reload)
}

// reload keeps the previous config when the new file does not load
func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("Failed to reload config: %v", err)
		return
	}

	w.mu.Lock()
	if reflect.DeepEqual(cfg, w.config) {
		w.mu.Unlock()
		return
	}
	w.config = cfg
	handlers := make([]func(*Config), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("Config reloaded from %s", w.path)

	for _, handler := range handlers {
		handler(cfg)
	}
}
