package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
	"github.com/3-lines-studio/pagesmith/internal/workspace"
)

const DefaultDebounce = 100 * time.Millisecond

type Config struct {
	Path     string
	Site     *usecase.SiteService
	Document *workspace.Document
	Logger   logger.Logger
	Debounce time.Duration
	// OnImport runs after every reload attempt; errs is nil on success.
	OnImport func(errs []dsl.Error)
}

// Watcher re-imports a DSL file into a document whenever it is saved.
// The parent directory is watched so editors that replace the file on
// save are still seen.
type Watcher struct {
	path     string
	site     *usecase.SiteService
	doc      *workspace.Document
	log      logger.Logger
	debounce time.Duration
	onImport func([]dsl.Error)

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

func New(cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.Path, err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		site:     cfg.Site,
		doc:      cfg.Document,
		log:      cfg.Logger.With(map[string]interface{}{"path": abs}),
		debounce: cfg.Debounce,
		onImport: cfg.OnImport,
		watcher:  fw,
	}, nil
}

// Run blocks until ctx is done or the underlying watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isSourceEvent(event) {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error", nil)
		}
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

// Reload reads the file and imports it. A failed read leaves the document
// untouched.
func (w *Watcher) Reload() []dsl.Error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.WithError(err).Warn("failed to read source", nil)
		return nil
	}

	errs := w.doc.Import(w.site, string(data))
	if len(errs) > 0 {
		for _, e := range errs {
			w.log.Warn("source has errors", map[string]interface{}{
				"line":  e.Line,
				"col":   e.Col,
				"error": e.Msg,
			})
		}
	} else {
		w.log.Info("source reloaded", map[string]interface{}{"version": w.doc.Version()})
	}

	if w.onImport != nil {
		w.onImport(errs)
	}
	return errs
}

func (w *Watcher) isSourceEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.Reload()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
