// Package deeplink feeds navigation scripts dropped into a directory into
// a running pathfinder instance. Each *.toml, *.yaml or *.yml file created
// or written in the watched directory is decoded with package script and
// its steps are submitted to the router as one batch.
package deeplink

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/pathfinder"
	"github.com/bft-labs/pathfinder/pkg/router"
	"github.com/bft-labs/pathfinder/pkg/script"
)

// Plugin watches a directory for navigation scripts.
type Plugin struct {
	mu sync.Mutex

	dir           string
	debounceDelay time.Duration
	removeApplied bool
	onApplied     func(path string)

	router  *router.Router
	logger  log.Logger
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending map[string]*time.Timer
}

// Config holds configuration options for the deep-link plugin.
type Config struct {
	// Dir is the directory to watch. The plugin is disabled when empty.
	Dir string

	// DebounceDelay is how long a file must be quiet before it is loaded.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// RemoveApplied deletes each file once its commands were submitted.
	RemoveApplied bool

	// OnApplied, if set, is called after a file's commands were submitted.
	OnApplied func(path string)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a deep-link plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		dir:           cfg.Dir,
		debounceDelay: cfg.DebounceDelay,
		removeApplied: cfg.RemoveApplied,
		onApplied:     cfg.OnApplied,
		logger:        log.NoopLogger{},
		pending:       make(map[string]*time.Timer),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "deeplink"
}

// Initialize starts watching the configured directory.
func (p *Plugin) Initialize(ctx context.Context, cfg pathfinder.PluginConfig) error {
	p.mu.Lock()
	p.router = cfg.Router
	p.logger = log.OrNoop(cfg.Logger)
	p.mu.Unlock()

	if p.dir == "" || p.router == nil {
		p.logger.Warn("deep-link watcher disabled: no directory configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(p.dir); err != nil {
		_ = watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("deep-link watcher started", log.String("dir", p.dir))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and drops any debounced files not yet loaded.
// A file already being applied is finished before Shutdown returns.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	for path, t := range p.pending {
		if t.Stop() {
			p.wg.Done()
		}
		delete(p.pending, path)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isScript(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceApply(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("deep-link watcher error", log.Err(err))
		}
	}
}

// debounceApply restarts the quiet timer of path. Every scheduled timer
// holds one count on p.wg until it fires or is stopped.
func (p *Plugin) debounceApply(ctx context.Context, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if t, ok := p.pending[path]; ok && t.Stop() {
		p.wg.Done()
	}

	var timer *time.Timer
	p.wg.Add(1)
	timer = time.AfterFunc(p.debounceDelay, func() {
		defer p.wg.Done()

		p.mu.Lock()
		if p.pending[path] == timer {
			delete(p.pending, path)
		}
		p.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		p.apply(path)
	})
	p.pending[path] = timer
}

// apply loads path and submits its steps. Invalid files are logged and
// skipped.
func (p *Plugin) apply(path string) {
	s, err := script.Load(path)
	if err != nil {
		p.logger.Warn("deep link skipped", log.String("file", path), log.Err(err))
		return
	}
	batch, err := s.Commands()
	if err != nil {
		p.logger.Warn("deep link skipped", log.String("file", path), log.Err(err))
		return
	}
	if len(batch) == 0 {
		return
	}

	p.router.Execute(batch...)
	p.logger.Info("deep link applied",
		log.String("file", path),
		log.Strings("commands", batch.Names()),
	)
	if p.removeApplied {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("failed to remove applied deep link", log.String("file", path), log.Err(err))
		}
	}
	if p.onApplied != nil {
		p.onApplied(path)
	}
}

func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Ensure Plugin implements pathfinder.Plugin.
var _ pathfinder.Plugin = (*Plugin)(nil)
