package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/pathfinder/pkg/buffer"
	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/launch"
	"github.com/bft-labs/pathfinder/pkg/lifecycle"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
	"github.com/bft-labs/pathfinder/pkg/navigator"
	"github.com/bft-labs/pathfinder/pkg/results"
	"github.com/bft-labs/pathfinder/pkg/router"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

// Pathfinder is an embeddable navigation engine. Use New to create an
// instance, then Start to run its dispatch loop.
type Pathfinder struct {
	config    Config
	opts      options
	lifecycle *lifecycle.DefaultManager
	loop      *mainloop.Loop
	router    *router.Router
	bridge    *launch.Bridge
	logger    log.Logger

	mu          sync.Mutex
	cancel      context.CancelFunc
	unsubscribe func()
}

// New creates a stopped instance. Commands sent through Router before
// Start are queued on the loop and run once it starts.
func New(cfg Config, opts ...Option) (*Pathfinder, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	loop := mainloop.New(
		mainloop.WithLogger(logger),
		mainloop.WithPanicHandler(func(r any) {
			logger.Error("dispatch task panicked", log.Any("panic", r), log.String("instance", cfg.Name))
		}),
	)

	routerOpts := append([]router.Option{
		router.WithLogger(logger),
		router.WithObserver(o.handlers),
	}, o.routerOptions...)

	return &Pathfinder{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle.NewManager(logger, o.handlers),
		loop:      loop,
		router:    router.New(loop, routerOpts...),
		bridge:    launch.NewBridge(launch.WithLogger(logger)),
		logger:    logger,
	}, nil
}

// Start runs the dispatch loop in the background and initializes plugins.
// The loop stops when ctx is done or Stop is called.
func (p *Pathfinder) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lifecycle.CanStart() {
		return lifecycle.ErrAlreadyRunning
	}
	if err := p.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		Name:   p.config.Name,
		Router: p.router,
		Bridge: p.bridge,
		Logger: p.logger,
	}
	for i, pl := range p.opts.plugins {
		if err := pl.Initialize(runCtx, pluginCfg); err != nil {
			p.logger.Error("plugin initialization failed",
				log.String("plugin", pl.Name()),
				log.Err(err))
			p.shutdownPlugins(i - 1)
			cancel()
			_ = p.lifecycle.TransitionTo(lifecycle.StateCrashed, "plugin init failed: "+pl.Name())
			return fmt.Errorf("pathfinder: initialize plugin %s: %w", pl.Name(), err)
		}
		p.logger.Info("plugin initialized", log.String("plugin", pl.Name()))
	}

	p.lifecycle.AddWorker()
	go func() {
		defer p.lifecycle.WorkerDone()

		if err := p.lifecycle.TransitionTo(lifecycle.StateRunning, "dispatch loop starting"); err != nil {
			p.logger.Error("failed to transition to running", log.Err(err))
			return
		}

		err := p.loop.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("dispatch loop error", log.Err(err))
			_ = p.lifecycle.TransitionTo(lifecycle.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop cancels the dispatch loop, waits for it to exit and shuts plugins
// down in reverse order. Queued tasks are kept for a later Start.
func (p *Pathfinder) Stop() error {
	p.mu.Lock()
	if !p.lifecycle.CanStop() {
		p.mu.Unlock()
		return lifecycle.ErrNotRunning
	}
	if err := p.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	err := p.lifecycle.WaitWithTimeout(p.config.ShutdownTimeout)
	p.shutdownPlugins(len(p.opts.plugins) - 1)

	if err != nil {
		_ = p.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
	} else {
		_ = p.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins stops plugins last..0.
func (p *Pathfinder) shutdownPlugins(last int) {
	ctx := context.Background()
	for i := last; i >= 0; i-- {
		pl := p.opts.plugins[i]
		if err := pl.Shutdown(ctx); err != nil {
			p.logger.Error("plugin shutdown failed",
				log.String("plugin", pl.Name()),
				log.Err(err))
			continue
		}
		p.logger.Info("plugin shutdown complete", log.String("plugin", pl.Name()))
	}
}

// Status returns the current lifecycle state. Safe from any goroutine.
func (p *Pathfinder) Status() State {
	return p.lifecycle.State()
}

// Router returns the router screens navigate with.
func (p *Pathfinder) Router() *router.Router {
	return p.router
}

// Base returns the router core, for custom routers that embed it.
func (p *Pathfinder) Base() *router.Base {
	return p.router.Base
}

// Results returns the result registry shared by all screens.
func (p *Pathfinder) Results() *results.Registry {
	return p.router.Results()
}

// Holder returns the attach/detach surface of the command buffer.
func (p *Pathfinder) Holder() buffer.Holder {
	return p.router.Holder()
}

// Bridge returns the result-launch bridge.
func (p *Pathfinder) Bridge() *launch.Bridge {
	return p.bridge
}

// Loop returns the dispatch loop, for hosts that post their own UI work.
func (p *Pathfinder) Loop() *mainloop.Loop {
	return p.loop
}

// Execute submits cmds as one batch through the router.
func (p *Pathfinder) Execute(cmds ...command.Command) {
	p.router.Execute(cmds...)
}

// Attach installs nav as the live processor and forwards its stack changes
// to the event handlers. Any previously attached navigator is replaced.
func (p *Pathfinder) Attach(nav *navigator.Navigator) {
	p.mu.Lock()
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.unsubscribe = nav.Subscribe(p.opts.handlers.onSnapshot)
	p.mu.Unlock()

	p.logger.Debug("navigator attached", log.ScreenKey(nav.Top()))
	p.router.Holder().Attach(nav)
}

// Detach removes the live processor. Commands are buffered until the next
// Attach.
func (p *Pathfinder) Detach() {
	p.mu.Lock()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.mu.Unlock()

	p.router.Holder().Detach()
}

// Launch starts the operation registered under key on the bridge. It is
// shorthand for Bridge().Launch.
func (p *Pathfinder) Launch(key string, input any, onResult func(any)) error {
	return p.bridge.Launch(key, input, onResult)
}

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"buffer":    {buffer.Version, buffer.MinCompatibleVersion},
		"command":   {command.Version, command.MinCompatibleVersion},
		"launch":    {launch.Version, launch.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
		"mainloop":  {mainloop.Version, mainloop.MinCompatibleVersion},
		"navigator": {navigator.Version, navigator.MinCompatibleVersion},
		"results":   {results.Version, results.MinCompatibleVersion},
		"router":    {router.Version, router.MinCompatibleVersion},
		"screen":    {screen.Version, screen.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("pathfinder: module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion, both in
// "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
