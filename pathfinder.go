// Package pathfinder is a navigation engine: routers issue commands, a
// command buffer holds them while no view is attached, and a navigator
// applies them to the view's back stack.
//
// Example usage:
//
//	pf, err := pathfinder.New(pathfinder.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pf.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pf.Stop()
//
//	nav := navigator.New()
//	_ = nav.SetStack(screen.Route{Name: "Home"})
//	pf.Attach(nav)
//	pf.Router().NavigateTo(screen.Route{Name: "Settings"})
//
// The building blocks live in sub-packages and can be used on their own:
// pkg/command, pkg/buffer, pkg/navigator, pkg/router, pkg/results and
// pkg/launch.
package pathfinder

import (
	engine "github.com/bft-labs/pathfinder/pkg/pathfinder"
)

// Config holds the settings of an engine instance.
type Config = engine.Config

// Option configures optional behavior of an engine instance.
type Option = engine.Option

// Pathfinder is an embeddable navigation engine.
type Pathfinder = engine.Pathfinder

// EventHandler receives engine events.
type EventHandler = engine.EventHandler

// New creates a stopped engine instance.
func New(cfg Config, opts ...Option) (*Pathfinder, error) {
	return engine.New(cfg, opts...)
}

// WithLogger, WithEventHandler and WithPlugin re-export the facade options.
var (
	WithLogger       = engine.WithLogger
	WithEventHandler = engine.WithEventHandler
	WithPlugin       = engine.WithPlugin
)
