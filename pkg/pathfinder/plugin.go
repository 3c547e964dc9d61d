package pathfinder

import (
	"context"

	"github.com/bft-labs/pathfinder/pkg/launch"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/router"
)

// Plugin extends a Pathfinder with optional behavior, for example feeding
// deep links into the router. Plugins are initialized in registration
// order on Start and shut down in reverse order on Stop.
type Plugin interface {
	// Name returns a short identifier used in logs.
	Name() string

	// Initialize starts the plugin. A returned error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin receives on Initialize.
type PluginConfig struct {
	Name   string
	Router *router.Router
	Bridge *launch.Bridge
	Logger log.Logger
}
