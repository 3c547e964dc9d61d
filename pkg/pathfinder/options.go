package pathfinder

import (
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/router"
)

// Option configures optional behavior of a Pathfinder.
type Option func(*options)

type options struct {
	logger        log.Logger
	handlers      handlers
	plugins       []Plugin
	routerOptions []router.Option
}

func defaultOptions() options {
	return options{logger: log.NoopLogger{}}
}

// WithLogger sets the logger shared by every component.
// If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(logger)
	}
}

// WithEventHandler adds a handler for engine events. It may be given more
// than once; handlers are called in the order they were added.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.handlers = append(o.handlers, handler)
		}
	}
}

// WithPlugin registers a plugin to be initialized when the instance starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithRouterOptions passes extra options to the router, for example a
// shared result registry.
func WithRouterOptions(opts ...router.Option) Option {
	return func(o *options) {
		o.routerOptions = append(o.routerOptions, opts...)
	}
}
