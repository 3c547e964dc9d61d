package router

import (
	"github.com/bft-labs/pathfinder/pkg/buffer"
	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
	"github.com/bft-labs/pathfinder/pkg/results"
)

// Base owns the command buffer and result registry of a router.
type Base struct {
	buffer   *buffer.CommandBuffer
	registry *results.Registry
	logger   log.Logger
}

// Option configures a Base.
type Option func(*options)

type options struct {
	logger   log.Logger
	observer buffer.Observer
	registry *results.Registry
}

// WithLogger sets the logger used by the router, its buffer and its
// registry.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(l)
	}
}

// WithObserver forwards buffer activity to obs.
func WithObserver(obs buffer.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithRegistry shares an existing result registry.
func WithRegistry(r *results.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// NewBase creates a Base whose buffer runs on loop.
func NewBase(loop *mainloop.Loop, opts ...Option) *Base {
	o := options{logger: log.NoopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	bufOpts := []buffer.Option{buffer.WithLogger(o.logger)}
	if o.observer != nil {
		bufOpts = append(bufOpts, buffer.WithObserver(o.observer))
	}
	if o.registry == nil {
		o.registry = results.NewRegistry(results.WithLogger(o.logger))
	}

	return &Base{
		buffer:   buffer.New(loop, bufOpts...),
		registry: o.registry,
		logger:   o.logger,
	}
}

// Execute submits cmds as one batch. An empty call does nothing.
func (b *Base) Execute(cmds ...command.Command) {
	if len(cmds) == 0 {
		return
	}
	b.buffer.Submit(command.Batch(cmds))
}

// ListenForResult registers fn for the next value sent under key.
func (b *Base) ListenForResult(key string, fn results.Listener) results.Disposer {
	return b.registry.Listen(key, fn)
}

// SendResult delivers value to the listener registered under key, if any.
func (b *Base) SendResult(key string, value any) {
	b.registry.Send(key, value)
}

// Holder returns the attach/detach surface for the presentation layer.
func (b *Base) Holder() buffer.Holder {
	return b.buffer
}

// Buffer returns the underlying command buffer.
func (b *Base) Buffer() *buffer.CommandBuffer {
	return b.buffer
}

// Results returns the result registry.
func (b *Base) Results() *results.Registry {
	return b.registry
}
