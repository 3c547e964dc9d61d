package results

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/pathfinder/pkg/log"
)

// Listener receives a single result.
type Listener func(value any)

// Disposer removes a registration. Dispose is safe to call more than once
// and after the listener has fired.
type Disposer interface {
	Dispose()
}

// DisposerFunc adapts a func to Disposer.
type DisposerFunc func()

// Dispose calls f.
func (f DisposerFunc) Dispose() { f() }

type entry struct {
	id       uuid.UUID
	listener Listener
}

// Registry stores listeners keyed by string. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	listeners map[string]entry
	logger    log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l log.Logger) Option {
	return func(r *Registry) {
		r.logger = log.OrNoop(l)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		listeners: make(map[string]entry),
		logger:    log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Listen registers fn under key, replacing any previous registration for
// that key.
func (r *Registry) Listen(key string, fn Listener) Disposer {
	id := uuid.New()

	r.mu.Lock()
	_, replaced := r.listeners[key]
	r.listeners[key] = entry{id: id, listener: fn}
	r.mu.Unlock()

	if replaced {
		r.logger.Debug("result listener replaced", log.String("key", key))
	}

	var once sync.Once
	return DisposerFunc(func() {
		once.Do(func() { r.remove(key, id) })
	})
}

// Send delivers value to the listener registered under key and evicts it.
// The listener runs on the caller's goroutine, outside the registry lock.
func (r *Registry) Send(key string, value any) bool {
	r.mu.Lock()
	e, ok := r.listeners[key]
	if ok {
		delete(r.listeners, key)
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("result dropped, no listener", log.String("key", key))
		return false
	}
	e.listener(value)
	return true
}

// Len returns the number of live registrations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// remove deletes the registration for key only if it is still id.
func (r *Registry) remove(key string, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.listeners[key]; ok && e.id == id {
		delete(r.listeners, key)
	}
}

// ListenFor registers a typed listener. A nil value is delivered as the zero
// T; a value of another type consumes the registration without calling fn.
func ListenFor[T any](r *Registry, key string, fn func(T)) Disposer {
	return r.Listen(key, func(value any) {
		if value == nil {
			var zero T
			fn(zero)
			return
		}
		v, ok := value.(T)
		if !ok {
			r.logger.Warn("result type mismatch",
				log.String("key", key),
				log.String("got", fmt.Sprintf("%T", value)),
			)
			return
		}
		fn(v)
	})
}
