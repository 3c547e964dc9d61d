package launch

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bft-labs/pathfinder/pkg/log"
)

// ErrUnknownOperation is returned by Launch for a key nothing was
// registered under.
var ErrUnknownOperation = errors.New("launch: no operation registered")

// Operation starts an asynchronous platform operation and calls complete
// exactly once with its output.
type Operation interface {
	Launch(input any, complete func(output any))
}

// OperationFunc adapts a func to Operation.
type OperationFunc func(input any, complete func(output any))

// Launch implements Operation.
func (f OperationFunc) Launch(input any, complete func(output any)) { f(input, complete) }

// Bridge maps operation keys to registered operations and pending
// callbacks. It is safe for concurrent use.
type Bridge struct {
	mu         sync.Mutex
	operations map[string]Operation
	callbacks  map[string]func(any)
	logger     log.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(l log.Logger) Option {
	return func(b *Bridge) {
		b.logger = log.OrNoop(l)
	}
}

// NewBridge creates an empty bridge.
func NewBridge(opts ...Option) *Bridge {
	b := &Bridge{
		operations: make(map[string]Operation),
		callbacks:  make(map[string]func(any)),
		logger:     log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register binds op to key, replacing any earlier registration.
func (b *Bridge) Register(key string, op Operation) {
	b.mu.Lock()
	b.operations[key] = op
	b.mu.Unlock()

	b.logger.Debug("operation registered", log.String("key", key))
}

// Launch stores onResult under key and starts the operation registered for
// it. The operation runs on the caller's goroutine.
func (b *Bridge) Launch(key string, input any, onResult func(output any)) error {
	b.mu.Lock()
	op, ok := b.operations[key]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownOperation, key)
	}
	if _, waiting := b.callbacks[key]; waiting {
		b.logger.Debug("pending callback replaced", log.String("key", key))
	}
	b.callbacks[key] = onResult
	b.mu.Unlock()

	op.Launch(input, func(output any) { b.complete(key, output) })
	return nil
}

// complete delivers output to the callback waiting under key, if any. A
// callback replaced by a later Launch never fires.
func (b *Bridge) complete(key string, output any) {
	b.mu.Lock()
	cb, ok := b.callbacks[key]
	if ok {
		delete(b.callbacks, key)
	}
	b.mu.Unlock()

	if !ok {
		b.logger.Debug("operation completed with no callback", log.String("key", key))
		return
	}
	if cb != nil {
		cb(output)
	}
}

// Keys returns the registered operation keys in sorted order.
func (b *Bridge) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.operations))
	for k := range b.operations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pending reports whether a callback is waiting under key.
func (b *Bridge) Pending(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.callbacks[key]
	return ok
}
