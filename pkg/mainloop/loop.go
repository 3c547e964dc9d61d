package mainloop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/bft-labs/pathfinder/pkg/log"
)

// ErrLoopRunning is returned by Run and Drain when another goroutine is
// already consuming the queue.
var ErrLoopRunning = errors.New("mainloop: already running")

// PanicHandler receives the value recovered from a panicking task.
type PanicHandler func(recovered any)

// Loop is an unbounded FIFO of tasks consumed by one goroutine at a time.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	running  atomic.Bool
	posted   atomic.Int64
	executed atomic.Int64

	logger  log.Logger
	onPanic PanicHandler
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the loop logger.
func WithLogger(l log.Logger) Option {
	return func(lp *Loop) {
		lp.logger = log.OrNoop(l)
	}
}

// WithPanicHandler sets the func told about recovered task panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(lp *Loop) {
		lp.onPanic = h
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn. It never blocks and may be called from any goroutine,
// including from inside a running task.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.posted.Inc()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do posts fn and waits until it has run or ctx is done. Calling Do from
// inside a task blocks that task until ctx expires.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run consumes tasks until ctx is done and returns ctx.Err(). Only one Run
// may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	l.logger.Debug("loop started", log.Int("queued", l.Len()))
	defer l.logger.Debug("loop stopped", log.Int("queued", l.Len()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fn, ok := l.next()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
				continue
			}
		}
		l.exec(fn)
	}
}

// Drain runs queued tasks on the calling goroutine until the queue is
// empty, including tasks posted while draining. It returns the number of
// tasks run. Drain is for hosts that pump the loop themselves.
func (l *Loop) Drain() (int, error) {
	if !l.running.CompareAndSwap(false, true) {
		return 0, ErrLoopRunning
	}
	defer l.running.Store(false)

	n := 0
	for {
		fn, ok := l.next()
		if !ok {
			return n, nil
		}
		l.exec(fn)
		n++
	}
}

// Len returns the number of tasks waiting to run.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Running reports whether a goroutine is consuming the queue.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Stats returns the number of tasks posted and executed so far.
func (l *Loop) Stats() (posted, executed int64) {
	return l.posted.Load(), l.executed.Load()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) exec(fn func()) {
	defer l.executed.Inc()
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked", log.String("panic", fmt.Sprint(r)))
			if l.onPanic != nil {
				l.onPanic(r)
			}
		}
	}()
	fn()
}
