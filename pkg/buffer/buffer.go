package buffer

import (
	"go.uber.org/atomic"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
)

// Processor executes command batches. navigator.Navigator implements it.
type Processor interface {
	ExecuteCommands(batch command.Batch) error
}

// Holder is the attach/detach surface handed to the presentation layer.
type Holder interface {
	// Attach installs p and replays buffered batches into it.
	Attach(p Processor)

	// Detach drops the current processor. Buffered batches are kept.
	Detach()
}

// Observer is told about buffer activity. Calls happen on the loop.
type Observer interface {
	OnBatchBuffered(batch command.Batch, pending int)
	OnBatchDelivered(batch command.Batch, pending int)
	OnBatchFailed(batch command.Batch, err error, pending int)
}

// CommandBuffer forwards batches to an attached Processor or queues them.
type CommandBuffer struct {
	loop     *mainloop.Loop
	logger   log.Logger
	observer Observer

	// owned by the loop
	processor Processor
	pending   []command.Batch

	pendingCount atomic.Int64
	attached     atomic.Bool
}

// Option configures a CommandBuffer.
type Option func(*CommandBuffer)

// WithLogger sets the buffer logger.
func WithLogger(l log.Logger) Option {
	return func(b *CommandBuffer) {
		b.logger = log.OrNoop(l)
	}
}

// WithObserver sets the buffer observer.
func WithObserver(o Observer) Option {
	return func(b *CommandBuffer) {
		b.observer = o
	}
}

// New creates a buffer whose work runs on loop.
func New(loop *mainloop.Loop, opts ...Option) *CommandBuffer {
	b := &CommandBuffer{
		loop:   loop,
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach schedules p to become the live processor. When the task runs, the
// pending batches are delivered to p in submission order and the queue is
// cleared.
func (b *CommandBuffer) Attach(p Processor) {
	b.loop.Post(func() {
		b.processor = p
		b.attached.Store(p != nil)
		if p == nil {
			return
		}

		queued := b.pending
		b.pending = nil
		b.pendingCount.Store(0)

		if len(queued) > 0 {
			b.logger.Info("replaying buffered commands", log.Int("batches", len(queued)))
		}
		for _, batch := range queued {
			b.deliver(p, batch)
		}
	})
}

// Detach schedules the processor reference to be cleared.
func (b *CommandBuffer) Detach() {
	b.loop.Post(func() {
		b.processor = nil
		b.attached.Store(false)
		b.logger.Debug("processor detached", log.Int("pending", len(b.pending)))
	})
}

// Submit schedules batch for delivery. Empty batches are ignored.
func (b *CommandBuffer) Submit(batch command.Batch) {
	if len(batch) == 0 {
		return
	}
	// copy so later edits by the caller cannot reach the queue
	owned := append(command.Batch(nil), batch...)

	b.loop.Post(func() {
		if b.processor != nil {
			b.deliver(b.processor, owned)
			return
		}
		b.pending = append(b.pending, owned)
		n := len(b.pending)
		b.pendingCount.Store(int64(n))

		b.logger.Debug("commands buffered",
			log.Strings("commands", owned.Names()),
			log.Int("pending", n),
		)
		if b.observer != nil {
			b.observer.OnBatchBuffered(owned, n)
		}
	})
}

// Pending returns the number of buffered batches. Safe from any goroutine.
func (b *CommandBuffer) Pending() int {
	return int(b.pendingCount.Load())
}

// Attached reports whether a processor is installed. Safe from any goroutine.
func (b *CommandBuffer) Attached() bool {
	return b.attached.Load()
}

func (b *CommandBuffer) deliver(p Processor, batch command.Batch) {
	if err := p.ExecuteCommands(batch); err != nil {
		b.logger.Error("command batch failed",
			log.Strings("commands", batch.Names()),
			log.Err(err),
		)
		if b.observer != nil {
			b.observer.OnBatchFailed(batch, err, b.Pending())
		}
		return
	}
	if b.observer != nil {
		b.observer.OnBatchDelivered(batch, b.Pending())
	}
}

var _ Holder = (*CommandBuffer)(nil)
