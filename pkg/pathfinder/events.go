package pathfinder

import (
	"errors"

	"github.com/bft-labs/pathfinder/pkg/buffer"
	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/lifecycle"
	"github.com/bft-labs/pathfinder/pkg/navigator"
)

// State is the lifecycle state of a Pathfinder.
type State = lifecycle.State

const (
	StateStopped  = lifecycle.StateStopped
	StateStarting = lifecycle.StateStarting
	StateRunning  = lifecycle.StateRunning
	StateStopping = lifecycle.StateStopping
	StateCrashed  = lifecycle.StateCrashed
)

// StateChangeEvent reports a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// BatchEvent reports a batch passing through the command buffer.
type BatchEvent struct {
	Commands []string
	// Pending is the buffer's queue length once the event happened.
	Pending int
}

// Error kinds reported in CommandErrorEvent.Kind.
const (
	ErrorKindNotFound       = "not_found"
	ErrorKindNotInitialized = "not_initialized"
	ErrorKindEmptyChain     = "empty_chain"
	ErrorKindUnknown        = "unknown_command"
	ErrorKindOther          = "other"
)

// CommandErrorEvent reports a batch the navigator rejected.
type CommandErrorEvent struct {
	Commands []string
	Err      error
	Kind     string
	Pending  int
}

// StackChangeEvent reports the state of the attached navigator after a
// change.
type StackChangeEvent struct {
	Keys        []string
	Top         string
	DialogShown bool
	RootIsHome  bool
}

// EventHandler receives engine events. Calls happen on the dispatch loop
// except OnStateChange, which runs on the goroutine causing the change.
type EventHandler interface {
	OnStateChange(e StateChangeEvent)
	OnBatchBuffered(e BatchEvent)
	OnBatchDelivered(e BatchEvent)
	OnCommandError(e CommandErrorEvent)
	OnStackChange(e StackChangeEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// handle a subset of events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}
func (BaseEventHandler) OnBatchBuffered(BatchEvent)       {}
func (BaseEventHandler) OnBatchDelivered(BatchEvent)      {}
func (BaseEventHandler) OnCommandError(CommandErrorEvent) {}
func (BaseEventHandler) OnStackChange(StackChangeEvent)   {}

// ErrorKind classifies a navigator error for events and metrics.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, navigator.ErrScreenNotFound):
		return ErrorKindNotFound
	case errors.Is(err, navigator.ErrStackNotInitialized):
		return ErrorKindNotInitialized
	case errors.Is(err, navigator.ErrEmptyChain):
		return ErrorKindEmptyChain
	case errors.Is(err, navigator.ErrUnknownCommand):
		return ErrorKindUnknown
	default:
		return ErrorKindOther
	}
}

// handlers fans events out to every registered handler.
type handlers []EventHandler

func (h handlers) OnStateChange(previous, current lifecycle.State, reason string) {
	e := StateChangeEvent{Previous: previous, Current: current, Reason: reason}
	for _, x := range h {
		x.OnStateChange(e)
	}
}

func (h handlers) OnBatchBuffered(batch command.Batch, pending int) {
	e := BatchEvent{Commands: batch.Names(), Pending: pending}
	for _, x := range h {
		x.OnBatchBuffered(e)
	}
}

func (h handlers) OnBatchDelivered(batch command.Batch, pending int) {
	e := BatchEvent{Commands: batch.Names(), Pending: pending}
	for _, x := range h {
		x.OnBatchDelivered(e)
	}
}

func (h handlers) OnBatchFailed(batch command.Batch, err error, pending int) {
	e := CommandErrorEvent{Commands: batch.Names(), Err: err, Kind: ErrorKind(err), Pending: pending}
	for _, x := range h {
		x.OnCommandError(e)
	}
}

func (h handlers) onSnapshot(s navigator.Snapshot) {
	e := StackChangeEvent{
		Keys:        s.Keys,
		Top:         s.Top,
		DialogShown: s.Dialog != nil,
		RootIsHome:  s.RootIsHome,
	}
	for _, x := range h {
		x.OnStackChange(e)
	}
}

var (
	_ buffer.Observer        = handlers(nil)
	_ lifecycle.EventEmitter = handlers(nil)
	_ EventHandler           = BaseEventHandler{}
)
