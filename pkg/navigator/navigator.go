package navigator

import (
	"context"
	"sync"

	"github.com/bft-labs/pathfinder/pkg/buffer"
	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

// Snapshot is the observable state handed to subscribers after a change.
type Snapshot struct {
	Screens    []screen.Screen
	Keys       []string
	Top        string
	Dialog     screen.Dialog
	RootIsHome bool
}

// Depth returns the number of screens in the snapshot.
func (s Snapshot) Depth() int {
	return len(s.Screens)
}

// Navigator is the stack processor. Commands are expected to arrive from a
// single goroutine (the dispatch loop); reads are safe from any goroutine.
type Navigator struct {
	mu         sync.RWMutex
	stack      BackStack
	overlay    OverlaySlot
	rootIsHome bool

	ctx    context.Context
	logger log.Logger

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the navigator logger.
func WithLogger(l log.Logger) Option {
	return func(n *Navigator) {
		n.logger = log.OrNoop(l)
	}
}

// WithOverlay binds the presentation layer's overlay slot. The slot is
// written while commands are being applied; its watchers must not call
// back into the navigator.
func WithOverlay(o OverlaySlot) Option {
	return func(n *Navigator) {
		if o != nil {
			n.overlay = o
		}
	}
}

// WithContext sets the context passed to external screens on launch.
// Launch runs while commands are being applied and must not call back into
// the navigator.
func WithContext(ctx context.Context) Option {
	return func(n *Navigator) {
		if ctx != nil {
			n.ctx = ctx
		}
	}
}

// New creates a navigator with no stack. Call SetStack or Bind before
// delivering commands.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		overlay:     NewOverlay(),
		ctx:         context.Background(),
		logger:      log.NoopLogger{},
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetStack seeds a fresh in-memory back stack with initial.
func (n *Navigator) SetStack(initial ...screen.Screen) error {
	if len(initial) == 0 {
		return ErrEmptyInitialStack
	}
	return n.Bind(NewMemoryBackStack(initial...))
}

// Bind adopts a back stack owned by the presentation layer, for example one
// restored after the view was recreated. It must hold at least one screen.
func (n *Navigator) Bind(bs BackStack) error {
	if bs == nil || bs.Len() == 0 {
		return ErrEmptyInitialStack
	}

	n.mu.Lock()
	n.stack = bs
	n.rootIsHome = false
	snap := n.snapshotLocked()
	n.mu.Unlock()

	n.logger.Debug("back stack bound", log.Strings("stack", snap.Keys))
	n.notify(snap)
	return nil
}

// ExecuteCommands applies batch in order. It stops at the first failing
// command and returns a *CommandError wrapping the cause.
func (n *Navigator) ExecuteCommands(batch command.Batch) error {
	n.mu.Lock()
	if n.stack == nil {
		n.mu.Unlock()
		return ErrStackNotInitialized
	}

	var (
		changed bool
		failure error
	)
	for i, c := range batch {
		did, err := n.apply(c)
		if err != nil {
			failure = &CommandError{Index: i, Command: c, Err: err}
			break
		}
		changed = changed || did
		n.logger.Debug("command executed",
			log.Command(c.Name()),
			log.Int("depth", n.stack.Len()),
			log.Bool("changed", did),
		)
	}
	snap := n.snapshotLocked()
	n.mu.Unlock()

	if changed {
		n.notify(snap)
	}
	return failure
}

// apply runs one command with n.mu held. It reports whether observable
// state changed.
func (n *Navigator) apply(c command.Command) (bool, error) {
	switch c := c.(type) {
	case command.NavigateTo:
		if ext, ok := c.Screen.(screen.External); ok {
			return false, ext.Launch(n.ctx)
		}
		n.stack.Add(c.Screen)
		return true, nil

	case command.Replace:
		if n.stack.Len() == 1 {
			n.rootIsHome = false
		}
		if n.stack.Len() > 0 {
			n.stack.RemoveLast()
		}
		n.stack.Add(c.Screen)
		return true, nil

	case command.Pop:
		if n.stack.Len() <= 1 {
			return false, nil
		}
		n.stack.RemoveLast()
		return true, nil

	case command.ClearStack:
		changed := n.stack.Len() > 0
		n.stack.Clear()
		n.rootIsHome = false
		return changed, nil

	case command.BackTo:
		index := n.lastIndexOf(c.Key)
		if index < 0 {
			return false, &TargetNotFoundError{Key: c.Key}
		}
		return n.truncate(index, c.Inclusive), nil

	case command.BackBySteps:
		size := n.stack.Len()
		if size == 0 {
			return false, nil
		}
		steps := c.Steps
		if steps < 0 {
			steps = 0
		}
		index := size - 1 - steps
		if index < 0 {
			index = 0
		}
		return n.truncate(index, c.Inclusive), nil

	case command.SetChain:
		if len(c.Screens) == 0 {
			return false, ErrEmptyChain
		}
		n.stack.Clear()
		n.stack.Add(c.Screens...)
		n.rootIsHome = c.MarkRootAsHome
		return true, nil

	case command.ShowDialog:
		n.overlay.Set(c.Dialog)
		return true, nil

	case command.DismissDialog:
		changed := n.overlay.Current() != nil
		n.overlay.Clear()
		return changed, nil

	default:
		return false, ErrUnknownCommand
	}
}

// lastIndexOf scans from the top for key.
func (n *Navigator) lastIndexOf(key string) int {
	for i := n.stack.Len() - 1; i >= 0; i-- {
		if screen.Key(n.stack.At(i)) == key {
			return i
		}
	}
	return -1
}

// truncate removes screens from the top until index (inclusive) or index+1
// is the new length, never going below one screen.
func (n *Navigator) truncate(index int, inclusive bool) bool {
	removeFrom := index + 1
	if inclusive {
		removeFrom = index
	}
	if size := n.stack.Len(); removeFrom > size {
		removeFrom = size
	}

	changed := false
	for n.stack.Len() > removeFrom && n.stack.Len() > 1 {
		n.stack.RemoveLast()
		changed = true
	}
	return changed
}

// Stack returns a copy of the current screens, or nil before SetStack.
func (n *Navigator) Stack() []screen.Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.stack == nil {
		return nil
	}
	return Screens(n.stack)
}

// Keys returns the keys of the current screens.
func (n *Navigator) Keys() []string {
	return screen.Keys(n.Stack())
}

// Top returns the key of the visible screen, or "" when the stack is empty.
func (n *Navigator) Top() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.stack == nil || n.stack.Len() == 0 {
		return ""
	}
	return screen.Key(n.stack.At(n.stack.Len() - 1))
}

// Dialog returns the dialog in the overlay slot, or nil.
func (n *Navigator) Dialog() screen.Dialog {
	return n.overlay.Current()
}

// Snapshot returns the current observable state.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.snapshotLocked()
}

func (n *Navigator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Dialog:     n.overlay.Current(),
		RootIsHome: n.rootIsHome,
	}
	if n.stack != nil {
		snap.Screens = Screens(n.stack)
		snap.Keys = screen.Keys(snap.Screens)
		if len(snap.Keys) > 0 {
			snap.Top = snap.Keys[len(snap.Keys)-1]
		}
	}
	return snap
}

// Subscribe registers fn to receive a Snapshot after every batch that
// changed the stack or overlay, and once on Bind. It returns a func that
// removes the subscription.
func (n *Navigator) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	n.subMu.Lock()
	id := n.nextSubID
	n.nextSubID++
	n.subscribers[id] = fn
	n.subMu.Unlock()

	return func() {
		n.subMu.Lock()
		delete(n.subscribers, id)
		n.subMu.Unlock()
	}
}

func (n *Navigator) notify(snap Snapshot) {
	n.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(n.subscribers))
	for id := 0; id < n.nextSubID; id++ {
		if fn, ok := n.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	n.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

var _ buffer.Processor = (*Navigator)(nil)
