package navigator

import (
	"sync"

	"github.com/bft-labs/pathfinder/pkg/screen"
)

// BackStack is the ordered, mutable collection the presentation layer
// exposes. The navigator only ever appends, removes the last element,
// clears, and reads by index.
type BackStack interface {
	Len() int
	At(i int) screen.Screen
	Add(screens ...screen.Screen)
	RemoveLast()
	Clear()
}

// Screens copies the contents of bs.
func Screens(bs BackStack) []screen.Screen {
	out := make([]screen.Screen, bs.Len())
	for i := range out {
		out[i] = bs.At(i)
	}
	return out
}

// MemoryBackStack is a slice-backed BackStack.
type MemoryBackStack struct {
	screens []screen.Screen
}

// NewMemoryBackStack creates a stack holding initial.
func NewMemoryBackStack(initial ...screen.Screen) *MemoryBackStack {
	return &MemoryBackStack{screens: append([]screen.Screen(nil), initial...)}
}

func (m *MemoryBackStack) Len() int                     { return len(m.screens) }
func (m *MemoryBackStack) At(i int) screen.Screen       { return m.screens[i] }
func (m *MemoryBackStack) Add(screens ...screen.Screen) { m.screens = append(m.screens, screens...) }

func (m *MemoryBackStack) RemoveLast() {
	if len(m.screens) == 0 {
		return
	}
	m.screens[len(m.screens)-1] = nil
	m.screens = m.screens[:len(m.screens)-1]
}

func (m *MemoryBackStack) Clear() {
	clear(m.screens)
	m.screens = m.screens[:0]
}

// OverlaySlot is the observable "current dialog" slot of the presentation
// layer.
type OverlaySlot interface {
	Set(d screen.Dialog)
	Clear()
	Current() screen.Dialog
}

// Overlay is an OverlaySlot that notifies watchers on every change. It is
// safe for concurrent use.
type Overlay struct {
	mu       sync.RWMutex
	current  screen.Dialog
	watchers []func(screen.Dialog)
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Set replaces the current dialog.
func (o *Overlay) Set(d screen.Dialog) {
	o.mu.Lock()
	o.current = d
	watchers := append([]func(screen.Dialog){}, o.watchers...)
	o.mu.Unlock()

	for _, w := range watchers {
		w(d)
	}
}

// Clear empties the slot. Watchers are told even if it was already empty.
func (o *Overlay) Clear() {
	o.Set(nil)
}

// Current returns the dialog in the slot, or nil.
func (o *Overlay) Current() screen.Dialog {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// Watch registers fn to receive the slot value after every Set or Clear.
func (o *Overlay) Watch(fn func(screen.Dialog)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.watchers = append(o.watchers, fn)
}
