package router

import (
	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

// Router is the default router with one method per command.
type Router struct {
	*Base
}

// New creates a Router whose buffer runs on loop.
func New(loop *mainloop.Loop, opts ...Option) *Router {
	return &Router{Base: NewBase(loop, opts...)}
}

// NavigateTo opens s on top of the current screen.
func (r *Router) NavigateTo(s screen.Screen) {
	r.Execute(command.NavigateTo{Screen: s})
}

// Replace swaps the current screen for s.
func (r *Router) Replace(s screen.Screen) {
	r.Execute(command.Replace{Screen: s})
}

// BackTo returns to the topmost screen with the same key as s.
func (r *Router) BackTo(s screen.Screen, inclusive bool) {
	r.BackToKey(screen.Key(s), inclusive)
}

// BackToKey returns to the topmost screen with key.
func (r *Router) BackToKey(key string, inclusive bool) {
	r.Execute(command.BackTo{Key: key, Inclusive: inclusive})
}

// BackBySteps goes back n screens, or n+1 when inclusive.
func (r *Router) BackBySteps(n int, inclusive bool) {
	r.Execute(command.BackBySteps{Steps: n, Inclusive: inclusive})
}

// Exit closes the current screen.
func (r *Router) Exit() {
	r.Execute(command.Pop{})
}

// NewScreenChain replaces the whole stack with screens.
func (r *Router) NewScreenChain(screens ...screen.Screen) {
	r.Execute(command.SetChain{Screens: screens})
}

// NewHomeChain replaces the whole stack with screens and marks the root as
// the home screen.
func (r *Router) NewHomeChain(screens ...screen.Screen) {
	r.Execute(command.SetChain{Screens: screens, MarkRootAsHome: true})
}

// ClearStack removes every screen.
func (r *Router) ClearStack() {
	r.Execute(command.ClearStack{})
}

// ShowDialog puts d in the overlay slot.
func (r *Router) ShowDialog(d screen.Dialog) {
	r.Execute(command.ShowDialog{Dialog: d})
}

// DismissDialog empties the overlay slot.
func (r *Router) DismissDialog() {
	r.Execute(command.DismissDialog{})
}
