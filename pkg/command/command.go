package command

import (
	"fmt"
	"strings"

	"github.com/bft-labs/pathfinder/pkg/screen"
)

// Op names, stable across releases. Scripts, logs and metrics use them.
const (
	OpNavigateTo    = "navigate_to"
	OpReplace       = "replace"
	OpBackTo        = "back_to"
	OpBackBySteps   = "back_by_steps"
	OpSetChain      = "set_chain"
	OpPop           = "pop"
	OpClearStack    = "clear_stack"
	OpShowDialog    = "show_dialog"
	OpDismissDialog = "dismiss_dialog"
)

// Ops lists every op name in declaration order.
var Ops = []string{
	OpNavigateTo, OpReplace, OpBackTo, OpBackBySteps, OpSetChain,
	OpPop, OpClearStack, OpShowDialog, OpDismissDialog,
}

// Command is an atomic navigation intent.
type Command interface {
	// Name returns the op name of the command.
	Name() string
	fmt.Stringer
	command()
}

// Batch is an ordered group of commands delivered together.
type Batch []Command

// NilName stands in for the name of a nil command.
const NilName = "<nil>"

// NameOf returns c.Name(), or NilName when c is nil.
func NameOf(c Command) string {
	if c == nil {
		return NilName
	}
	return c.Name()
}

// Names returns the op names of the batch in order.
func (b Batch) Names() []string {
	names := make([]string, len(b))
	for i, c := range b {
		names[i] = NameOf(c)
	}
	return names
}

// String renders the batch as "[cmd, cmd]".
func (b Batch) String() string {
	parts := make([]string, len(b))
	for i, c := range b {
		if c == nil {
			parts[i] = NilName
			continue
		}
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NavigateTo pushes Screen on top of the stack.
type NavigateTo struct {
	Screen screen.Screen
}

// Replace swaps the visible screen for Screen.
type Replace struct {
	Screen screen.Screen
}

// BackTo unwinds the stack to the last screen whose key is Key. Inclusive
// also removes that screen.
type BackTo struct {
	Key       string
	Inclusive bool
}

// BackBySteps unwinds to the screen Steps positions below the top.
type BackBySteps struct {
	Steps     int
	Inclusive bool
}

// SetChain replaces the whole stack with Screens. MarkRootAsHome tells the
// presentation layer the first screen is a home destination; it does not
// change how the stack is mutated.
type SetChain struct {
	Screens        []screen.Screen
	MarkRootAsHome bool
}

// Pop removes the visible screen.
type Pop struct{}

// ClearStack removes every screen.
type ClearStack struct{}

// ShowDialog puts Dialog in the overlay slot.
type ShowDialog struct {
	Dialog screen.Dialog
}

// DismissDialog empties the overlay slot.
type DismissDialog struct{}

func (NavigateTo) command()    {}
func (Replace) command()       {}
func (BackTo) command()        {}
func (BackBySteps) command()   {}
func (SetChain) command()      {}
func (Pop) command()           {}
func (ClearStack) command()    {}
func (ShowDialog) command()    {}
func (DismissDialog) command() {}

func (NavigateTo) Name() string    { return OpNavigateTo }
func (Replace) Name() string       { return OpReplace }
func (BackTo) Name() string        { return OpBackTo }
func (BackBySteps) Name() string   { return OpBackBySteps }
func (SetChain) Name() string      { return OpSetChain }
func (Pop) Name() string           { return OpPop }
func (ClearStack) Name() string    { return OpClearStack }
func (ShowDialog) Name() string    { return OpShowDialog }
func (DismissDialog) Name() string { return OpDismissDialog }

func (c NavigateTo) String() string {
	return fmt.Sprintf("%s(%s)", OpNavigateTo, screen.Key(c.Screen))
}

func (c Replace) String() string {
	return fmt.Sprintf("%s(%s)", OpReplace, screen.Key(c.Screen))
}

func (c BackTo) String() string {
	return fmt.Sprintf("%s(%s, inclusive=%t)", OpBackTo, c.Key, c.Inclusive)
}

func (c BackBySteps) String() string {
	return fmt.Sprintf("%s(%d, inclusive=%t)", OpBackBySteps, c.Steps, c.Inclusive)
}

func (c SetChain) String() string {
	return fmt.Sprintf("%s(%s, home=%t)", OpSetChain, strings.Join(screen.Keys(c.Screens), " > "), c.MarkRootAsHome)
}

func (Pop) String() string        { return OpPop }
func (ClearStack) String() string { return OpClearStack }

func (c ShowDialog) String() string {
	return fmt.Sprintf("%s(%s)", OpShowDialog, screen.Key(c.Dialog))
}

func (DismissDialog) String() string { return OpDismissDialog }
