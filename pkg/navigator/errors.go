package navigator

import (
	"errors"
	"fmt"

	"github.com/bft-labs/pathfinder/pkg/command"
)

var (
	// ErrStackNotInitialized is returned when commands arrive before
	// SetStack or Bind.
	ErrStackNotInitialized = errors.New("navigator: back stack has not been initialized")

	// ErrEmptyInitialStack is returned when a stack is seeded with no screens.
	ErrEmptyInitialStack = errors.New("navigator: at least one initial screen is required")

	// ErrEmptyChain is returned by set_chain with no screens.
	ErrEmptyChain = errors.New("navigator: screen chain is empty")

	// ErrScreenNotFound matches every TargetNotFoundError.
	ErrScreenNotFound = errors.New("navigator: screen not found in back stack")

	// ErrUnknownCommand is returned for a command the navigator cannot interpret.
	ErrUnknownCommand = errors.New("navigator: unknown command")
)

// TargetNotFoundError reports a back_to key absent from the stack.
type TargetNotFoundError struct {
	Key string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("navigator: screen with key %q not found in back stack", e.Key)
}

// Is makes errors.Is(err, ErrScreenNotFound) hold.
func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrScreenNotFound
}

// CommandError wraps the failure of one command inside a batch.
type CommandError struct {
	Index   int
	Command command.Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("navigator: command %d (%s): %v", e.Index, command.NameOf(e.Command), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
