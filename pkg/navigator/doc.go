// Package navigator interprets navigation commands against a back stack.
//
// A [Navigator] owns two pieces of state: the ordered screen stack, whose
// last element is the visible screen, and a single overlay slot for a
// dialog. The stack lives behind the [BackStack] port so the presentation
// layer can supply its own collection; [MemoryBackStack] is the in-process
// default.
//
// # Command Semantics
//
//   - navigate_to pushes; an [screen.External] screen is launched instead
//     and the stack is left alone.
//   - replace swaps the visible screen, or pushes onto an empty stack.
//   - pop removes the visible screen but never the last remaining one.
//   - clear_stack empties the stack. It is the only command that can.
//   - back_to unwinds to the last screen with the given key, also removing
//     it when inclusive, and always keeps at least one screen. An unknown
//     key fails with [ErrScreenNotFound] and the stack is untouched.
//   - back_by_steps unwinds to the screen that many positions below the
//     top, clamped to the root.
//   - set_chain replaces the whole stack.
//   - show_dialog and dismiss_dialog set and clear the overlay.
//
// A batch stops at its first failing command. Commands before it stay
// applied.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package navigator
