// Package pathfinder wires the navigation engine into one embeddable value.
//
// A Pathfinder owns a dispatch [mainloop.Loop], a [router.Router] with its
// command buffer and result registry, and a [launch.Bridge]. Start runs the
// loop in the background and initializes plugins; Stop cancels it and
// shuts plugins down in reverse order.
//
//	pf, err := pathfinder.New(pathfinder.Config{}, pathfinder.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := pf.Start(ctx); err != nil {
//		return err
//	}
//	defer pf.Stop()
//
//	nav := navigator.New()
//	_ = nav.SetStack(screen.Route{Name: "Home"})
//	pf.Attach(nav)
//	pf.Router().NavigateTo(screen.Route{Name: "Settings"})
//
// # Events
//
// An [EventHandler] is told about lifecycle transitions, buffered and
// delivered batches, failed commands and stack changes of the attached
// navigator. Handlers run on the dispatch loop and must not block.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package pathfinder
