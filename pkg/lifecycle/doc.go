// Package lifecycle tracks whether a pathfinder instance's dispatch loop is
// running.
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
//
// Tasks posted while the loop is not running stay queued on it; the
// lifecycle only governs the goroutine that drains them.
//
// # Usage
//
//	manager := lifecycle.NewManager(logger, emitter)
//	if err := manager.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
//	    return err
//	}
//	manager.AddWorker()
//	go func() {
//	    defer manager.WorkerDone()
//	    loop.Run(ctx)
//	}()
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package lifecycle
