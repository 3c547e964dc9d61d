// Package mainloop provides the single-consumer task queue that plays the
// role of a UI thread for pathfinder.
//
// Every mutation of the command buffer and the navigator happens inside a
// task run by [Loop.Run], so the presentation layer never observes a stack
// that is half way through a command. Producers on any goroutine call
// [Loop.Post], which never blocks; tasks run in the order they were posted.
//
//	loop := mainloop.New()
//	go loop.Run(ctx)
//	loop.Post(func() { ... })
//
// Tasks still queued when Run returns are kept and run by the next Run.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package mainloop
