// Package buffer holds navigation commands until a navigator is attached.
//
// The presentation layer that owns a navigator comes and goes (rotation,
// backgrounding, process recreation). [CommandBuffer] keeps every batch
// submitted while nothing is attached and replays them, in order, on the
// next [CommandBuffer.Attach]. All of its state is touched only from tasks
// on a [mainloop.Loop].
//
// The buffer never retains a navigator past Detach; owners must call
// Detach from their teardown path.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package buffer
