// Package results passes one-shot values between screens that do not know
// about each other.
//
// A screen registers a listener under a key before triggering the
// navigation that produces the value; another screen later sends the value
// under the same key. Each registration is delivered at most once and is
// evicted on delivery:
//
//	d := registry.Listen("pick-country", func(v any) { ... })
//	defer d.Dispose()
//
//	// elsewhere
//	registry.Send("pick-country", "ZA")
//
// Sending with no listener registered is a no-op; the value is not kept for
// a later listener.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package results
