// Package launch adapts asynchronous platform operations (pick a file, ask
// for a permission, open another app for a result) into callbacks a screen
// can supply at the moment it starts the operation.
//
// Operations are registered once at setup, keyed by name. Launch stores the
// caller's callback under the key and starts the operation; when the
// operation completes, the stored callback is retrieved, removed, and
// invoked with the output. A second Launch for the same key before
// completion replaces the first callback.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package launch
