// Package router is the surface screens and view models use to navigate.
//
// Every call builds commands and hands them to a [buffer.CommandBuffer];
// nothing is applied synchronously. Custom routers embed [*Base] and add
// their own helpers on top of Execute:
//
//	type AppRouter struct{ *router.Base }
//
//	func (r AppRouter) OpenProfile(id string) {
//		r.Execute(command.NavigateTo{Screen: screen.Route{Name: "Profile", Params: map[string]string{"id": id}}})
//	}
//
// Result passing between screens goes through ListenForResult and
// SendResult, backed by a [results.Registry].
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package router
