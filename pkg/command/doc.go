// Package command defines the navigation commands a router produces and a
// navigator consumes.
//
// [Command] is a closed set: the marker method is unexported, so only the
// variants declared here satisfy it and a type switch over them is the
// complete interpretation of a batch.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package command
