// Package screen defines the destinations pathfinder navigates between.
//
// A screen is any Go value. Its identity on the back stack is its key, see
// [Key]. Two screens with the same key are interchangeable for stack search
// even when their payloads differ.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package screen
