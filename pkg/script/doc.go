// Package script decodes navigation scripts: a list of initial screens and
// an ordered list of steps, each naming one command.
//
// Scripts are TOML or YAML. Screens decode to [screen.Route]:
//
//	initial = [{ name = "Home" }]
//
//	[[steps]]
//	op = "navigate_to"
//	screen = { name = "Profile", params = { id = "7" } }
//
//	[[steps]]
//	op = "back_to"
//	key = "Home"
//
// The same script in YAML:
//
//	initial:
//	  - name: Home
//	steps:
//	  - op: navigate_to
//	    screen: {name: Profile, params: {id: "7"}}
//	  - op: back_to
//	    key: Home
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package script
