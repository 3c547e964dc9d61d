// Package log provides the logging abstraction used by every pathfinder
// component.
//
// Components accept a [Logger] and default to [NoopLogger], so the engine
// never writes output unless the host application asks for it.
//
// # Adapters
//
// Two adapters ship with the package:
//
//	logger := log.NewZerologAdapter(log.LevelDebug, log.FormatConsole)
//	logger := log.NewZapAdapter(zap.NewExample())
//
// Any other logging library can be plugged in by implementing the four
// level methods of [Logger].
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
