package router

// Version information for the router module.
const (
	// Version is the current version of the router module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
