package deeplink

import "github.com/bft-labs/pathfinder/pkg/pathfinder"

// WithDeepLinks returns a pathfinder Option that enables the deep-link
// watcher.
//
// Usage:
//
//	pf, err := pathfinder.New(cfg,
//	    deeplink.WithDeepLinks(deeplink.Config{
//	        Dir:           "/var/run/app/links",
//	        DebounceDelay: 50 * time.Millisecond,
//	    }),
//	)
func WithDeepLinks(cfg Config) pathfinder.Option {
	return pathfinder.WithPlugin(New(cfg))
}

// WithDeepLinkDir returns a pathfinder Option that watches dir with
// default settings.
func WithDeepLinkDir(dir string) pathfinder.Option {
	cfg := DefaultConfig()
	cfg.Dir = dir
	return WithDeepLinks(cfg)
}
