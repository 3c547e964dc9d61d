// Package metrics exports navigation engine activity as Prometheus
// metrics.
//
// A [Collector] implements [pathfinder.EventHandler]; register it with
// pathfinder.WithEventHandler and serve [Collector.Handler]:
//
//	c := metrics.NewCollector("pathfinder")
//	pf, _ := pathfinder.New(cfg, pathfinder.WithEventHandler(c))
//	http.Handle("/metrics", c.Handler())
//
// The collector uses its own registry so several instances can coexist in
// one process.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package metrics
