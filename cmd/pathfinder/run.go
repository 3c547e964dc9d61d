package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bft-labs/pathfinder/internal/cliconfig"
	"github.com/bft-labs/pathfinder/pkg/log"
	"github.com/bft-labs/pathfinder/pkg/metrics"
	"github.com/bft-labs/pathfinder/pkg/navigator"
	"github.com/bft-labs/pathfinder/pkg/pathfinder"
	"github.com/bft-labs/pathfinder/pkg/screen"
	"github.com/bft-labs/pathfinder/pkg/script"
	"github.com/bft-labs/pathfinder/plugins/deeplink"
)

// runScript executes the script at path and writes the final state to out.
// With a watch dir it keeps printing state changes until ctx is done.
func runScript(ctx context.Context, cfg cliconfig.Config, path string, out io.Writer) error {
	logger := cfg.Logger()

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	batches, err := s.Batches()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("pathfinder")
	opts := []pathfinder.Option{
		pathfinder.WithLogger(logger),
		pathfinder.WithEventHandler(collector),
	}
	if cfg.WatchDir != "" {
		opts = append(opts, deeplink.WithDeepLinks(deeplink.Config{
			Dir:           cfg.WatchDir,
			DebounceDelay: cfg.DebounceDelay,
		}))
	}

	pf, err := pathfinder.New(pathfinder.Config{
		Name:            cfg.Name,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create pathfinder: %w", err)
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(collector), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", log.Err(err))
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", log.String("addr", cfg.MetricsAddr))
	}

	if err := pf.Start(ctx); err != nil {
		return fmt.Errorf("start pathfinder: %w", err)
	}
	defer func() {
		if err := pf.Stop(); err != nil {
			logger.Error("stop pathfinder", log.Err(err))
		}
	}()

	nav := navigator.New(navigator.WithLogger(logger), navigator.WithContext(ctx))
	if err := nav.SetStack(s.InitialScreens()...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if cfg.DetachFirst {
		for _, b := range batches {
			pf.Execute(b...)
		}
		if err := pf.Loop().Do(ctx, func() {}); err != nil {
			return err
		}
		logger.Info("commands buffered before attach", log.Int("pending", pf.Router().Buffer().Pending()))
		pf.Attach(nav)
	} else {
		pf.Attach(nav)
		for _, b := range batches {
			pf.Execute(b...)
		}
	}

	if err := pf.Loop().Do(ctx, func() {}); err != nil {
		return err
	}
	printState(out, nav.Snapshot())

	if cfg.WatchDir == "" {
		return nil
	}

	unsubscribe := nav.Subscribe(func(snap navigator.Snapshot) { printState(out, snap) })
	defer unsubscribe()

	logger.Info("watching for deep links", log.String("dir", cfg.WatchDir))
	<-ctx.Done()
	logger.Info("received signal, stopping...")
	return nil
}

func metricsMux(c *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return mux
}

func printState(out io.Writer, snap navigator.Snapshot) {
	fmt.Fprintf(out, "stack: %s\n", formatKeys(snap.Screens))
	if snap.Dialog != nil {
		fmt.Fprintf(out, "dialog: %s\n", screen.Key(snap.Dialog))
	}
}

func formatKeys(screens []screen.Screen) string {
	parts := make([]string, len(screens))
	for i, s := range screens {
		if r, ok := s.(screen.Route); ok {
			parts[i] = r.String()
			continue
		}
		parts[i] = screen.Key(s)
	}
	return "[" + strings.Join(parts, " > ") + "]"
}
