package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pathfinder/internal/cliconfig"
	"github.com/bft-labs/pathfinder/pkg/script"
)

const helpDescription = `
Replay navigation scripts against an in-memory navigator.

A script lists the initial back stack and a sequence of navigation
commands (navigate_to, replace, back_to, back_by_steps, set_chain, pop,
clear_stack, show_dialog, dismiss_dialog). Scripts are TOML or YAML.

With --watch, pathfinder keeps running and applies every script dropped
into the watched directory as a deep link.
`

var exampleUsage = strings.TrimSpace(`
  pathfinder run flows/checkout.yaml
  pathfinder run flows/checkout.toml --detach-first --log-level debug
  pathfinder run flows/home.yaml --watch ./links --metrics-addr :9090
  pathfinder check flows/checkout.yaml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "pathfinder",
		Short:         "Replay navigation scripts against an in-memory navigator",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// loadConfig layers file, env and flags: flags > env > file > defaults.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}
		return cfg.Validate()
	}

	run := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Execute a navigation script and print the resulting stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runScript(ctx, cfg, args[0], cmd.OutOrStdout())
		},
	}

	check := &cobra.Command{
		Use:   "check SCRIPT",
		Short: "Decode a navigation script and list its commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			batch, err := s.Commands()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "initial: %s\n", formatKeys(s.InitialScreens()))
			for i, c := range batch {
				fmt.Fprintf(out, "%3d  %s\n", i, c)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.pathfinder/config.toml)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")

	run.Flags().StringVar(&cfg.Name, "name", cfg.Name, "instance name used in logs")
	run.Flags().BoolVar(&cfg.DetachFirst, "detach-first", cfg.DetachFirst, "submit every step before attaching the navigator")
	run.Flags().StringVar(&cfg.WatchDir, "watch", cfg.WatchDir, "directory to watch for deep-link scripts; keeps running until interrupted")
	run.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "quiet period before a deep-link file is applied")
	run.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9090)")
	run.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "maximum time to wait for the dispatch loop on exit")

	root.AddCommand(run, check)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pathfinder:", err)
		os.Exit(1)
	}
}
