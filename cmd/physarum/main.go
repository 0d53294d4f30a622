package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"physarum-sim/internal/config"
	"physarum-sim/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physarum",
		Short: "Physarum (slime mold) simulation",
		Long: `physarum simulates agents that follow and reinforce a diffusing,
evaporating pheromone trail until they organize into vein-like networks.

Runs can be shown in a desktop window, drawn in the terminal, or stepped
headless to a PNG snapshot.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: warn, info, debug or trace")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed (0 picks a fresh one)")
	rootCmd.PersistentFlags().Int("workers", 0, "Goroutines per step (0 means GOMAXPROCS)")
	rootCmd.PersistentFlags().Int("width", 0, "Trail field width in cells")
	rootCmd.PersistentFlags().Int("height", 0, "Trail field height in cells")
	rootCmd.PersistentFlags().String("spawn", "", "Spawn strategy: point, random, circle or inward_circle")
	rootCmd.PersistentFlags().Int("agents", 0, "Number of agents to spawn")
	rootCmd.PersistentFlags().Float32("radius", 0, "Spawn radius for circle strategies")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newWindowCmd(),
		newTerminalCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file named by --config and applies the global
// flags the user set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("spawn") {
		cfg.Spawn.Strategy, _ = flags.GetString("spawn")
	}
	if flags.Changed("agents") {
		cfg.Spawn.Agents, _ = flags.GetInt("agents")
	}
	if flags.Changed("radius") {
		cfg.Spawn.Radius, _ = flags.GetFloat32("radius")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// signalContext returns a context cancelled on the first interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
