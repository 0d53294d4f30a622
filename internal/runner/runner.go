// Package runner wires configuration, simulation, analysis and output
// together for the command-line front ends.
package runner

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"physarum-sim/internal/analysis"
	"physarum-sim/internal/config"
	"physarum-sim/internal/simulation"
	"physarum-sim/internal/visualization"
)

// Build creates the simulation described by cfg and spawns its population.
// The returned respawn function re-seeds the population with the same
// strategy, for front ends that offer a restart.
func Build(cfg *config.Config, logger *slog.Logger) (*simulation.Simulation, func() error, error) {
	opts := []simulation.Option{simulation.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, simulation.WithSeed(cfg.Seed))
	}
	if cfg.Workers > 0 {
		opts = append(opts, simulation.WithWorkers(cfg.Workers))
	}

	sim, err := simulation.NewSimulation(cfg.Width, cfg.Height, cfg.Params, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating simulation: %w", err)
	}

	strategy := cfg.SpawnStrategy()
	respawn := func() error {
		return sim.Spawn(strategy, cfg.Spawn.Agents, cfg.Spawn.Radius)
	}
	if err := respawn(); err != nil {
		return nil, nil, fmt.Errorf("spawning agents: %w", err)
	}
	return sim, respawn, nil
}

// Palette builds the colour palette configured in cfg.
func Palette(cfg *config.Config) (*visualization.Palette, error) {
	return visualization.ParsePalette(cfg.Colors.Background, cfg.Colors.Pheromone)
}

// Result summarizes a headless run.
type Result struct {
	Steps   int
	Elapsed time.Duration
	Field   analysis.FieldStats
	Output  string // PNG path, empty when none was written
}

// RunHeadless steps sim cfg.Headless.Steps times with a fixed dt, logging
// statistics every cfg.Headless.StatsEvery steps, and writes the final field
// as a PNG when an output path is configured. A cancelled ctx stops the run
// early; the partial result is still written.
func RunHeadless(ctx context.Context, sim *simulation.Simulation, cfg *config.Config, logger *slog.Logger) (Result, error) {
	h := cfg.Headless
	analyzer := analysis.NewAnalyzer(0.05)
	start := time.Now()

	logger.Info("headless run started", "steps", h.Steps, "dt", h.Dt, "agents", sim.AgentCount(),
		"field", fmt.Sprintf("%dx%d", sim.Width(), sim.Height()))

	res := Result{}
	for res.Steps < h.Steps {
		if ctx.Err() != nil {
			logger.Warn("headless run interrupted", "step", res.Steps)
			break
		}
		sim.Step(h.Dt)
		res.Steps++

		if h.StatsEvery > 0 && res.Steps%h.StatsEvery == 0 {
			logStats(logger, analyzer, sim, res.Steps)
		}
	}
	res.Elapsed = time.Since(start)
	res.Field = analyzer.Field(sim.FieldSnapshot())

	if h.Output != "" {
		if err := writePNG(cfg, sim, h.Output); err != nil {
			return res, err
		}
		res.Output = h.Output
	}

	logger.Info("headless run finished", "steps", res.Steps, "elapsed", res.Elapsed,
		"field", res.Field.String(), "output", res.Output)
	return res, nil
}

func logStats(logger *slog.Logger, analyzer *analysis.Analyzer, sim *simulation.Simulation, step int) {
	attrs := []any{"step", step, "field", analyzer.Field(sim.FieldSnapshot()).String()}
	if spread, err := analyzer.Population(sim.Agents()); err == nil {
		attrs = append(attrs, "agents", spread.String())
	}
	logger.Info("stats", attrs...)
}

func writePNG(cfg *config.Config, sim *simulation.Simulation, path string) error {
	palette, err := Palette(cfg)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, visualization.Image(palette, sim.FieldSnapshot())); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}
