package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"physarum-sim/internal/runner"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step the simulation without a display and save a PNG",
		Long: `Run steps the simulation a fixed number of times with a constant dt,
logging field statistics along the way, and writes the final trail field
as a PNG image. Ctrl+C stops early and still writes the image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("steps") {
				cfg.Headless.Steps, _ = flags.GetInt("steps")
			}
			if flags.Changed("dt") {
				cfg.Headless.Dt, _ = flags.GetFloat32("dt")
			}
			if flags.Changed("output") {
				cfg.Headless.Output, _ = flags.GetString("output")
			}
			if flags.Changed("stats-every") {
				cfg.Headless.StatsEvery, _ = flags.GetInt("stats-every")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := newLogger(cfg)
			sim, _, err := runner.Build(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(context.Background())
			defer cancel()

			res, err := runner.RunHeadless(ctx, sim, cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps in %s, %s\n", sim.ID(), res.Steps, res.Elapsed.Round(1e6), res.Field)
			if res.Output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.Output)
			}
			return nil
		},
	}
	cmd.Flags().Int("steps", 0, "Number of steps (overrides headless.steps)")
	cmd.Flags().Float32("dt", 0, "Seconds per step (overrides headless.dt)")
	cmd.Flags().StringP("output", "o", "", "PNG output path, empty to skip (overrides headless.output)")
	cmd.Flags().Int("stats-every", 0, "Log statistics every N steps, 0 to disable")
	return cmd
}
