package main

import (
	"github.com/spf13/cobra"

	"physarum-sim/internal/runner"
	"physarum-sim/internal/visualization/window"
)

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show the simulation in a desktop window",
		Long: `Window opens a resizable window and advances the simulation by the
real time elapsed each tick. Space pauses, R respawns the agents, Q or Esc
quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			sim, respawn, err := runner.Build(cfg, logger)
			if err != nil {
				return err
			}
			palette, err := runner.Palette(cfg)
			if err != nil {
				return err
			}

			r := window.NewRenderer(sim, palette, respawn, logger)
			return window.RunWindow(r, cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
		},
	}
}
