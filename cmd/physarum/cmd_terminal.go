package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"physarum-sim/internal/runner"
	"physarum-sim/internal/visualization"
)

func newTerminalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Draw the simulation in the terminal",
		Long: `Terminal paints a down-sampled view of the trail field with true-colour
cell backgrounds. Space pauses, q, Esc or Ctrl+C quits.

Logs go to stderr; redirect them (2>file) to keep the display clean.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fps, _ := cmd.Flags().GetInt("fps")
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			logger := newLogger(cfg)

			sim, _, err := runner.Build(cfg, logger)
			if err != nil {
				return err
			}
			palette, err := runner.Palette(cfg)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()
			screen.HideCursor()

			ctx, cancel := signalContext(context.Background())
			defer cancel()

			tick := time.Second / time.Duration(fps)
			tr := visualization.NewTerminalRenderer(sim, palette, screen, logger)
			return tr.Run(ctx, float32(tick.Seconds()), tick)
		},
	}
	cmd.Flags().Int("fps", 30, "Frames (and steps) per second")
	return cmd
}
