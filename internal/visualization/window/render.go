// Package window shows a running simulation in a desktop window.
package window

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"physarum-sim/internal/analysis"
	"physarum-sim/internal/logging"
	"physarum-sim/internal/simulation"
	"physarum-sim/internal/visualization"
)

// maxFrameTime caps dt after a stall (window drag, debugger pause).
const maxFrameTime = 0.1

// statsInterval is how often the overlay statistics are refreshed.
const statsInterval = 500 * time.Millisecond

// Renderer implements ebiten.Game. Each tick advances the simulation by the
// real time elapsed since the previous tick; each frame stretches the field
// image over the window.
type Renderer struct {
	sim       *simulation.Simulation
	projector visualization.Projector
	analyzer  *analysis.Analyzer
	respawn   func() error // re-seeds the population on R
	logger    *slog.Logger

	screenWidth  int
	screenHeight int

	fieldImage *ebiten.Image
	pixels     []byte

	lastTick  time.Time
	paused    bool
	stats     analysis.FieldStats
	statsTime time.Time
}

// NewRenderer creates a new Ebiten renderer. respawn may be nil.
func NewRenderer(sim *simulation.Simulation, projector visualization.Projector, respawn func() error, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Renderer{
		sim:       sim,
		projector: projector,
		analyzer:  analysis.NewAnalyzer(0.05),
		respawn:   respawn,
		logger:    logger,
	}
}

// Update is called every tick.
func (r *Renderer) Update() error {
	now := time.Now()
	dt := float32(0)
	if !r.lastTick.IsZero() {
		dt = float32(min(now.Sub(r.lastTick).Seconds(), maxFrameTime))
	}
	r.lastTick = now

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		r.paused = !r.paused
		r.logger.Info("pause toggled", "paused", r.paused)
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && r.respawn != nil:
		r.sim.Reset()
		if err := r.respawn(); err != nil {
			return fmt.Errorf("respawning agents: %w", err)
		}
	}

	if !r.paused {
		r.sim.Step(dt)
	}

	if now.Sub(r.statsTime) >= statsInterval {
		r.stats = r.analyzer.Field(r.sim.FieldSnapshot())
		r.statsTime = now
		r.logger.Debug("field stats", "stats", r.stats.String(), "fps", ebiten.ActualFPS())
	}
	return nil
}

// Draw is called every frame to render the simulation.
func (r *Renderer) Draw(screen *ebiten.Image) {
	view := r.sim.FieldSnapshot()
	if r.fieldImage == nil {
		r.fieldImage = ebiten.NewImage(view.Width(), view.Height())
	}
	r.pixels = r.projector.Project(view, r.pixels)
	r.fieldImage.WritePixels(r.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(r.screenWidth)/float64(view.Width()),
		float64(r.screenHeight)/float64(view.Height()),
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(r.fieldImage, op)

	r.drawDebugInfo(screen)
}

func (r *Renderer) drawDebugInfo(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f, TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	msg += fmt.Sprintf("Agents: %d  Field: %dx%d\n", r.sim.AgentCount(), r.sim.Width(), r.sim.Height())
	msg += fmt.Sprintf("Time: %.1fs  Steps: %d\n", r.sim.Time(), r.sim.Steps())
	msg += fmt.Sprintf("Trail: %.0f  Coverage: %.1f%%", r.stats.Total, 100*r.stats.Coverage)
	if r.paused {
		msg += "\n[paused]"
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}

// RunWindow opens a window of the given size and runs the renderer until it
// is closed.
func RunWindow(r *Renderer, width, height int, title string) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(r)
}
