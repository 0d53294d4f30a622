package visualization

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"physarum-sim/internal/logging"
	"physarum-sim/internal/simulation"
)

// cellWriter is the part of tcell.Screen the terminal view draws through.
type cellWriter interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// TerminalRenderer shows a down-sampled trail field in a terminal. Each
// character cell is painted with the palette colour of the mean intensity of
// the field block it covers.
type TerminalRenderer struct {
	sim     *simulation.Simulation
	palette *Palette
	screen  tcell.Screen
	logger  *slog.Logger

	averages []float64
}

// NewTerminalRenderer creates a renderer drawing onto an initialized screen.
func NewTerminalRenderer(sim *simulation.Simulation, palette *Palette, screen tcell.Screen, logger *slog.Logger) *TerminalRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TerminalRenderer{sim: sim, palette: palette, screen: screen, logger: logger}
}

// Run steps the simulation by dt every tick and redraws, until ctx is done
// or the user presses q, Esc or Ctrl-C.
func (t *TerminalRenderer) Run(ctx context.Context, dt float32, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
					t.logger.Info("pause toggled", "paused", paused)
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			if !paused {
				t.sim.Step(dt)
			}
			t.draw(t.screen)
		}
	}
}

// draw paints the current field onto w.
func (t *TerminalRenderer) draw(w cellWriter) {
	cols, rows := w.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	t.averages = blockAverages(t.sim.FieldSnapshot(), cols, rows, t.averages)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := t.palette.Color(t.averages[y*cols+x])
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			w.SetContent(x, y, ' ', nil, style)
		}
	}
	w.Show()
}

// blockAverages splits the field into cols×rows blocks and returns the mean
// of each block, row-major. Blocks cover at least one field cell even when
// the terminal is larger than the field.
func blockAverages(v simulation.FieldView, cols, rows int, dst []float64) []float64 {
	n := cols * rows
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	for row := 0; row < rows; row++ {
		y0 := row * v.Height() / rows
		y1 := max(y0+1, (row+1)*v.Height()/rows)
		for col := 0; col < cols; col++ {
			x0 := col * v.Width() / cols
			x1 := max(x0+1, (col+1)*v.Width()/cols)

			var sum float64
			for y := y0; y < y1 && y < v.Height(); y++ {
				for x := x0; x < x1 && x < v.Width(); x++ {
					sum += v.At(x, y)
				}
			}
			dst[row*cols+col] = sum / float64((x1-x0)*(y1-y0))
		}
	}
	return dst
}
