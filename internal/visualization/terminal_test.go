package visualization

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"physarum-sim/internal/simulation"
)

// recordingScreen captures SetContent calls.
type recordingScreen struct {
	cols, rows int
	styles     map[[2]int]tcell.Style
	shown      int
}

func newRecordingScreen(cols, rows int) *recordingScreen {
	return &recordingScreen{cols: cols, rows: rows, styles: make(map[[2]int]tcell.Style)}
}

func (r *recordingScreen) Size() (int, int) { return r.cols, r.rows }

func (r *recordingScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	r.styles[[2]int{x, y}] = style
}

func (r *recordingScreen) Show() { r.shown++ }

func TestBlockAverages(t *testing.T) {
	f, err := simulation.NewTrailField(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(0, 0, 1)
	f.Set(1, 1, 1)
	f.Set(3, 0, 0.5)

	got := blockAverages(f.View(), 2, 1, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	if got[0] != 0.5 {
		t.Errorf("left block = %v, want 0.5", got[0])
	}
	if got[1] != 0.125 {
		t.Errorf("right block = %v, want 0.125", got[1])
	}
}

func TestBlockAveragesTerminalLargerThanField(t *testing.T) {
	f, err := simulation.NewTrailField(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(1, 1, 1)

	got := blockAverages(f.View(), 4, 4, nil)
	if len(got) != 16 {
		t.Fatalf("expected 16 blocks, got %d", len(got))
	}
	if got[15] != 1 || got[0] != 0 {
		t.Errorf("unexpected corners %v and %v", got[0], got[15])
	}
}

func TestTerminalDraw(t *testing.T) {
	sim, err := simulation.NewSimulation(8, 4, simulation.DefaultParams(), simulation.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	palette := testPalette(t)
	tr := NewTerminalRenderer(sim, palette, nil, nil)

	screen := newRecordingScreen(4, 2)
	tr.draw(screen)

	if screen.shown != 1 {
		t.Errorf("expected one Show, got %d", screen.shown)
	}
	if len(screen.styles) != 8 {
		t.Fatalf("expected 8 painted cells, got %d", len(screen.styles))
	}
	want := tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 0))
	if got := screen.styles[[2]int{3, 1}]; got != want {
		t.Errorf("expected background style on an empty field, got %v", got)
	}
}
