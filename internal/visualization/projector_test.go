package visualization

import (
	"image/color"
	"math"
	"testing"

	"physarum-sim/internal/simulation"
)

func testPalette(t *testing.T) *Palette {
	t.Helper()
	p, err := ParsePalette("#000000", "#ffffff")
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	return p
}

func TestPaletteEndpoints(t *testing.T) {
	p, err := ParsePalette("#301b75", "#39ade3")
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	if got, want := p.Color(0), (color.RGBA{0x30, 0x1b, 0x75, 255}); got != want {
		t.Errorf("Color(0) = %v, want %v", got, want)
	}
	if got, want := p.Color(1), (color.RGBA{0x39, 0xad, 0xe3, 255}); got != want {
		t.Errorf("Color(1) = %v, want %v", got, want)
	}
	if p.Color(7) != p.Color(1) {
		t.Error("intensities above 1 should saturate")
	}
	if p.Color(-1) != p.Color(0) || p.Color(math.NaN()) != p.Color(0) {
		t.Error("negative and NaN intensities should map to the background")
	}
}

func TestPaletteMidpoint(t *testing.T) {
	got := testPalette(t).Color(0.5)
	if got.R < 126 || got.R > 129 || got.R != got.G || got.G != got.B {
		t.Errorf("expected mid grey, got %v", got)
	}
}

func TestParsePaletteRejectsBadHex(t *testing.T) {
	if _, err := ParsePalette("blue", "#ffffff"); err == nil {
		t.Error("expected an error for a non-hex background")
	}
	if _, err := ParsePalette("#000000", "#12"); err == nil {
		t.Error("expected an error for a short pheromone colour")
	}
}

func TestProjectAndImage(t *testing.T) {
	f, err := simulation.NewTrailField(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(2, 1, 1)

	p := testPalette(t)
	pix := p.Project(f.View(), nil)
	if len(pix) != 24 {
		t.Fatalf("expected 24 bytes, got %d", len(pix))
	}
	last := pix[20:24]
	if last[0] != 255 || last[1] != 255 || last[2] != 255 || last[3] != 255 {
		t.Errorf("expected white last pixel, got %v", last)
	}
	if pix[0] != 0 || pix[3] != 255 {
		t.Errorf("expected opaque black first pixel, got %v", pix[:4])
	}

	img := Image(p, f.View())
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("unexpected image bounds %v", b)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white at (2,1), got %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected black at (0,1), got %v", got)
	}
}
