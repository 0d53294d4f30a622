package visualization

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"physarum-sim/internal/simulation"
)

// Projector converts a field snapshot into pixels.
type Projector interface {
	// Project writes the RGBA bytes of v (row-major, 4 bytes per cell) into
	// dst, growing it when needed, and returns the filled slice.
	Project(v simulation.FieldView, dst []byte) []byte
}

// lutSize is the number of colour steps between background and pheromone.
const lutSize = 256

// Palette maps trail intensity to a colour by linear interpolation between a
// background and a pheromone colour. Intensities above 1 saturate.
type Palette struct {
	lut [lutSize]color.RGBA
}

// NewPalette precomputes the colour ramp from background to pheromone.
func NewPalette(background, pheromone colorful.Color) *Palette {
	p := &Palette{}
	for i := range p.lut {
		t := float64(i) / (lutSize - 1)
		r, g, b := background.BlendRgb(pheromone, t).Clamped().RGB255()
		p.lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// ParsePalette builds a palette from two hex colours such as "#39ade3".
func ParsePalette(backgroundHex, pheromoneHex string) (*Palette, error) {
	bg, err := colorful.Hex(backgroundHex)
	if err != nil {
		return nil, fmt.Errorf("parsing background colour %q: %w", backgroundHex, err)
	}
	fg, err := colorful.Hex(pheromoneHex)
	if err != nil {
		return nil, fmt.Errorf("parsing pheromone colour %q: %w", pheromoneHex, err)
	}
	return NewPalette(bg, fg), nil
}

// Color returns the colour of intensity v.
func (p *Palette) Color(v float64) color.RGBA {
	return p.lut[lutIndex(v)]
}

func lutIndex(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return lutSize - 1
	}
	return int(v*(lutSize-1) + 0.5)
}

// Project implements Projector.
func (p *Palette) Project(v simulation.FieldView, dst []byte) []byte {
	n := 4 * v.Len()
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i := 0; i < v.Len(); i++ {
		c := p.lut[lutIndex(v.AtIndex(i))]
		dst[4*i] = c.R
		dst[4*i+1] = c.G
		dst[4*i+2] = c.B
		dst[4*i+3] = c.A
	}
	return dst
}

// Image renders v into a new RGBA image of the field's size.
func Image(p Projector, v simulation.FieldView) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, v.Width(), v.Height()))
	// image.RGBA stride is exactly 4*width for a freshly allocated image
	img.Pix = p.Project(v, img.Pix)
	return img
}
