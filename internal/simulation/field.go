package simulation

import (
	"errors"
	"fmt"

	"physarum-sim/internal/common"
)

// ErrInvalidDimensions is returned when a grid dimension is not positive.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// TrailField is the dense trail grid. It keeps two row-major buffers and
// flips between them on every Update, so the stencil always reads a complete
// snapshot of the previous generation.
type TrailField struct {
	width   int
	height  int
	buffers [2][]float64
	parity  int // index of the current generation in buffers
}

// NewTrailField creates an all-zero field of the given size.
func NewTrailField(width, height int) (*TrailField, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	return &TrailField{
		width:   width,
		height:  height,
		buffers: [2][]float64{make([]float64, n), make([]float64, n)},
	}, nil
}

// Width returns the number of columns.
func (f *TrailField) Width() int { return f.width }

// Height returns the number of rows.
func (f *TrailField) Height() int { return f.height }

// Index returns the flat offset of cell (x, y).
func (f *TrailField) Index(x, y int) int {
	return y*f.width + x
}

// At returns the current value of cell (x, y). The caller must pass in-range indices.
func (f *TrailField) At(x, y int) float64 {
	return f.buffers[f.parity][f.Index(x, y)]
}

// AtClamped returns the value of the cell nearest to (x, y) inside the grid.
func (f *TrailField) AtClamped(x, y int) float64 {
	x = common.ClampInt(x, 0, f.width-1)
	y = common.ClampInt(y, 0, f.height-1)
	return f.buffers[f.parity][f.Index(x, y)]
}

// Set overwrites the current value of cell (x, y), clamping the indices into the grid.
func (f *TrailField) Set(x, y int, v float64) {
	x = common.ClampInt(x, 0, f.width-1)
	y = common.ClampInt(y, 0, f.height-1)
	f.buffers[f.parity][f.Index(x, y)] = v
}

// Clear zeroes both generations.
func (f *TrailField) Clear() {
	clear(f.buffers[0])
	clear(f.buffers[1])
}

// View returns a read-only view of the current generation.
func (f *TrailField) View() FieldView {
	return FieldView{width: f.width, height: f.height, values: f.buffers[f.parity]}
}

// Update advances the field by dt: each cell is mixed with the 3×3 box blur of
// its neighbourhood and then evaporated, floored at zero. Out-of-grid
// neighbours contribute nothing but the divisor stays 9, so border cells
// lose mass faster than interior ones.
//
// Rows are split across at most workers goroutines; see forEachBand.
func (f *TrailField) Update(dt, diffuseSpeed, evaporationSpeed float32, workers int) {
	src := f.buffers[f.parity]
	dst := f.buffers[1-f.parity]

	keep := float64(1 - diffuseSpeed*dt)
	mix := float64(diffuseSpeed * dt)
	evaporate := float64(evaporationSpeed * dt)

	forEachBand(f.height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.width; x++ {
				blur := f.neighbourhoodSum(src, x, y) / 9
				diffused := keep*src[f.Index(x, y)] + mix*blur
				dst[f.Index(x, y)] = max(0, diffused-evaporate)
			}
		}
	})

	f.parity = 1 - f.parity
}

// neighbourhoodSum sums the in-range cells of the 3×3 block centred on (x, y).
func (f *TrailField) neighbourhoodSum(src []float64, x, y int) float64 {
	var sum float64
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= f.height {
			continue
		}
		row := ny * f.width
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= f.width {
				continue
			}
			sum += src[row+nx]
		}
	}
	return sum
}

// windowSum sums the (2*size+1)² cells around (cx, cy). Every sampled
// coordinate is clamped into the grid independently, so edge cells are
// counted several times when the window hangs over a border.
func (f *TrailField) windowSum(cx, cy, size int) float64 {
	var sum float64
	for dx := -size; dx <= size; dx++ {
		for dy := -size; dy <= size; dy++ {
			sum += f.AtClamped(cx+dx, cy+dy)
		}
	}
	return sum
}

// FieldView is a read-only window onto one generation of a TrailField.
// It stays valid until the next Step of the owning Simulation.
type FieldView struct {
	width  int
	height int
	values []float64
}

// Width returns the number of columns.
func (v FieldView) Width() int { return v.width }

// Height returns the number of rows.
func (v FieldView) Height() int { return v.height }

// Len returns width*height.
func (v FieldView) Len() int { return len(v.values) }

// At returns the value of cell (x, y).
func (v FieldView) At(x, y int) float64 {
	return v.values[y*v.width+x]
}

// AtIndex returns the value at flat row-major offset i.
func (v FieldView) AtIndex(i int) float64 {
	return v.values[i]
}

// CopyTo copies the row-major values into dst (allocating when dst is too
// short) and returns the filled slice.
func (v FieldView) CopyTo(dst []float64) []float64 {
	if cap(dst) < len(v.values) {
		dst = make([]float64, len(v.values))
	}
	dst = dst[:len(v.values)]
	copy(dst, v.values)
	return dst
}
