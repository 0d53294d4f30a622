// Package analysis summarizes the trail field and the agent population.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"physarum-sim/internal/common"
	"physarum-sim/internal/simulation"
)

// ErrTooFewAgents is returned when the population is too small for PCA.
var ErrTooFewAgents = errors.New("at least two agents are required")

// FieldStats describes one generation of the trail field.
type FieldStats struct {
	Total    float64 // sum of all cells
	Mean     float64
	StdDev   float64
	Max      float64
	Coverage float64 // fraction of cells above the coverage threshold
}

// String representation for logging
func (s FieldStats) String() string {
	return fmt.Sprintf("total=%.1f mean=%.4f std=%.4f max=%.3f coverage=%.2f%%",
		s.Total, s.Mean, s.StdDev, s.Max, 100*s.Coverage)
}

// Spread describes the layout of the agent population.
type Spread struct {
	Centroid   common.Vec2
	RMSRadius  float64 // root mean square distance from the centroid
	MajorAxis  float64 // direction of the first principal component, radians
	Anisotropy float64 // ratio of standard deviations along the two principal axes
}

// String representation for logging
func (s Spread) String() string {
	return fmt.Sprintf("centroid=%s rms=%.2f axis=%.3f anisotropy=%.2f",
		s.Centroid, s.RMSRadius, s.MajorAxis, s.Anisotropy)
}

// Analyzer computes statistics, reusing its scratch buffers between calls.
// It is not safe for concurrent use.
type Analyzer struct {
	// CoverageThreshold is the value a cell must exceed to count as covered.
	CoverageThreshold float64

	values []float64
	coords []float64
}

// NewAnalyzer creates an analyzer with the given coverage threshold.
func NewAnalyzer(coverageThreshold float64) *Analyzer {
	return &Analyzer{CoverageThreshold: coverageThreshold}
}

// Field summarizes a field snapshot.
func (a *Analyzer) Field(v simulation.FieldView) FieldStats {
	a.values = v.CopyTo(a.values)
	if len(a.values) == 0 {
		return FieldStats{}
	}

	mean, std := stat.MeanStdDev(a.values, nil)
	covered := 0
	for _, x := range a.values {
		if x > a.CoverageThreshold {
			covered++
		}
	}
	return FieldStats{
		Total:    floats.Sum(a.values),
		Mean:     mean,
		StdDev:   std,
		Max:      floats.Max(a.values),
		Coverage: float64(covered) / float64(len(a.values)),
	}
}

// Population computes the centroid, RMS radius and principal axes of the
// agent positions.
func (a *Analyzer) Population(agents []simulation.Agent) (Spread, error) {
	n := len(agents)
	if n < 2 {
		return Spread{}, fmt.Errorf("%w: got %d", ErrTooFewAgents, n)
	}

	if cap(a.coords) < 2*n {
		a.coords = make([]float64, 2*n)
	}
	a.coords = a.coords[:2*n]
	for i, ag := range agents {
		a.coords[2*i] = float64(ag.X)
		a.coords[2*i+1] = float64(ag.Y)
	}

	// Samples as rows, coordinates as columns.
	positions := mat.NewDense(n, 2, a.coords)
	cx := stat.Mean(mat.Col(nil, 0, positions), nil)
	cy := stat.Mean(mat.Col(nil, 1, positions), nil)

	var pc stat.PC
	if ok := pc.PrincipalComponents(positions, nil); !ok {
		return Spread{}, fmt.Errorf("PCA computation failed")
	}
	vars := pc.VarsTo(nil)
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	anisotropy := math.Inf(1)
	if vars[1] > 0 {
		anisotropy = math.Sqrt(vars[0] / vars[1])
	} else if vars[0] == 0 {
		anisotropy = 1
	}

	// Centre in place; positions shares the buffer and is not used below.
	for i := 0; i < n; i++ {
		a.coords[2*i] -= cx
		a.coords[2*i+1] -= cy
	}
	rms := blas64.Nrm2(blas64.Vector{N: 2 * n, Inc: 1, Data: a.coords}) / math.Sqrt(float64(n))

	return Spread{
		Centroid:   common.NewVec2(float32(cx), float32(cy)),
		RMSRadius:  rms,
		MajorAxis:  math.Atan2(vecs.At(1, 0), vecs.At(0, 0)),
		Anisotropy: anisotropy,
	}, nil
}
