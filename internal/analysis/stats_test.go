package analysis

import (
	"errors"
	"math"
	"testing"

	"physarum-sim/internal/simulation"
)

func TestFieldStats(t *testing.T) {
	f, err := simulation.NewTrailField(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(0, 0, 1)
	f.Set(1, 1, 3)

	got := NewAnalyzer(0.5).Field(f.View())

	if got.Total != 4 {
		t.Errorf("expected total 4, got %v", got.Total)
	}
	if got.Mean != 1 {
		t.Errorf("expected mean 1, got %v", got.Mean)
	}
	if got.Max != 3 {
		t.Errorf("expected max 3, got %v", got.Max)
	}
	if got.Coverage != 0.5 {
		t.Errorf("expected coverage 0.5, got %v", got.Coverage)
	}
	// sample standard deviation of {1,0,0,3}
	if want := math.Sqrt(2); math.Abs(got.StdDev-want) > 1e-12 {
		t.Errorf("expected std %v, got %v", want, got.StdDev)
	}
}

func TestPopulationAlongLine(t *testing.T) {
	agents := []simulation.Agent{
		simulation.NewAgent(9, 5, 0),
		simulation.NewAgent(11, 5, 0),
		simulation.NewAgent(10, 5.01, 0),
		simulation.NewAgent(10, 4.99, 0),
	}

	got, err := NewAnalyzer(0).Population(agents)
	if err != nil {
		t.Fatalf("Population: %v", err)
	}
	if math.Abs(float64(got.Centroid.X)-10) > 1e-5 || math.Abs(float64(got.Centroid.Y)-5) > 1e-5 {
		t.Errorf("unexpected centroid %s", got.Centroid)
	}
	if s := math.Abs(math.Sin(got.MajorAxis)); s > 1e-3 {
		t.Errorf("expected major axis along x, got %v rad", got.MajorAxis)
	}
	if got.Anisotropy < 50 {
		t.Errorf("expected strongly anisotropic spread, got %v", got.Anisotropy)
	}
	// sqrt((1+1+0.0001+0.0001)/4)
	if want := math.Sqrt(2.0002 / 4); math.Abs(got.RMSRadius-want) > 1e-4 {
		t.Errorf("expected rms %v, got %v", want, got.RMSRadius)
	}
}

func TestPopulationTooFew(t *testing.T) {
	_, err := NewAnalyzer(0).Population([]simulation.Agent{simulation.NewAgent(1, 1, 0)})
	if !errors.Is(err, ErrTooFewAgents) {
		t.Errorf("expected ErrTooFewAgents, got %v", err)
	}
}

func TestPopulationOfSpawnedDisk(t *testing.T) {
	sim, err := simulation.NewSimulation(200, 200, simulation.DefaultParams(), simulation.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.SpawnCircle(5000, 50); err != nil {
		t.Fatal(err)
	}

	got, err := NewAnalyzer(0).Population(sim.Agents())
	if err != nil {
		t.Fatalf("Population: %v", err)
	}
	if math.Abs(float64(got.Centroid.X)-100) > 2 || math.Abs(float64(got.Centroid.Y)-100) > 2 {
		t.Errorf("expected centroid near the grid centre, got %s", got.Centroid)
	}
	// area-uniform disk: E[r²] = R²/2
	if want := 50 / math.Sqrt2; math.Abs(got.RMSRadius-want) > 1.5 {
		t.Errorf("expected rms radius near %v, got %v", want, got.RMSRadius)
	}
	if got.Anisotropy > 1.1 {
		t.Errorf("expected an isotropic disk, got anisotropy %v", got.Anisotropy)
	}
}
