package simulation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"physarum-sim/internal/common"
)

// SpawnStrategy names one of the initial population layouts.
type SpawnStrategy string

const (
	SpawnPoint        SpawnStrategy = "point"
	SpawnRandom       SpawnStrategy = "random"
	SpawnCircle       SpawnStrategy = "circle"
	SpawnInwardCircle SpawnStrategy = "inward_circle"
)

var (
	// ErrInvalidAgentCount is returned for a negative population size.
	ErrInvalidAgentCount = errors.New("agent count must be non-negative")
	// ErrInvalidRadius is returned for a negative or non-finite spawn radius.
	ErrInvalidRadius = errors.New("spawn radius must be finite and non-negative")
	// ErrUnknownStrategy is returned by ParseSpawnStrategy for unknown names.
	ErrUnknownStrategy = errors.New("unknown spawn strategy")
)

// ParseSpawnStrategy maps a name such as "inward-circle" or "Point" to a strategy.
func ParseSpawnStrategy(name string) (SpawnStrategy, error) {
	s := SpawnStrategy(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	switch s {
	case SpawnPoint, SpawnRandom, SpawnCircle, SpawnInwardCircle:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Spawn replaces the population using strategy. radius is ignored by the
// point and random strategies.
func (s *Simulation) Spawn(strategy SpawnStrategy, n int, radius float32) error {
	switch strategy {
	case SpawnPoint:
		return s.SpawnPoint(n)
	case SpawnRandom:
		return s.SpawnRandom(n)
	case SpawnCircle:
		return s.SpawnCircle(n, radius)
	case SpawnInwardCircle:
		return s.SpawnInwardCircle(n, radius)
	}
	return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// SpawnPoint places n agents at the grid centre with independent uniform headings.
func (s *Simulation) SpawnPoint(n int) error {
	if err := s.beginSpawn(n); err != nil {
		return err
	}
	c := s.center()
	for range n {
		s.agents = append(s.agents, NewAgent(c.X, c.Y, uniformAngle(s.rng)))
	}
	s.finishSpawn(SpawnPoint, 0)
	return nil
}

// SpawnRandom places n agents on uniformly drawn integer coordinates of the
// grid with independent uniform headings.
func (s *Simulation) SpawnRandom(n int) error {
	if err := s.beginSpawn(n); err != nil {
		return err
	}
	for range n {
		x := s.rng.IntN(s.width)
		y := s.rng.IntN(s.height)
		s.agents = append(s.agents, NewAgent(float32(x), float32(y), uniformAngle(s.rng)))
	}
	s.finishSpawn(SpawnRandom, 0)
	return nil
}

// SpawnCircle places n agents uniformly over the disk of radius around the
// grid centre, each facing away from the centre along its placement angle.
// A radius beyond the grid leaves some agents outside it; the next Step
// clamps them in as wall hits.
func (s *Simulation) SpawnCircle(n int, radius float32) error {
	return s.spawnDisk(SpawnCircle, n, radius, func(theta float32) float32 {
		return theta
	})
}

// SpawnInwardCircle is SpawnCircle with every agent facing the centre.
func (s *Simulation) SpawnInwardCircle(n int, radius float32) error {
	return s.spawnDisk(SpawnInwardCircle, n, radius, func(theta float32) float32 {
		return wrapAngle(theta + math.Pi)
	})
}

// spawnDisk samples area-uniform positions: the placement angle first, then
// radius*sqrt(U).
func (s *Simulation) spawnDisk(strategy SpawnStrategy, n int, radius float32, heading func(theta float32) float32) error {
	if r := float64(radius); math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if err := s.beginSpawn(n); err != nil {
		return err
	}
	c := s.center()
	for range n {
		theta := uniformAngle(s.rng)
		r := radius * float32(math.Sqrt(float64(uniform(s.rng))))
		p := common.FromPolar(c, r, theta)
		s.agents = append(s.agents, NewAgent(p.X, p.Y, heading(theta)))
	}
	s.finishSpawn(strategy, radius)
	return nil
}

func (s *Simulation) center() common.Vec2 {
	return common.NewVec2(float32(s.width)/2, float32(s.height)/2)
}

// beginSpawn validates n and clears the population.
func (s *Simulation) beginSpawn(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAgentCount, n)
	}
	s.agents = s.agents[:0]
	if cap(s.agents) < n {
		s.agents = make([]Agent, 0, n)
	}
	return nil
}

func (s *Simulation) finishSpawn(strategy SpawnStrategy, radius float32) {
	s.canRun = true
	s.logger.Info("agents spawned", "strategy", string(strategy), "agents", len(s.agents), "radius", radius)
}
