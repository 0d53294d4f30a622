package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"physarum-sim/internal/logging"
)

// Simulation holds the agent population, the trail field and the random
// source that drives them. It is not safe for concurrent use; Step fans work
// out internally and returns only when the step is complete.
type Simulation struct {
	id      string
	width   int
	height  int
	params  Params
	field   *TrailField
	agents  []Agent
	draws   []draws // per-agent random numbers for the current step
	rng     *rand.Rand
	workers int
	logger  *slog.Logger

	canRun         bool
	steps          uint64
	simulationTime float64 // total elapsed simulation time in seconds
}

// Option configures a Simulation at construction.
type Option func(*Simulation)

// WithSeed makes the simulation reproducible: two simulations built with the
// same seed, params and dt sequence produce identical trajectories.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) { s.rng = rand.New(NewSource(seed)) }
}

// WithSource sets the random source used for every draw.
func WithSource(src rand.Source) Option {
	return func(s *Simulation) { s.rng = rand.New(src) }
}

// WithWorkers bounds the goroutines used by Step. Values below 1 mean 1.
// Results do not depend on the worker count.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.workers = max(1, n) }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// NewSimulation creates an empty, non-runnable simulation on a width×height grid.
func NewSimulation(width, height int, params Params, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	field, err := NewTrailField(width, height)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:      fmt.Sprintf("run-%s", uuid.NewString()[:8]),
		width:   width,
		height:  height,
		params:  params,
		field:   field,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(randomSource())
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = s.logger.With("run", s.id)
	return s, nil
}

// ID returns the unique identifier of this run.
func (s *Simulation) ID() string { return s.id }

// Width returns the grid width.
func (s *Simulation) Width() int { return s.width }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.height }

// Params returns the parameters the simulation was built with.
func (s *Simulation) Params() Params { return s.params }

// CanRun reports whether a population has been spawned since the last Reset.
func (s *Simulation) CanRun() bool { return s.canRun }

// Steps returns the number of steps taken since the last Reset.
func (s *Simulation) Steps() uint64 { return s.steps }

// Time returns the simulated seconds elapsed since the last Reset.
func (s *Simulation) Time() float64 { return s.simulationTime }

// AgentCount returns the population size.
func (s *Simulation) AgentCount() int { return len(s.agents) }

// Agents returns a copy of the population.
func (s *Simulation) Agents() []Agent {
	out := make([]Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// FieldSnapshot returns a read-only view of the current trail field.
// The view is overwritten by the next Step or Reset.
func (s *Simulation) FieldSnapshot() FieldView {
	return s.field.View()
}

// Reset removes every agent and zeroes the field. The simulation stays
// non-runnable until the next spawn.
func (s *Simulation) Reset() {
	s.field.Clear()
	s.agents = s.agents[:0]
	s.canRun = false
	s.steps = 0
	s.simulationTime = 0
	s.logger.Info("simulation reset")
}

// Step advances the simulation by dt seconds: every agent senses, steers and
// moves against the current field, the field is diffused and evaporated, and
// finally every agent deposits into the updated field. A negative or NaN dt
// is treated as 0. Step does nothing on a non-runnable simulation.
func (s *Simulation) Step(dt float32) {
	if !s.canRun {
		return
	}
	if !(dt >= 0) {
		s.logger.Warn("invalid time step clamped to zero", "dt", dt)
		dt = 0
	}
	start := time.Now()

	s.drawStep()
	hits := s.moveAgents(dt)
	s.field.Update(dt, s.params.DiffuseSpeed, s.params.EvaporationSpeed, s.workers)
	s.deposit()

	s.steps++
	s.simulationTime += float64(dt)
	s.logger.Log(context.Background(), logging.LevelTrace, "step",
		"step", s.steps, "dt", dt, "wall_hits", hits, "took", time.Since(start))
}

// drawStep takes this step's random numbers sequentially, so that the
// parallel agent pass stays deterministic.
func (s *Simulation) drawStep() {
	if cap(s.draws) < len(s.agents) {
		s.draws = make([]draws, len(s.agents))
	}
	s.draws = s.draws[:len(s.agents)]
	for i := range s.draws {
		s.draws[i] = draws{steer: uniform(s.rng), wall: uniformAngle(s.rng)}
	}
}

// moveAgents runs sense, steer and move for every agent. The field is only
// read here; each agent is written by exactly one goroutine.
func (s *Simulation) moveAgents(dt float32) int64 {
	p := s.params
	w, h := float32(s.width), float32(s.height)
	var hits atomic.Int64

	forEachBand(len(s.agents), s.workers, func(lo, hi int) {
		var n int64
		for i := lo; i < hi; i++ {
			a := &s.agents[i]
			forward, left, right := readSensors(s.field, *a, p)
			a.steer(forward, left, right, s.draws[i].steer, p.TurnSpeed, dt)
			if a.advance(p.MoveSpeed, dt, w, h, s.draws[i].wall) {
				n++
			}
		}
		hits.Add(n)
	})
	return hits.Load()
}

// deposit sets the cell under every agent to 1.
func (s *Simulation) deposit() {
	for _, a := range s.agents {
		x, y := a.Cell(s.width, s.height)
		s.field.Set(x, y, 1)
	}
}
