package simulation

import (
	"fmt"
	"math"

	"physarum-sim/internal/common"
)

// Agent is a single mobile point with a heading.
// Angle is in radians and is not kept normalized.
type Agent struct {
	X     float32
	Y     float32
	Angle float32
}

// NewAgent creates an agent at (x, y) facing angle.
func NewAgent(x, y, angle float32) Agent {
	return Agent{X: x, Y: y, Angle: angle}
}

// Position returns the agent position as a vector.
func (a Agent) Position() common.Vec2 {
	return common.NewVec2(a.X, a.Y)
}

// Heading returns the unit vector the agent is facing.
func (a Agent) Heading() common.Vec2 {
	return common.FromAngle(a.Angle)
}

// Cell returns the grid cell the agent occupies, clamped into the grid.
func (a Agent) Cell(width, height int) (int, int) {
	return common.ClampInt(int(a.X), 0, width-1), common.ClampInt(int(a.Y), 0, height-1)
}

// String representation for logging
func (a Agent) String() string {
	return fmt.Sprintf("Agent Pos: %s Angle: %.3f", a.Position(), a.Angle)
}

// draws holds the random numbers one agent consumes during one step.
type draws struct {
	steer float32 // steer strength in [0,1)
	wall  float32 // heading after a wall hit, in [0,2π)
}

// steer turns the agent according to the three sensed weights. The branch
// order is significant: the final left-turn case can only fire when the
// third test already failed, so ties between left and right go straight.
func (a *Agent) steer(forward, left, right float64, strength, turnSpeed, dt float32) {
	if forward > left && forward > right {
		// keep heading
	} else if forward < left && forward < right {
		a.Angle += (strength - 0.5) * 2 * turnSpeed * dt
	} else if right > left {
		a.Angle -= strength * turnSpeed * dt
	} else if left < right {
		a.Angle += strength * turnSpeed * dt
	}
}

// advance moves the agent by speed*dt along its heading. Leaving the grid is
// a wall hit: both coordinates are clamped into [0, dim-1.01] and the agent
// takes the fresh heading wallAngle. On a one-cell axis the bound is 0. It
// reports whether a wall was hit.
func (a *Agent) advance(speed, dt, width, height, wallAngle float32) bool {
	next := a.Position().Add(a.Heading().Scale(speed * dt))
	hit := !next.Inside(width, height)
	if hit {
		next = next.Clamp(common.Vec2{}, common.NewVec2(max(0, width-1.01), max(0, height-1.01)))
		a.Angle = wallAngle
	}
	a.X, a.Y = next.X, next.Y
	return hit
}

// twoPi is 2π rounded to float32.
const twoPi = float32(2 * math.Pi)

// wrapAngle maps angle into [0, 2π).
func wrapAngle(angle float32) float32 {
	w := float32(math.Mod(float64(angle), 2*math.Pi))
	if w < 0 {
		w += twoPi
	}
	if w >= twoPi {
		w = 0
	}
	return w
}
