package simulation

import (
	"physarum-sim/internal/common"
)

// sense returns the summed trail in the sensing window centred on the point
// distance units ahead of the agent along angle+offset. The centre cell is
// the projected point truncated toward zero; the window is edge-clamped.
func sense(f *TrailField, a Agent, offset, distance float32, size int) float64 {
	p := common.FromPolar(a.Position(), distance, a.Angle+offset)
	return f.windowSum(int(p.X), int(p.Y), size)
}

// readSensors samples the forward, left and right sensors of an agent.
func readSensors(f *TrailField, a Agent, p Params) (forward, left, right float64) {
	forward = sense(f, a, 0, p.SenseDistance, p.SenseSize)
	left = sense(f, a, p.SenseAngleDifference, p.SenseDistance, p.SenseSize)
	right = sense(f, a, -p.SenseAngleDifference, p.SenseDistance, p.SenseSize)
	return forward, left, right
}
