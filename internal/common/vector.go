package common

import (
	"fmt"
	"math"
)

// Vec2 represents a point or direction in the 2D simulation plane.
// Components are float32 to match agent storage.
type Vec2 struct {
	X float32
	Y float32
}

// NewVec2 creates a new vector from its components.
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing along angle (radians).
func FromAngle(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	return Vec2{X: float32(cos), Y: float32(sin)}
}

// FromPolar returns the point at distance r along angle, relative to origin.
func FromPolar(origin Vec2, r, angle float32) Vec2 {
	return origin.Add(FromAngle(angle).Scale(r))
}

// Add adds another vector to this vector.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Subtract subtracts another vector from this vector.
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean norm of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Distance calculates the Euclidean distance between two vectors.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Subtract(other).Length()
}

// Inside reports whether v lies in [0,width) × [0,height).
func (v Vec2) Inside(width, height float32) bool {
	return v.X >= 0 && v.X < width && v.Y >= 0 && v.Y < height
}

// Clamp limits each component to [lo, hi] of the matching axis.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{X: Clamp32(v.X, lo.X, hi.X), Y: Clamp32(v.Y, lo.Y, hi.Y)}
}

// String returns a string representation of the vector.
func (v Vec2) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", v.X, v.Y)
}

// Clamp32 limits x to [lo, hi]. NaN is mapped to lo.
func Clamp32(x, lo, hi float32) float32 {
	if !(x >= lo) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt limits i to [lo, hi].
func ClampInt(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
