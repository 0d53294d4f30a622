package simulation

import (
	"errors"
	"fmt"
	"math"
)

// Params controls movement, sensing, diffusion, evaporation and turning.
// A Simulation copies its Params at construction; they never change afterwards.
type Params struct {
	// MoveSpeed is in grid units per second.
	MoveSpeed float32 `json:"move_speed" yaml:"move_speed" toml:"move_speed"`
	// TurnSpeed is in radians per second.
	TurnSpeed        float32 `json:"turn_speed" yaml:"turn_speed" toml:"turn_speed"`
	EvaporationSpeed float32 `json:"evaporation_speed" yaml:"evaporation_speed" toml:"evaporation_speed"`
	DiffuseSpeed     float32 `json:"diffuse_speed" yaml:"diffuse_speed" toml:"diffuse_speed"`

	// SenseAngleDifference is the angle between the forward sensor and each side sensor.
	SenseAngleDifference float32 `json:"sense_angle_difference" yaml:"sense_angle_difference" toml:"sense_angle_difference"`
	SenseDistance        float32 `json:"sense_distance" yaml:"sense_distance" toml:"sense_distance"`
	// SenseSize is the half-width of the sensing window, in cells.
	SenseSize int `json:"sense_size" yaml:"sense_size" toml:"sense_size"`
}

// ErrInvalidParams is returned when a parameter is negative or not finite.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// DefaultParams returns the baseline parameter set.
func DefaultParams() Params {
	return Params{
		MoveSpeed:            50,
		TurnSpeed:            30,
		EvaporationSpeed:     0.25,
		DiffuseSpeed:         8,
		SenseAngleDifference: 1,
		SenseDistance:        10,
		SenseSize:            3,
	}
}

// Validate checks that every rate is finite and non-negative.
func (p Params) Validate() error {
	rates := []struct {
		name  string
		value float32
	}{
		{"move_speed", p.MoveSpeed},
		{"turn_speed", p.TurnSpeed},
		{"evaporation_speed", p.EvaporationSpeed},
		{"diffuse_speed", p.DiffuseSpeed},
		{"sense_distance", p.SenseDistance},
	}
	for _, r := range rates {
		v := float64(r.value)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be finite and non-negative, got %v", ErrInvalidParams, r.name, r.value)
		}
	}
	if a := float64(p.SenseAngleDifference); math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: sense_angle_difference must be finite, got %v", ErrInvalidParams, p.SenseAngleDifference)
	}
	if p.SenseSize < 0 {
		return fmt.Errorf("%w: sense_size must be non-negative, got %d", ErrInvalidParams, p.SenseSize)
	}
	return nil
}
