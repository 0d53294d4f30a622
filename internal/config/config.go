// Package config loads run configuration for the slime mold simulator.
// It supports YAML and TOML files plus a few environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"physarum-sim/internal/logging"
	"physarum-sim/internal/simulation"
)

// Config contains all settings for one run.
type Config struct {
	// Width and Height are the trail field dimensions in cells.
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`

	// Seed fixes the random sequence. Zero draws a fresh seed per run.
	Seed uint64 `json:"seed" yaml:"seed" toml:"seed"`

	// Workers bounds the goroutines used per step. Zero means GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers" toml:"workers"`

	Params   simulation.Params `json:"params" yaml:"params" toml:"params"`
	Spawn    SpawnConfig       `json:"spawn" yaml:"spawn" toml:"spawn"`
	Colors   ColorConfig       `json:"colors" yaml:"colors" toml:"colors"`
	Window   WindowConfig      `json:"window" yaml:"window" toml:"window"`
	Headless HeadlessConfig    `json:"headless" yaml:"headless" toml:"headless"`
	Logging  LoggingConfig     `json:"logging" yaml:"logging" toml:"logging"`
}

// SpawnConfig selects the initial population.
type SpawnConfig struct {
	// Strategy is one of "point", "random", "circle", "inward_circle".
	Strategy string  `json:"strategy" yaml:"strategy" toml:"strategy"`
	Agents   int     `json:"agents" yaml:"agents" toml:"agents"`
	Radius   float32 `json:"radius" yaml:"radius" toml:"radius"`
}

// ColorConfig holds the hex colours of the field rendering.
type ColorConfig struct {
	Pheromone  string `json:"pheromone" yaml:"pheromone" toml:"pheromone"`
	Background string `json:"background" yaml:"background" toml:"background"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int    `json:"width" yaml:"width" toml:"width"`
	Height int    `json:"height" yaml:"height" toml:"height"`
	Title  string `json:"title" yaml:"title" toml:"title"`
}

// HeadlessConfig controls runs without a display.
type HeadlessConfig struct {
	Steps int     `json:"steps" yaml:"steps" toml:"steps"`
	Dt    float32 `json:"dt" yaml:"dt" toml:"dt"`
	// Output is the PNG written after the last step; empty skips it.
	Output string `json:"output" yaml:"output" toml:"output"`
	// StatsEvery logs field statistics every N steps; zero disables it.
	StatsEvery int `json:"stats_every" yaml:"stats_every" toml:"stats_every"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "warn", "info" (default), "debug" or "trace".
	Level string `json:"level" yaml:"level" toml:"level"`
}

// Default returns the configuration of the classic inward-circle run.
func Default() *Config {
	return &Config{
		Width:  1280,
		Height: 720,
		Params: simulation.Params{
			MoveSpeed:            25,
			TurnSpeed:            100,
			EvaporationSpeed:     0.25,
			DiffuseSpeed:         5,
			SenseAngleDifference: 2,
			SenseDistance:        15,
			SenseSize:            3,
		},
		Spawn: SpawnConfig{
			Strategy: string(simulation.SpawnInwardCircle),
			Agents:   150000,
			Radius:   300,
		},
		Colors: ColorConfig{
			Pheromone:  "#39ade3",
			Background: "#301b75",
		},
		Window: WindowConfig{
			Width:  640,
			Height: 385,
			Title:  "Physarum (Slime Mold) Simulation",
		},
		Headless: HeadlessConfig{
			Steps:      600,
			Dt:         1.0 / 60,
			Output:     "physarum.png",
			StatsEvery: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults overlaid with the file at path (when path is not
// empty) and the environment, validated.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// LoadFromFile decodes a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	config := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", ext)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := simulation.ParseSpawnStrategy(c.Spawn.Strategy); err != nil {
		return err
	}
	if c.Spawn.Agents < 0 {
		return fmt.Errorf("spawn.agents must be non-negative, got %d", c.Spawn.Agents)
	}
	if c.Spawn.Radius < 0 {
		return fmt.Errorf("spawn.radius must be non-negative, got %v", c.Spawn.Radius)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Headless.Steps < 0 {
		return fmt.Errorf("headless.steps must be non-negative, got %d", c.Headless.Steps)
	}
	if !(c.Headless.Dt >= 0) {
		return fmt.Errorf("headless.dt must be non-negative, got %v", c.Headless.Dt)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: warn, info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// SpawnStrategy returns the parsed spawn strategy.
func (c *Config) SpawnStrategy() simulation.SpawnStrategy {
	s, _ := simulation.ParseSpawnStrategy(c.Spawn.Strategy)
	return s
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("PHYSARUM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PHYSARUM_SEED: %w", err)
		}
		config.Seed = seed
	}
	if v := os.Getenv("PHYSARUM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHYSARUM_WORKERS: %w", err)
		}
		config.Workers = n
	}
	if v := os.Getenv("PHYSARUM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
