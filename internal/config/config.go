package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/physics"
)

const (
	DefaultWidth     = 800.0
	DefaultHeight    = 450.0
	DefaultBodies    = 20
	DefaultMinRadius = 10.0
	DefaultMaxRadius = 41.0
	DefaultTargetFPS = 170
	DefaultTicks     = 1000
	DefaultSeed      = 1
	DefaultLogLevel  = "info"
)

// DefaultDt is one frame at the default target rate, in milliseconds.
const DefaultDt = 1000.0 / DefaultTargetFPS

type Config struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Bodies       int     `yaml:"bodies"`
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	InitialSpeed float64 `yaml:"initial_speed"`
	Seed         int64   `yaml:"seed"`

	Dt        float64 `yaml:"dt"`
	Ticks     int     `yaml:"ticks"`
	TargetFPS int     `yaml:"target_fps"`

	Damping     float64 `yaml:"damping"`
	RestEpsilon float64 `yaml:"rest_epsilon"`
	ThrowScale  float64 `yaml:"throw_scale"`
	MassDensity float64 `yaml:"mass_density"`
	TwoPhase    bool    `yaml:"two_phase"`

	LogLevel string `yaml:"log_level"`
	Scenario string `yaml:"scenario,omitempty"`
}

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Bodies:      DefaultBodies,
		MinRadius:   DefaultMinRadius,
		MaxRadius:   DefaultMaxRadius,
		Seed:        DefaultSeed,
		Dt:          DefaultDt,
		Ticks:       DefaultTicks,
		TargetFPS:   DefaultTargetFPS,
		Damping:     p.Damping,
		RestEpsilon: p.RestEpsilon,
		ThrowScale:  p.ThrowScale,
		MassDensity: p.MassDensity,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML config. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate rejects out of range and non-finite values. Every comparison is
// written so that NaN fails it.
func (c *Config) Validate() error {
	switch {
	case !finite(c.Width) || !finite(c.Height) || !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("world size %vx%v: %w", c.Width, c.Height, dynamo.ErrInvalidConfig)
	case !finite(c.Dt) || !(c.Dt > 0):
		return fmt.Errorf("dt %v: %w", c.Dt, dynamo.ErrInvalidConfig)
	case c.Ticks <= 0:
		return fmt.Errorf("ticks %d: %w", c.Ticks, dynamo.ErrInvalidConfig)
	case c.TargetFPS <= 0:
		return fmt.Errorf("target fps %d: %w", c.TargetFPS, dynamo.ErrInvalidConfig)
	case !(c.Damping > 0 && c.Damping <= 1):
		return fmt.Errorf("damping %v outside (0, 1]: %w", c.Damping, dynamo.ErrInvalidConfig)
	case !finite(c.RestEpsilon) || !(c.RestEpsilon >= 0):
		return fmt.Errorf("rest epsilon %v: %w", c.RestEpsilon, dynamo.ErrInvalidConfig)
	case !finite(c.ThrowScale):
		return fmt.Errorf("throw scale %v: %w", c.ThrowScale, dynamo.ErrInvalidConfig)
	case !finite(c.MassDensity) || !(c.MassDensity > 0):
		return fmt.Errorf("mass density %v: %w", c.MassDensity, dynamo.ErrInvalidConfig)
	}
	return c.Spawn().Validate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *Config) Params() dynamo.Params {
	p := dynamo.DefaultParams()
	p.Damping = c.Damping
	p.RestEpsilon = c.RestEpsilon
	p.ThrowScale = c.ThrowScale
	p.MassDensity = c.MassDensity
	p.TwoPhase = c.TwoPhase
	return p
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: c.Width, Height: c.Height}
}

func (c *Config) Spawn() physics.Spawn {
	return physics.Spawn{
		Count:        c.Bodies,
		MinRadius:    c.MinRadius,
		MaxRadius:    c.MaxRadius,
		InitialSpeed: c.InitialSpeed,
		Seed:         c.Seed,
	}
}

// SetParam sets a numeric field by its YAML name. Used by sweeps.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "damping":
		c.Damping = v
	case "rest_epsilon":
		c.RestEpsilon = v
	case "throw_scale":
		c.ThrowScale = v
	case "mass_density":
		c.MassDensity = v
	case "initial_speed":
		c.InitialSpeed = v
	case "min_radius":
		c.MinRadius = v
	case "max_radius":
		c.MaxRadius = v
	case "bodies":
		c.Bodies = int(v)
	case "dt":
		c.Dt = v
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
