package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 800 || cfg.Height != 450 {
		t.Errorf("expected 800x450, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.Bodies != 20 || cfg.TargetFPS != 170 {
		t.Errorf("expected 20 bodies at 170 fps, got %d at %d", cfg.Bodies, cfg.TargetFPS)
	}
	if cfg.Params() != dynamo.DefaultParams() {
		t.Errorf("default config should map to default params, got %+v", cfg.Params())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -1 }},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"zero fps", func(c *Config) { c.TargetFPS = 0 }},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }},
		{"zero density", func(c *Config) { c.MassDensity = 0 }},
		{"negative bodies", func(c *Config) { c.Bodies = -1 }},
		{"inverted radii", func(c *Config) { c.MinRadius, c.MaxRadius = 30, 10 }},
		{"zero radius", func(c *Config) { c.MinRadius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	params := []string{
		"damping", "dt", "rest_epsilon", "throw_scale", "mass_density",
		"initial_speed", "min_radius", "max_radius",
	}

	for _, name := range params {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			t.Run(fmt.Sprintf("%s=%v", name, v), func(t *testing.T) {
				cfg := DefaultConfig()
				if err := cfg.SetParam(name, v); err != nil {
					t.Fatalf("SetParam: %v", err)
				}
				if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	}
}

func TestValidateRejectsNaNFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("damping: .nan\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")

	cfg := DefaultConfig()
	cfg.Bodies = 7
	cfg.TwoPhase = true
	cfg.Scenario = "throw.yaml"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config:\n%+v\n%+v", loaded, cfg)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("bodies: 3\nthrow_scale: 0.05\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bodies != 3 || cfg.ThrowScale != 0.05 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != DefaultWidth || cfg.Damping != 0.99 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bodies: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSpawnAndBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 77
	cfg.InitialSpeed = 2

	sp := cfg.Spawn()
	if sp.Count != 20 || sp.MinRadius != 10 || sp.MaxRadius != 41 || sp.Seed != 77 || sp.InitialSpeed != 2 {
		t.Errorf("unexpected spawn %+v", sp)
	}
	if cfg.Bounds() != dynamo.DefaultBounds() {
		t.Errorf("unexpected bounds %+v", cfg.Bounds())
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("damping", 0.95); err != nil || cfg.Damping != 0.95 {
		t.Errorf("damping not set: %v %v", cfg.Damping, err)
	}
	if err := cfg.SetParam("bodies", 12.7); err != nil || cfg.Bodies != 12 {
		t.Errorf("bodies not set: %v %v", cfg.Bodies, err)
	}
	if err := cfg.SetParam("gravity", 9.81); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
