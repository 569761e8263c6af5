package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/circlesim/internal/dynamo"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"crowded": with(func(c *Config) {
		c.Bodies = 60
		c.MinRadius, c.MaxRadius = 8, 24
	}),
	"billiards": with(func(c *Config) {
		c.Bodies = 16
		c.MinRadius, c.MaxRadius = 12, 12
		c.InitialSpeed = 0.5
		c.Damping = 0.999
		c.RestEpsilon = 1e-6
	}),
	"sparse": with(func(c *Config) {
		c.Bodies = 6
		c.MinRadius, c.MaxRadius = 20, 50
		c.InitialSpeed = 0.3
	}),
}

func with(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownPreset)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
