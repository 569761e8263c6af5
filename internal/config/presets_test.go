package config

import (
	"errors"
	"sort"
	"testing"

	"github.com/san-kum/circlesim/internal/dynamo"
)

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("crowded")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Bodies != 60 {
		t.Errorf("expected 60 bodies, got %d", cfg.Bodies)
	}

	cfg.Bodies = 1
	again, _ := GetPreset("crowded")
	if again.Bodies != 60 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	if cfg != nil || !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v, %v", cfg, err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("presets not sorted: %v", names)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg, _ := GetPreset(name)
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}
