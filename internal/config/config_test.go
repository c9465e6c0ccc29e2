package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.PhysicsParams() != physics.DefaultParams() {
		t.Errorf("physics defaults drifted: %+v", cfg.PhysicsParams())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("width: 320\nphysics:\n  step_size: 0.02\ncamera:\n  pitch: 0.1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != DefaultHeight {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Physics.StepSize != 0.02 || cfg.Physics.Mass != physics.DefaultMass {
		t.Errorf("unexpected physics %+v", cfg.Physics)
	}
	if cfg.Camera.Pitch != 0.1 || cfg.Camera.Radius != 15 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.Theme = "ice"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *back != *cfg {
		t.Errorf("got %+v, want %+v", back, cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"bad mass", func(c *Config) { c.Physics.Mass = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("edge-on")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Camera.Pitch != 0.02 {
		t.Errorf("expected pitch 0.02, got %f", cfg.Camera.Pitch)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestNewCamera(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.NewCamera()
	b := cfg.NewCamera()
	a.Zoom(1)
	if a.Radius == b.Radius {
		t.Error("each call should return an independent camera")
	}
}
