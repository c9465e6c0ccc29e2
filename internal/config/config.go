package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/geodesic/internal/camera"
	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultIntegrator = "rk4"
	DefaultTheme      = "ember"
)

type Config struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Workers    int           `yaml:"workers"`
	Integrator string        `yaml:"integrator"`
	Theme      string        `yaml:"theme"`
	Physics    PhysicsConfig `yaml:"physics"`
	Camera     CameraConfig  `yaml:"camera"`
}

type PhysicsConfig struct {
	Mass         float64 `yaml:"mass"`
	EscapeRadius float64 `yaml:"escape_radius"`
	StepSize     float64 `yaml:"step_size"`
	DiskInner    float64 `yaml:"disk_inner"`
	DiskOuter    float64 `yaml:"disk_outer"`
	MaxSteps     int     `yaml:"max_steps"`
}

type CameraConfig struct {
	Radius float64 `yaml:"radius"`
	Yaw    float64 `yaml:"yaw"`
	Pitch  float64 `yaml:"pitch"`
	FOV    float64 `yaml:"fov"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Integrator: DefaultIntegrator,
		Theme:      DefaultTheme,
		Physics: PhysicsConfig{
			Mass:         physics.DefaultMass,
			EscapeRadius: physics.DefaultEscapeRadius,
			StepSize:     physics.DefaultStepSize,
			DiskInner:    physics.DefaultDiskInner,
			DiskOuter:    physics.DefaultDiskOuter,
			MaxSteps:     physics.DefaultMaxSteps,
		},
		Camera: CameraConfig{
			Radius: camera.DefaultRadius,
			Yaw:    camera.DefaultYaw,
			Pitch:  camera.DefaultPitch,
			FOV:    camera.DefaultFOV,
		},
	}
}

// Load reads a YAML file on top of the defaults, so omitted keys keep their
// default values.
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

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size %dx%d: %w", c.Width, c.Height, dynamo.ErrParameterBounds)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, dynamo.ErrParameterBounds)
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("fov %g must be in (0, 180): %w", c.Camera.FOV, dynamo.ErrParameterBounds)
	}
	return c.PhysicsParams().Validate()
}

func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Mass:         c.Physics.Mass,
		EscapeRadius: c.Physics.EscapeRadius,
		StepSize:     c.Physics.StepSize,
		DiskInner:    c.Physics.DiskInner,
		DiskOuter:    c.Physics.DiskOuter,
		MaxSteps:     c.Physics.MaxSteps,
	}
}

// NewCamera builds a fresh camera owned by the caller.
func (c *Config) NewCamera() *camera.Orbit {
	return camera.NewOrbit(c.Camera.Radius, c.Camera.Yaw, c.Camera.Pitch, c.Camera.FOV)
}
