package config

import "sort"

// Presets are camera shots over the default black hole.
var Presets = map[string]CameraConfig{
	"default":  {Radius: 15, Yaw: 0, Pitch: 0.3, FOV: 90},
	"edge-on":  {Radius: 18, Yaw: 0, Pitch: 0.02, FOV: 70},
	"top-down": {Radius: 25, Yaw: 0, Pitch: 1.5, FOV: 70},
	"close":    {Radius: 6, Yaw: 0.4, Pitch: 0.15, FOV: 100},
	"wide":     {Radius: 40, Yaw: -0.6, Pitch: 0.25, FOV: 60},
}

// GetPreset returns the default config with the named camera applied, or nil.
func GetPreset(name string) *Config {
	cam, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Camera = cam
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
