package config

// Presets are named scene tunings. Each returns a fresh Config so
// callers can mutate the result freely.
var presets = map[string]func() *Config{
	"classic": func() *Config {
		return DefaultConfig()
	},
	"billiards": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.SurfaceFriction = 0.999
		cfg.Physics.WallBoost = 1.0
		cfg.Spawn.MinRadius = 14
		cfg.Spawn.MaxRadius = 14
		cfg.Spawn.MinSpeed = 2.0
		cfg.Spawn.MaxSpeed = 4.0
		cfg.Scene.Balls = 12
		return cfg
	},
	"lunar": func() *Config {
		cfg := DefaultConfig()
		cfg.Scene.Gravity = true
		cfg.Physics.Gravity = 0.025
		cfg.Physics.BounceRestitution = 0.95
		cfg.Scene.Balls = 6
		return cfg
	},
	"pinball": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.WallBoost = 1.4
		cfg.Physics.MaxSpeedCap = 8.0
		cfg.Spawn.MinSpeed = 2.0
		cfg.Spawn.MaxSpeed = 5.0
		cfg.Scene.Balls = 5
		return cfg
	},
	"vacuum": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.SurfaceFriction = 1.0
		cfg.Physics.AirResistance = 1.0
		cfg.Physics.WallBoost = 1.0
		cfg.Scene.Balls = 10
		return cfg
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	f, ok := presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the preset names in map order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
