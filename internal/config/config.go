package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bouncelab/internal/sim"
)

const (
	DefaultWorldWidth  = 800.0
	DefaultWorldHeight = 420.0
	DefaultBalls       = 8
	DefaultTicks       = 3600
)

// Config is the YAML-facing tuning file: world geometry, physics
// coefficients, spawn ranges, and the scene to start from.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scene   SceneConfig   `yaml:"scene"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	SurfaceFriction   float64 `yaml:"surface_friction"`
	Gravity           float64 `yaml:"gravity"`
	BounceRestitution float64 `yaml:"bounce_restitution"`
	FloorFriction     float64 `yaml:"floor_friction"`
	AirResistance     float64 `yaml:"air_resistance"`
	WallBoost         float64 `yaml:"wall_boost"`
	MaxSpeedCap       float64 `yaml:"max_speed_cap"`
	ShockwaveStrength float64 `yaml:"shockwave_strength"`
	ShockwaveRadius   float64 `yaml:"shockwave_radius"`
}

type SpawnConfig struct {
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MassDensity float64 `yaml:"mass_density"`
}

type SceneConfig struct {
	Balls   int   `yaml:"balls"`
	Gravity bool  `yaml:"gravity"`
	Seed    int64 `yaml:"seed"`
}

// DefaultConfig returns the classic sandbox tuning.
func DefaultConfig() *Config {
	base := sim.DefaultConfig()
	return &Config{
		World: WorldConfig{Width: DefaultWorldWidth, Height: DefaultWorldHeight},
		Physics: PhysicsConfig{
			SurfaceFriction:   base.SurfaceFriction,
			Gravity:           base.Gravity,
			BounceRestitution: base.BounceRestitution,
			FloorFriction:     base.FloorFriction,
			AirResistance:     base.AirResistance,
			WallBoost:         base.WallBoost,
			MaxSpeedCap:       base.MaxSpeedCap,
			ShockwaveStrength: base.ShockwaveStrength,
			ShockwaveRadius:   base.ShockwaveRadius,
		},
		Spawn: SpawnConfig{
			MinRadius:   base.MinRadius,
			MaxRadius:   base.MaxRadius,
			MinSpeed:    base.MinSpeed,
			MaxSpeed:    base.MaxSpeed,
			MassDensity: base.MassDensity,
		},
		Scene: SceneConfig{Balls: DefaultBalls},
	}
}

// Load reads a config file, layering it over the defaults so partial
// files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects tunings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world bounds must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Spawn.MinRadius <= 0 || c.Spawn.MaxRadius < c.Spawn.MinRadius {
		return fmt.Errorf("spawn radius range [%g, %g] invalid", c.Spawn.MinRadius, c.Spawn.MaxRadius)
	}
	if c.Spawn.MassDensity <= 0 {
		return fmt.Errorf("mass density must be positive, got %g", c.Spawn.MassDensity)
	}
	if c.Physics.MaxSpeedCap <= 0 {
		return fmt.Errorf("speed cap must be positive, got %g", c.Physics.MaxSpeedCap)
	}
	if c.Physics.BounceRestitution < 0 || c.Physics.BounceRestitution >= 1 {
		return fmt.Errorf("bounce restitution must be in [0, 1), got %g", c.Physics.BounceRestitution)
	}
	if c.Scene.Balls < 0 {
		return fmt.Errorf("scene balls must be non-negative, got %d", c.Scene.Balls)
	}
	return nil
}

// ToSim flattens the file layout into the simulation's Config.
func (c *Config) ToSim() sim.Config {
	return sim.Config{
		WorldWidth:        c.World.Width,
		WorldHeight:       c.World.Height,
		MinRadius:         c.Spawn.MinRadius,
		MaxRadius:         c.Spawn.MaxRadius,
		MinSpeed:          c.Spawn.MinSpeed,
		MaxSpeed:          c.Spawn.MaxSpeed,
		MassDensity:       c.Spawn.MassDensity,
		SurfaceFriction:   c.Physics.SurfaceFriction,
		Gravity:           c.Physics.Gravity,
		BounceRestitution: c.Physics.BounceRestitution,
		FloorFriction:     c.Physics.FloorFriction,
		AirResistance:     c.Physics.AirResistance,
		WallBoost:         c.Physics.WallBoost,
		MaxSpeedCap:       c.Physics.MaxSpeedCap,
		ShockwaveStrength: c.Physics.ShockwaveStrength,
		ShockwaveRadius:   c.Physics.ShockwaveRadius,
		Seed:              c.Scene.Seed,
	}
}
