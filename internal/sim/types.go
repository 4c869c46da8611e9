package sim

import "github.com/san-kum/bouncelab/internal/physics"

// Config holds every physics tunable. Values are in pixels and
// frames (60 fps nominal); damping coefficients are per-frame
// multiplicative factors.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	MinRadius   float64
	MaxRadius   float64
	MinSpeed    float64
	MaxSpeed    float64
	MassDensity float64

	SurfaceFriction   float64
	Gravity           float64
	BounceRestitution float64
	FloorFriction     float64
	AirResistance     float64
	WallBoost         float64
	MaxSpeedCap       float64
	ShockwaveStrength float64
	ShockwaveRadius   float64

	Seed int64
}

// DefaultConfig returns the classic sandbox tuning.
func DefaultConfig() Config {
	return Config{
		WorldWidth:        800,
		WorldHeight:       420,
		MinRadius:         12,
		MaxRadius:         30,
		MinSpeed:          0.5,
		MaxSpeed:          3.0,
		MassDensity:       1.0,
		SurfaceFriction:   0.9999,
		Gravity:           0.15,
		BounceRestitution: 0.85,
		FloorFriction:     0.99,
		AirResistance:     0.9995,
		WallBoost:         1.12,
		MaxSpeedCap:       5.0,
		ShockwaveStrength: 800.0,
		ShockwaveRadius:   400.0,
	}
}

// BallState is a read-only snapshot of one ball, safe to hand to
// renderers and metrics while the simulation keeps mutating.
type BallState struct {
	ID            int
	Position      physics.Vector2D
	Velocity      physics.Vector2D
	Radius        float64
	Mass          float64
	KineticEnergy float64
}

// EventKind tags the transient per-tick events Step reports.
type EventKind int

const (
	// EventWallBoost fires when a ball bounced off the left wall and
	// received the speed boost. Renderers use it for the glow effect.
	EventWallBoost EventKind = iota
	// EventCollision fires once per resolved ball pair.
	EventCollision
)

// Event records one occurrence within a single tick. Events are
// returned from Step and never retained by the simulation.
type Event struct {
	Kind    EventKind
	BallID  int
	OtherID int
	Pos     physics.Vector2D
}

// Metric observes the ball set after every completed tick and
// aggregates a scalar summary.
type Metric interface {
	Name() string
	Observe(balls []BallState, t float64)
	Value() float64
	Reset()
}
