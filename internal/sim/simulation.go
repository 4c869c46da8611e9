package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/bouncelab/internal/physics"
)

// Simulation owns the ball set and advances it one tick at a time.
// It is the only component that mutates balls; everything outside
// works from snapshots and commands.
type Simulation struct {
	cfg       Config
	balls     []*Ball
	rng       *rand.Rand
	metrics   []Metric
	nextID    int
	t         float64
	steps     int
	gravityOn bool
	paused    bool
}

// New creates an empty simulation with the given tuning. A zero seed
// picks one from the clock.
func New(cfg Config) *Simulation {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulation{
		cfg:    cfg,
		balls:  make([]*Ball, 0, 16),
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
	}
}

func (s *Simulation) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Config returns the tuning the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Len returns the number of active balls.
func (s *Simulation) Len() int { return len(s.balls) }

// Paused reports whether physics stepping is frozen.
func (s *Simulation) Paused() bool { return s.paused }

// GravityOn reports whether gravity mode is active.
func (s *Simulation) GravityOn() bool { return s.gravityOn }

// Time returns the simulated time in frames.
func (s *Simulation) Time() float64 { return s.t }

// SpawnAt creates a ball at pos with random radius, speed, and
// direction drawn from the configured spawn ranges.
func (s *Simulation) SpawnAt(pos physics.Vector2D) (*Ball, error) {
	radius := s.randRadius()
	angle := s.rng.Float64() * 2 * math.Pi
	speed := s.cfg.MinSpeed + s.rng.Float64()*(s.cfg.MaxSpeed-s.cfg.MinSpeed)
	return s.spawn(pos, physics.FromAngle(angle, speed), radius)
}

// SpawnThrown creates a ball at pos with random radius and the exact
// velocity a slingshot drag produced.
func (s *Simulation) SpawnThrown(pos, vel physics.Vector2D) (*Ball, error) {
	return s.spawn(pos, vel, s.randRadius())
}

// SpawnBall creates a fully specified ball.
func (s *Simulation) SpawnBall(pos, vel physics.Vector2D, radius float64) (*Ball, error) {
	return s.spawn(pos, vel, radius)
}

func (s *Simulation) randRadius() float64 {
	return s.cfg.MinRadius + s.rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius)
}

// spawn validates the ball parameters, rejects overlapping placements, and
// appends the ball. Either the ball is added or nothing changes.
func (s *Simulation) spawn(pos, vel physics.Vector2D, radius float64) (*Ball, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %f", ErrInvalidBallSpec, radius)
	}
	if !pos.IsValid() || !vel.IsValid() {
		return nil, fmt.Errorf("%w: non-finite position or velocity", ErrInvalidBallSpec)
	}
	for _, b := range s.balls {
		if pos.Distance(b.Position) < radius+b.Radius {
			return nil, ErrSpawnOverlap
		}
	}

	ball := newBall(s.nextID, pos, vel.Clamped(s.cfg.MaxSpeedCap), radius, s.cfg.MassDensity)
	s.nextID++
	s.balls = append(s.balls, ball)
	return ball, nil
}

// Populate spawns up to n random balls at free positions, returning
// how many fit. Crowded worlds may hold fewer than requested.
func (s *Simulation) Populate(n int) int {
	spawned := 0
	margin := s.cfg.MaxRadius
	for attempts := 0; spawned < n && attempts < 20*n; attempts++ {
		pos := physics.Vec(
			margin+s.rng.Float64()*(s.cfg.WorldWidth-2*margin),
			margin+s.rng.Float64()*(s.cfg.WorldHeight-2*margin),
		)
		if _, err := s.SpawnAt(pos); err == nil {
			spawned++
		}
	}
	return spawned
}

// Remove deletes the ball with the given id.
func (s *Simulation) Remove(id int) error {
	for i, b := range s.balls {
		if b.ID == id {
			s.balls = append(s.balls[:i], s.balls[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownBall, id)
}

// Reset clears all balls and returns to the initial state: empty,
// gravity off, running.
func (s *Simulation) Reset() {
	s.balls = s.balls[:0]
	s.gravityOn = false
	s.paused = false
	s.t = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// ToggleGravity flips gravity mode and returns the new state.
func (s *Simulation) ToggleGravity() bool {
	s.gravityOn = !s.gravityOn
	return s.gravityOn
}

// TogglePause flips the paused flag and returns the new state.
func (s *Simulation) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// ApplyShockwave kicks every ball radially away from origin with
// inverse-distance falloff. The impulse scale multiplies the
// configured strength (1 = a full-strength wave). Allowed while
// paused, so a queued blast fires the moment the sim resumes.
func (s *Simulation) ApplyShockwave(origin physics.Vector2D, scale float64) {
	strength := s.cfg.ShockwaveStrength * scale
	for _, b := range s.balls {
		imp := physics.ShockwaveImpulse(b.Position, origin, strength, s.cfg.ShockwaveRadius)
		b.ApplyImpulse(imp)
		b.ClampSpeed(s.cfg.MaxSpeedCap)
	}
}

// SetBallVelocity overwrites a ball's velocity from the editor.
// Strict policy: only legal while paused.
func (s *Simulation) SetBallVelocity(id int, vel physics.Vector2D) error {
	if !s.paused {
		return ErrNotEditable
	}
	if !vel.IsValid() {
		return fmt.Errorf("%w: non-finite velocity", ErrInvalidBallSpec)
	}
	b := s.ball(id)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrUnknownBall, id)
	}
	b.Velocity = vel.Clamped(s.cfg.MaxSpeedCap)
	return nil
}

func (s *Simulation) ball(id int) *Ball {
	for _, b := range s.balls {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Step advances the world by dt frames and returns the tick's
// transient events. A paused simulation is a no-op.
//
// Order per tick: forces, integration, wall bounce (with boost),
// speed clamp, then one resolution pass over every unordered pair.
// Pair order is not load-bearing: resolution only ever removes
// approach velocity, so any visiting order converges, at worst
// leaving a sub-slop residual overlap in 3+-ball clusters for the
// next tick to finish.
func (s *Simulation) Step(dt float64) []Event {
	if s.paused || dt <= 0 {
		return nil
	}

	var events []Event

	for _, b := range s.balls {
		if s.gravityOn {
			b.Velocity = physics.Gravity(b.Velocity, s.cfg.Gravity, dt)
			b.Velocity = physics.AirResistance(b.Velocity, s.cfg.AirResistance, dt)
		} else {
			b.Velocity = physics.SurfaceFriction(b.Velocity, b.Mass, s.cfg.SurfaceFriction, dt)
		}

		b.advance(dt)

		hitLeft, hitFloor := b.bounceWalls(s.cfg.WorldWidth, s.cfg.WorldHeight)
		if s.gravityOn && hitFloor {
			b.Velocity = physics.BounceRestitution(b.Velocity, s.cfg.BounceRestitution)
		}
		if s.gravityOn && b.onFloor(s.cfg.WorldHeight) {
			b.Velocity = physics.FloorFriction(b.Velocity, s.cfg.FloorFriction)
		}
		if hitLeft {
			b.Velocity = physics.WallBoost(b.Velocity, s.cfg.WallBoost, s.cfg.MaxSpeedCap)
			events = append(events, Event{Kind: EventWallBoost, BallID: b.ID, Pos: b.Position})
		}

		b.ClampSpeed(s.cfg.MaxSpeedCap)
	}

	for i := 0; i < len(s.balls); i++ {
		for j := i + 1; j < len(s.balls); j++ {
			a, b := s.balls[i], s.balls[j]
			if !physics.Overlap(a.Position, a.Radius, b.Position, b.Radius) {
				continue
			}
			a.Velocity, b.Velocity, a.Position, b.Position = physics.Resolve(
				a.Position, a.Velocity, a.Mass, a.Radius,
				b.Position, b.Velocity, b.Mass, b.Radius,
			)
			mid := a.Position.Add(b.Position).Scale(0.5)
			events = append(events, Event{Kind: EventCollision, BallID: a.ID, OtherID: b.ID, Pos: mid})
		}
	}

	s.t += dt
	s.steps++

	if len(s.metrics) > 0 {
		snap := s.Snapshot()
		for _, m := range s.metrics {
			m.Observe(snap, s.t)
		}
	}

	return events
}

// Snapshot returns a copy of every ball's state, safe to iterate
// while the simulation keeps running or spawning.
func (s *Simulation) Snapshot() []BallState {
	out := make([]BallState, len(s.balls))
	for i, b := range s.balls {
		out[i] = b.state()
	}
	return out
}

// TotalEnergy returns the summed kinetic energy of all balls,
// recomputed on demand so it can never go stale.
func (s *Simulation) TotalEnergy() float64 {
	total := 0.0
	for _, b := range s.balls {
		total += b.KineticEnergy()
	}
	return total
}

// BallAt returns the state of the ball under pos, for click picking.
func (s *Simulation) BallAt(pos physics.Vector2D) (BallState, bool) {
	for _, b := range s.balls {
		if pos.Distance(b.Position) <= b.Radius {
			return b.state(), true
		}
	}
	return BallState{}, false
}
