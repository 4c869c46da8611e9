package sim

import (
	"math"

	"github.com/san-kum/bouncelab/internal/physics"
)

// Ball is a circular body: a point mass with a radius, no spin.
// Mass derives from the radius via the 2D area model
// (mass = density * pi * r^2), so bigger balls are heavier.
type Ball struct {
	ID       int
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Mass     float64
}

func newBall(id int, pos, vel physics.Vector2D, radius, density float64) *Ball {
	return &Ball{
		ID:       id,
		Position: pos,
		Velocity: vel,
		Radius:   radius,
		Mass:     density * math.Pi * radius * radius,
	}
}

// Speed returns the scalar speed.
func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// KineticEnergy returns 1/2 m v^2.
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSq()
}

// Momentum returns the momentum vector m*v.
func (b *Ball) Momentum() physics.Vector2D {
	return b.Velocity.Scale(b.Mass)
}

// ApplyImpulse adds an instantaneous velocity change.
func (b *Ball) ApplyImpulse(impulse physics.Vector2D) {
	b.Velocity = b.Velocity.Add(impulse)
}

// ClampSpeed caps the ball at maxSpeed.
func (b *Ball) ClampSpeed(maxSpeed float64) {
	b.Velocity = b.Velocity.Clamped(maxSpeed)
}

// advance integrates the position by dt frames of velocity.
func (b *Ball) advance(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// bounceWalls reflects the ball off the four world edges and clamps
// its position back inside, so static geometry can't be tunneled
// through. It reports which boost-relevant edges were hit this tick;
// the Simulation owns applying boost and floor decay (exactly one
// call site, so decay can't be applied twice).
func (b *Ball) bounceWalls(width, height float64) (hitLeft, hitFloor bool) {
	px, py := b.Position.X, b.Position.Y
	vx, vy := b.Velocity.X, b.Velocity.Y

	if px-b.Radius <= 0 && vx < 0 {
		vx = -vx
		px = b.Radius
		hitLeft = true
	} else if px+b.Radius >= width && vx > 0 {
		vx = -vx
		px = width - b.Radius
	}

	if py-b.Radius <= 0 && vy < 0 {
		vy = -vy
		py = b.Radius
	} else if py+b.Radius >= height && vy > 0 {
		vy = -vy
		py = height - b.Radius
		hitFloor = true
	}

	b.Position = physics.Vec(px, py)
	b.Velocity = physics.Vec(vx, vy)
	return hitLeft, hitFloor
}

// onFloor reports whether the ball rests on (or nearly on) the floor.
func (b *Ball) onFloor(height float64) bool {
	return b.Position.Y+b.Radius >= height-1
}

// state captures a read-only snapshot of the ball.
func (b *Ball) state() BallState {
	return BallState{
		ID:            b.ID,
		Position:      b.Position,
		Velocity:      b.Velocity,
		Radius:        b.Radius,
		Mass:          b.Mass,
		KineticEnergy: b.KineticEnergy(),
	}
}
