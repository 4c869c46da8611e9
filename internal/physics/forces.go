package physics

import "math"

// SurfaceFriction damps a velocity for dt frames of sliding friction
// in no-gravity mode. Heavier balls press harder on the surface, so
// the per-frame factor is coeff^sqrt(mass). A multiplicative decay
// can shrink a component toward zero but never flip its sign.
func SurfaceFriction(v Vector2D, mass, coeff, dt float64) Vector2D {
	factor := math.Pow(coeff, math.Sqrt(mass)*dt)
	return v.Scale(factor)
}

// Gravity adds dt frames of downward acceleration.
func Gravity(v Vector2D, accel, dt float64) Vector2D {
	return v.Add(Vector2D{Y: accel * dt})
}

// AirResistance applies dt frames of drag, a linear-in-velocity
// per-frame factor that opposes motion in gravity mode.
func AirResistance(v Vector2D, drag, dt float64) Vector2D {
	return v.Scale(math.Pow(drag, dt))
}

// FloorFriction damps only the horizontal component while a ball
// rolls on the floor, leaving the bounce untouched.
func FloorFriction(v Vector2D, coeff float64) Vector2D {
	return Vector2D{X: v.X * coeff, Y: v.Y}
}

// BounceRestitution scales the vertical component after a floor
// bounce; restitution < 1 makes successive apexes decay so a dropped
// ball converges to rest instead of bouncing forever.
func BounceRestitution(v Vector2D, restitution float64) Vector2D {
	return Vector2D{X: v.X, Y: v.Y * restitution}
}

// WallBoost computes the post-boost velocity after a left-wall
// bounce. The x component is multiplied by boost, and the result is
// clamped so the speed never exceeds cap, no matter how fast the
// ball arrived.
func WallBoost(v Vector2D, boost, cap float64) Vector2D {
	if v.Magnitude() >= cap {
		return v.Clamped(cap)
	}
	boosted := Vector2D{X: v.X * boost, Y: v.Y}
	return boosted.Clamped(cap)
}

// ShockwaveImpulse computes the velocity kick a shockwave at origin
// gives a ball centered at ballPos. Magnitude falls off as
// strength/distance with the distance floored at 1 px. A wave at
// exactly the ball's center has no direction and imparts nothing;
// balls beyond radius receive nothing.
func ShockwaveImpulse(ballPos, origin Vector2D, strength, radius float64) Vector2D {
	delta := ballPos.Sub(origin)
	dist := delta.Magnitude()
	if dist > radius {
		return Vector2D{}
	}
	safeDist := math.Max(dist, 1.0)
	return delta.Normalized().Scale(strength / safeDist)
}
