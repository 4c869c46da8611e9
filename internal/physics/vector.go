package physics

import "math"

// Vector2D is an immutable 2D vector. The y axis points down,
// matching screen coordinates.
type Vector2D struct {
	X float64
	Y float64
}

// Vec is shorthand for constructing a Vector2D.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Neg returns the vector pointing the opposite way.
func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// Magnitude returns the Euclidean length.
func (v Vector2D) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// MagnitudeSq returns the squared length, avoiding a sqrt when only
// comparisons are needed.
func (v Vector2D) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector; callers that need a
// direction must check for degeneracy themselves.
func (v Vector2D) Normalized() Vector2D {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / mag, Y: v.Y / mag}
}

// Dot returns the dot product with other.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Angle returns the angle in radians measured from the +x axis.
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns the Euclidean distance to other.
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Magnitude()
}

// DistanceSq returns the squared distance to other.
func (v Vector2D) DistanceSq(other Vector2D) float64 {
	return v.Sub(other).MagnitudeSq()
}

// Clamped returns the vector capped at maxMagnitude length.
func (v Vector2D) Clamped(maxMagnitude float64) Vector2D {
	if v.MagnitudeSq() <= maxMagnitude*maxMagnitude {
		return v
	}
	return v.Normalized().Scale(maxMagnitude)
}

// IsValid reports whether both components are finite.
func (v Vector2D) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// FromAngle creates a vector from an angle (radians) and magnitude.
func FromAngle(angle, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}
