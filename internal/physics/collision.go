package physics

// separationSlop is the extra distance, in px, added when pushing
// overlapping circles apart so they don't re-collide next tick from
// floating-point residue. It also bounds the overlap a 3+-body
// cluster can retain after a single resolution pass.
const separationSlop = 0.5

// Overlap reports whether two circles overlap. The test is strict:
// circles whose edges exactly touch are not overlapping.
func Overlap(posA Vector2D, radiusA float64, posB Vector2D, radiusB float64) bool {
	minDist := radiusA + radiusB
	return posA.DistanceSq(posB) < minDist*minDist
}

// Resolve computes post-collision velocities and separated positions
// for two overlapping circles.
//
// Velocities follow the standard 2D elastic formula along the line of
// centers: total momentum is conserved exactly and kinetic energy up
// to floating-point error, with the tangential components untouched.
// Circles already moving apart keep their velocities but are still
// separated, so repeated resolution can never inject energy.
//
// The positional correction splits the overlap inversely to mass:
// the heavier circle moves less, which keeps de-overlapping from
// flinging light balls out of heavy clusters.
func Resolve(
	posA, velA Vector2D, massA, radiusA float64,
	posB, velB Vector2D, massB, radiusB float64,
) (newVelA, newVelB, newPosA, newPosB Vector2D) {
	normal := posA.Sub(posB)
	dist := normal.Magnitude()
	if dist == 0 {
		// Coincident centers: pick an arbitrary separation axis.
		normal = Vector2D{X: 1}
		dist = 1
	}
	n := normal.Normalized()

	overlap := (radiusA + radiusB) - dist
	if overlap > 0 {
		total := massA + massB
		push := overlap + separationSlop
		posA = posA.Add(n.Scale(push * massB / total))
		posB = posB.Sub(n.Scale(push * massA / total))
	}

	relVel := velA.Sub(velB)
	velAlongNormal := relVel.Dot(n)
	if velAlongNormal > 0 {
		// Already separating.
		return velA, velB, posA, posB
	}

	totalMass := massA + massB
	impulse := (2 * velAlongNormal) / totalMass
	newVelA = velA.Sub(n.Scale(impulse * massB))
	newVelB = velB.Add(n.Scale(impulse * massA))

	return newVelA, newVelB, posA, posB
}
