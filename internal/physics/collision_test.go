package physics

import (
	"math"
	"testing"
)

func TestOverlap(t *testing.T) {
	tests := []struct {
		name   string
		posA   Vector2D
		rA     float64
		posB   Vector2D
		rB     float64
		expect bool
	}{
		{"clearly overlapping", Vec(0, 0), 10, Vec(5, 0), 10, true},
		{"clearly apart", Vec(0, 0), 10, Vec(50, 0), 10, false},
		{"exactly touching is not overlap", Vec(0, 0), 10, Vec(20, 0), 10, false},
		{"just inside", Vec(0, 0), 10, Vec(19.999, 0), 10, true},
		{"concentric", Vec(0, 0), 5, Vec(0, 0), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.posA, tt.rA, tt.posB, tt.rB); got != tt.expect {
				t.Errorf("Overlap = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestResolveEqualMassHeadOnSwapsVelocities(t *testing.T) {
	vA, vB, _, _ := Resolve(
		Vec(0, 0), Vec(2, 0), 1, 10,
		Vec(19, 0), Vec(-2, 0), 1, 10,
	)

	if !approx(vA.X, -2, 1e-9) || !approx(vB.X, 2, 1e-9) {
		t.Errorf("equal masses should swap: vA=%+v vB=%+v", vA, vB)
	}
}

func TestResolveClosedFormScenario(t *testing.T) {
	// m=1 at speed 4 meets m=2 at speed 2, collinear approach.
	// 1D elastic closed form:
	//   v1' = ((m1-m2)v1 + 2 m2 v2) / (m1+m2) = (-4 - 8) / 3 = -4
	//   v2' = ((m2-m1)v2 + 2 m1 v1) / (m1+m2) = (-2 + 8) / 3 = 2
	vA, vB, _, _ := Resolve(
		Vec(0, 0), Vec(4, 0), 1, 5,
		Vec(9, 0), Vec(-2, 0), 2, 5,
	)

	if !approx(vA.X, -4, 1e-9) || !approx(vA.Y, 0, 1e-9) {
		t.Errorf("vA = %+v, want (-4, 0)", vA)
	}
	if !approx(vB.X, 2, 1e-9) || !approx(vB.Y, 0, 1e-9) {
		t.Errorf("vB = %+v, want (2, 0)", vB)
	}
}

func TestResolveConservesMomentumAndEnergy(t *testing.T) {
	cases := []struct {
		name       string
		posA, posB Vector2D
		velA, velB Vector2D
		mA, mB     float64
	}{
		{"head on", Vec(0, 0), Vec(14, 0), Vec(3, 0), Vec(-1, 0), 2, 5},
		{"oblique", Vec(0, 0), Vec(10, 9), Vec(2, 1), Vec(-1, -2), 1, 3},
		{"rear end", Vec(0, 0), Vec(13, 0), Vec(4, 0), Vec(1, 0), 7, 2},
		{"glancing", Vec(0, 0), Vec(2, 13), Vec(0, 3), Vec(0.5, -2), 4, 4},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rA, rB := 8.0, 7.0
			vA, vB, _, _ := Resolve(tt.posA, tt.velA, tt.mA, rA, tt.posB, tt.velB, tt.mB, rB)

			pBefore := tt.velA.Scale(tt.mA).Add(tt.velB.Scale(tt.mB))
			pAfter := vA.Scale(tt.mA).Add(vB.Scale(tt.mB))
			if !approx(pBefore.X, pAfter.X, 1e-6) || !approx(pBefore.Y, pAfter.Y, 1e-6) {
				t.Errorf("momentum not conserved: %+v -> %+v", pBefore, pAfter)
			}

			keBefore := 0.5*tt.mA*tt.velA.MagnitudeSq() + 0.5*tt.mB*tt.velB.MagnitudeSq()
			keAfter := 0.5*tt.mA*vA.MagnitudeSq() + 0.5*tt.mB*vB.MagnitudeSq()
			if keAfter > keBefore+1e-6 {
				t.Errorf("kinetic energy increased: %f -> %f", keBefore, keAfter)
			}
			if math.Abs(keAfter-keBefore) > 1e-6 {
				t.Errorf("kinetic energy not conserved: %f -> %f", keBefore, keAfter)
			}
		})
	}
}

func TestResolveSeparatesOverlap(t *testing.T) {
	rA, rB := 10.0, 10.0
	_, _, pA, pB := Resolve(
		Vec(0, 0), Vec(1, 0), 1, rA,
		Vec(15, 0), Vec(-1, 0), 1, rB,
	)

	if pA.Distance(pB) < rA+rB {
		t.Errorf("circles still overlap after resolve: dist %f", pA.Distance(pB))
	}
}

func TestResolveSplitsCorrectionInverselyToMass(t *testing.T) {
	posA, posB := Vec(0, 0), Vec(15, 0)
	_, _, pA, pB := Resolve(
		posA, Vec(1, 0), 1, 10, // light
		posB, Vec(-1, 0), 9, 10, // heavy
	)

	movedA := pA.Distance(posA)
	movedB := pB.Distance(posB)
	if movedB >= movedA {
		t.Errorf("heavier circle should move less: light %f, heavy %f", movedA, movedB)
	}
	if !approx(movedA/movedB, 9, 1e-6) {
		t.Errorf("split should be inverse to mass ratio, got %f", movedA/movedB)
	}
}

func TestResolveSeparatingPairKeepsVelocities(t *testing.T) {
	velA, velB := Vec(-3, 0), Vec(3, 0)
	vA, vB, pA, pB := Resolve(
		Vec(0, 0), velA, 1, 10,
		Vec(15, 0), velB, 1, 10,
	)

	if vA != velA || vB != velB {
		t.Errorf("separating pair should keep velocities: %+v %+v", vA, vB)
	}
	// Overlap is still fixed so the pair can't stay stuck.
	if pA.Distance(pB) < 20 {
		t.Errorf("overlap not corrected: dist %f", pA.Distance(pB))
	}
}

func TestResolveCoincidentCenters(t *testing.T) {
	vA, vB, pA, pB := Resolve(
		Vec(50, 50), Vec(0, 0), 1, 10,
		Vec(50, 50), Vec(0, 0), 1, 10,
	)

	if pA == pB {
		t.Error("coincident circles must be pushed apart")
	}
	if !vA.IsValid() || !vB.IsValid() || !pA.IsValid() || !pB.IsValid() {
		t.Error("degenerate input produced non-finite output")
	}
}
