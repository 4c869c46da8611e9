package metrics

import (
	"math"

	"github.com/san-kum/bouncelab/internal/sim"
)

// Energy tracks the mean total kinetic energy of the scene across all
// observed ticks.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(balls []sim.BallState, t float64) {
	var tick float64
	for _, b := range balls {
		tick += b.KineticEnergy
	}
	e.total += tick
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation of total kinetic
// energy from the first observed tick. With friction and air drag on
// it decays steadily; in frictionless tunings it stays near zero
// unless the left-wall boost injects energy.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(balls []sim.BallState, t float64) {
	var energy float64
	for _, b := range balls {
		energy += b.KineticEnergy
	}

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial == 0 {
		return
	}
	drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
