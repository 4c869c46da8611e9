package sim

import (
	"context"
	"fmt"
	"math"
)

// RunConfig describes a headless run.
type RunConfig struct {
	Balls         int     // random balls to seed before tick 0
	Ticks         int     // number of steps
	Dt            float64 // frames per step, normally 1.0
	SampleEvery   int     // record a full snapshot every n ticks (0 = 60)
	Gravity       bool    // start in gravity mode
	ValidateState bool    // abort on NaN/Inf ball state
}

// Frame is one sampled snapshot of the whole ball set.
type Frame struct {
	Time  float64
	Balls []BallState
}

// Result aggregates a completed headless run.
type Result struct {
	Times       []float64
	Energies    []float64
	Frames      []Frame
	Metrics     map[string]float64
	WallBoosts  int
	Collisions  int
	StepsTaken  int
	EnergyDrift float64
	Errors      []error
}

func (rc RunConfig) validate() error {
	if rc.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", rc.Ticks)
	}
	if rc.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", rc.Dt)
	}
	if rc.Balls < 0 {
		return fmt.Errorf("balls must be non-negative, got %d", rc.Balls)
	}
	return nil
}

// Run drives the simulation for a fixed number of ticks, recording
// the energy series, sampled snapshots, and metric values. The
// context is checked every tick so long runs can be canceled.
func (s *Simulation) Run(ctx context.Context, rc RunConfig) (*Result, error) {
	if err := rc.validate(); err != nil {
		return nil, err
	}
	sample := rc.SampleEvery
	if sample <= 0 {
		sample = 60
	}

	if rc.Balls > 0 {
		s.Populate(rc.Balls)
	}
	if rc.Gravity != s.GravityOn() {
		s.ToggleGravity()
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Times:    make([]float64, 0, rc.Ticks),
		Energies: make([]float64, 0, rc.Ticks),
		Frames:   make([]Frame, 0, rc.Ticks/sample+1),
		Metrics:  make(map[string]float64),
	}

	initialEnergy := s.TotalEnergy()

	for i := 0; i < rc.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		events := s.Step(rc.Dt)
		for _, ev := range events {
			switch ev.Kind {
			case EventWallBoost:
				result.WallBoosts++
			case EventCollision:
				result.Collisions++
			}
		}

		result.StepsTaken++
		result.Times = append(result.Times, s.Time())
		result.Energies = append(result.Energies, s.TotalEnergy())

		if i%sample == 0 {
			result.Frames = append(result.Frames, Frame{Time: s.Time(), Balls: s.Snapshot()})
		}

		if rc.ValidateState && !s.stateValid() {
			err := SimError{Step: i, Time: s.Time(), Message: "invalid ball state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}
	}

	finalEnergy := s.TotalEnergy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulation) stateValid() bool {
	for _, b := range s.balls {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return false
		}
	}
	return true
}
