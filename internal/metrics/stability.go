package metrics

import (
	"github.com/san-kum/bouncelab/internal/sim"
)

// SpeedCap reports the fraction of observed ticks where every ball
// stayed at or below the configured speed ceiling. A value below 1.0
// means the per-step clamp let something through.
type SpeedCap struct {
	name       string
	cap        float64
	violations int
	samples    int
}

func NewSpeedCap(cap float64) *SpeedCap {
	return &SpeedCap{
		name: "speed_cap",
		cap:  cap,
	}
}

func (s *SpeedCap) Name() string {
	return s.name
}

func (s *SpeedCap) Observe(balls []sim.BallState, t float64) {
	s.samples++
	for _, b := range balls {
		// small tolerance for clamp rounding
		if b.Velocity.Magnitude() > s.cap*(1+1e-9) {
			s.violations++
			break
		}
	}
}

func (s *SpeedCap) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *SpeedCap) Reset() {
	s.violations = 0
	s.samples = 0
}

// Overlap counts the mean number of interpenetrating ball pairs per
// tick. Single-pass resolution can leave residual overlap under the
// separation slop, so small non-zero values are normal in dense
// scenes.
type Overlap struct {
	name    string
	pairs   int
	samples int
}

func NewOverlap() *Overlap {
	return &Overlap{name: "overlap_pairs"}
}

func (o *Overlap) Name() string {
	return o.name
}

func (o *Overlap) Observe(balls []sim.BallState, t float64) {
	o.samples++
	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			sum := balls[i].Radius + balls[j].Radius
			if balls[i].Position.DistanceSq(balls[j].Position) < sum*sum {
				o.pairs++
			}
		}
	}
}

func (o *Overlap) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.pairs) / float64(o.samples)
}

func (o *Overlap) Reset() {
	o.pairs = 0
	o.samples = 0
}
