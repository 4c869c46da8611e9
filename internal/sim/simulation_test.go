package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bouncelab/internal/physics"
	"github.com/san-kum/bouncelab/internal/sim"
)

// frictionless keeps momentum bookkeeping exact in collision specs.
func frictionless() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = 1
	cfg.SurfaceFriction = 1.0
	cfg.AirResistance = 1.0
	return cfg
}

var _ = Describe("Simulation", func() {
	var s *sim.Simulation

	BeforeEach(func() {
		cfg := sim.DefaultConfig()
		cfg.Seed = 1
		s = sim.New(cfg)
	})

	Describe("spawning", func() {
		It("adds a ball at the requested position", func() {
			b, err := s.SpawnAt(physics.Vec(400, 200))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Position).To(Equal(physics.Vec(400, 200)))
			Expect(s.Len()).To(Equal(1))
		})

		It("keeps an explicit slingshot velocity", func() {
			b, err := s.SpawnThrown(physics.Vec(400, 200), physics.Vec(3, -2))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Velocity).To(Equal(physics.Vec(3, -2)))
		})

		It("clamps spawn velocity to the speed cap", func() {
			b, err := s.SpawnThrown(physics.Vec(400, 200), physics.Vec(40, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Speed()).To(BeNumerically("~", s.Config().MaxSpeedCap, 1e-9))
		})

		It("rejects an overlapping spawn and leaves state unchanged", func() {
			_, err := s.SpawnBall(physics.Vec(100, 100), physics.Vec(0, 0), 20)
			Expect(err).NotTo(HaveOccurred())

			_, err = s.SpawnBall(physics.Vec(105, 100), physics.Vec(0, 0), 20)
			Expect(err).To(MatchError(sim.ErrSpawnOverlap))
			Expect(s.Len()).To(Equal(1))
		})

		It("allows well separated spawns", func() {
			_, err := s.SpawnAt(physics.Vec(100, 100))
			Expect(err).NotTo(HaveOccurred())
			_, err = s.SpawnAt(physics.Vec(400, 300))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(2))
		})

		It("rejects a non-positive radius", func() {
			_, err := s.SpawnBall(physics.Vec(100, 100), physics.Vec(0, 0), 0)
			Expect(err).To(MatchError(sim.ErrInvalidBallSpec))
			Expect(s.Len()).To(BeZero())
		})

		It("assigns stable, distinct ids", func() {
			a, _ := s.SpawnAt(physics.Vec(100, 100))
			b, _ := s.SpawnAt(physics.Vec(400, 300))
			Expect(a.ID).NotTo(Equal(b.ID))
		})
	})

	Describe("Populate", func() {
		It("seeds the requested number of balls in an empty world", func() {
			Expect(s.Populate(5)).To(Equal(5))
			Expect(s.Len()).To(Equal(5))
		})
	})

	Describe("stepping", func() {
		It("moves a ball by its velocity", func() {
			b, _ := s.SpawnThrown(physics.Vec(400, 200), physics.Vec(2, 0))
			s.Step(1.0)
			Expect(b.Position.X).To(BeNumerically(">", 400))
		})

		It("scales displacement with dt", func() {
			cfg := frictionless()
			fs := sim.New(cfg)
			b, _ := fs.SpawnThrown(physics.Vec(400, 200), physics.Vec(2, 0))
			fs.Step(0.5)
			Expect(b.Position.X).To(BeNumerically("~", 401, 1e-9))
		})

		It("does nothing while paused", func() {
			b, _ := s.SpawnThrown(physics.Vec(400, 200), physics.Vec(2, 0))
			s.TogglePause()
			events := s.Step(1.0)
			Expect(events).To(BeEmpty())
			Expect(b.Position).To(Equal(physics.Vec(400, 200)))
		})

		It("advances simulated time only when running", func() {
			s.Step(1.0)
			s.Step(1.0)
			Expect(s.Time()).To(BeNumerically("~", 2.0))
			s.TogglePause()
			s.Step(1.0)
			Expect(s.Time()).To(BeNumerically("~", 2.0))
		})
	})

	Describe("wall boost", func() {
		It("boosts a left-wall bounce, emits the event, and respects the cap", func() {
			b, _ := s.SpawnThrown(physics.Vec(15, 200), physics.Vec(-3, 0))
			events := s.Step(1.0)

			Expect(events).To(ContainElement(HaveField("Kind", sim.EventWallBoost)))
			Expect(b.Velocity.X).To(BeNumerically(">", 3)) // reflected and boosted
			Expect(b.Speed()).To(BeNumerically("<=", s.Config().MaxSpeedCap+1e-9))
		})

		It("does not replay the event on later ticks", func() {
			s.SpawnThrown(physics.Vec(15, 200), physics.Vec(-3, 0))
			s.Step(1.0)
			events := s.Step(1.0)
			Expect(events).NotTo(ContainElement(HaveField("Kind", sim.EventWallBoost)))
		})
	})

	Describe("collisions", func() {
		It("resolves a head-on pair and reports the event", func() {
			fs := sim.New(frictionless())
			a, _ := fs.SpawnBall(physics.Vec(355, 200), physics.Vec(2, 0), 15)
			b, _ := fs.SpawnBall(physics.Vec(400, 200), physics.Vec(-2, 0), 15)

			var sawCollision bool
			for i := 0; i < 60 && !sawCollision; i++ {
				for _, ev := range fs.Step(1.0) {
					if ev.Kind == sim.EventCollision {
						sawCollision = true
					}
				}
			}

			Expect(sawCollision).To(BeTrue())
			Expect(a.Velocity.X).To(BeNumerically("<", 0))
			Expect(b.Velocity.X).To(BeNumerically(">", 0))
		})

		It("conserves momentum across a frictionless step", func() {
			fs := sim.New(frictionless())
			a, _ := fs.SpawnBall(physics.Vec(360, 200), physics.Vec(2, 0), 15)
			b, _ := fs.SpawnBall(physics.Vec(440, 200), physics.Vec(-2, 0), 15)

			before := a.Momentum().Add(b.Momentum())
			for i := 0; i < 30; i++ {
				fs.Step(1.0)
			}
			after := a.Momentum().Add(b.Momentum())

			Expect(after.X).To(BeNumerically("~", before.X, 1e-6))
			Expect(after.Y).To(BeNumerically("~", before.Y, 1e-6))
		})

		It("leaves no persistent overlap after a completed step", func() {
			fs := sim.New(frictionless())
			fs.SpawnBall(physics.Vec(360, 200), physics.Vec(2, 0), 15)
			fs.SpawnBall(physics.Vec(420, 200), physics.Vec(-2, 0), 15)

			for i := 0; i < 120; i++ {
				fs.Step(1.0)
				snap := fs.Snapshot()
				for x := 0; x < len(snap); x++ {
					for y := x + 1; y < len(snap); y++ {
						dist := snap[x].Position.Distance(snap[y].Position)
						minDist := snap[x].Radius + snap[y].Radius
						Expect(dist).To(BeNumerically(">=", minDist-1e-6))
					}
				}
			}
		})
	})

	Describe("gravity mode", func() {
		It("accelerates a ball downward", func() {
			b, _ := s.SpawnBall(physics.Vec(400, 100), physics.Vec(0, 0), 15)
			s.ToggleGravity()
			s.Step(1.0)
			Expect(b.Velocity.Y).To(BeNumerically(">", 0))
		})

		It("loses height every bounce", func() {
			b, _ := s.SpawnBall(physics.Vec(400, 100), physics.Vec(0, 0), 20)
			s.ToggleGravity()

			// Skip the initial fall, then track the first rebound apex.
			bounced := false
			apex := s.Config().WorldHeight
			for i := 0; i < 600; i++ {
				s.Step(1.0)
				if !bounced && b.Velocity.Y < 0 {
					bounced = true
				}
				if bounced && b.Position.Y < apex {
					apex = b.Position.Y
				}
			}

			Expect(bounced).To(BeTrue())
			Expect(apex).To(BeNumerically(">", 150)) // well below the drop height
		})

		It("brings a dropped ball to rest within bounded time", func() {
			b, _ := s.SpawnBall(physics.Vec(400, 100), physics.Vec(1.5, 0), 20)
			s.ToggleGravity()

			for i := 0; i < 6000; i++ {
				s.Step(1.0)
			}

			Expect(b.Speed()).To(BeNumerically("<", 1.0))
		})
	})

	Describe("shockwave", func() {
		It("pushes balls radially away", func() {
			b, _ := s.SpawnBall(physics.Vec(200, 200), physics.Vec(0, 0), 15)
			s.ApplyShockwave(physics.Vec(100, 200), 1.0)
			Expect(b.Velocity.X).To(BeNumerically(">", 0))
			Expect(b.Velocity.Y).To(BeNumerically("~", 0, 1e-9))
		})

		It("ignores balls beyond the configured radius", func() {
			b, _ := s.SpawnBall(physics.Vec(200, 200), physics.Vec(0, 0), 15)
			s.ApplyShockwave(physics.Vec(200+2*s.Config().ShockwaveRadius, 200), 1.0)
			Expect(b.Velocity).To(Equal(physics.Vec(0, 0)))
		})

		It("is permitted while paused", func() {
			b, _ := s.SpawnBall(physics.Vec(200, 200), physics.Vec(0, 0), 15)
			s.TogglePause()
			s.ApplyShockwave(physics.Vec(100, 200), 1.0)
			Expect(b.Velocity.X).To(BeNumerically(">", 0))
		})

		It("never pushes a ball past the speed cap", func() {
			b, _ := s.SpawnBall(physics.Vec(202, 200), physics.Vec(0, 0), 15)
			s.ApplyShockwave(physics.Vec(200, 200), 1.0)
			Expect(b.Speed()).To(BeNumerically("<=", s.Config().MaxSpeedCap+1e-9))
		})
	})

	Describe("the velocity editor", func() {
		It("refuses edits while running", func() {
			b, _ := s.SpawnAt(physics.Vec(400, 200))
			err := s.SetBallVelocity(b.ID, physics.Vec(1, 1))
			Expect(err).To(MatchError(sim.ErrNotEditable))
		})

		It("applies edits while paused", func() {
			b, _ := s.SpawnAt(physics.Vec(400, 200))
			s.TogglePause()
			Expect(s.SetBallVelocity(b.ID, physics.Vec(1, -1))).To(Succeed())
			Expect(b.Velocity).To(Equal(physics.Vec(1, -1)))
		})

		It("reports an unknown id", func() {
			s.TogglePause()
			err := s.SetBallVelocity(999, physics.Vec(1, 1))
			Expect(err).To(MatchError(sim.ErrUnknownBall))
		})
	})

	Describe("removal and reset", func() {
		It("removes a ball by id", func() {
			b, _ := s.SpawnAt(physics.Vec(400, 200))
			Expect(s.Remove(b.ID)).To(Succeed())
			Expect(s.Len()).To(BeZero())
		})

		It("reports removing an unknown id", func() {
			Expect(s.Remove(42)).To(MatchError(sim.ErrUnknownBall))
		})

		It("resets to an empty, running, gravity-off world with zero energy", func() {
			s.Populate(4)
			s.ToggleGravity()
			s.TogglePause()

			s.Reset()

			Expect(s.Len()).To(BeZero())
			Expect(s.TotalEnergy()).To(BeZero())
			Expect(s.Paused()).To(BeFalse())
			Expect(s.GravityOn()).To(BeFalse())
			Expect(s.Time()).To(BeZero())
		})
	})

	Describe("queries", func() {
		It("sums kinetic energy over all balls", func() {
			a, _ := s.SpawnBall(physics.Vec(100, 100), physics.Vec(2, 0), 15)
			b, _ := s.SpawnBall(physics.Vec(400, 300), physics.Vec(0, 3), 20)
			want := a.KineticEnergy() + b.KineticEnergy()
			Expect(s.TotalEnergy()).To(BeNumerically("~", want, 1e-9))
		})

		It("finds the ball under a point", func() {
			b, _ := s.SpawnBall(physics.Vec(300, 300), physics.Vec(0, 0), 20)
			got, ok := s.BallAt(physics.Vec(310, 300))
			Expect(ok).To(BeTrue())
			Expect(got.ID).To(Equal(b.ID))

			_, ok = s.BallAt(physics.Vec(500, 100))
			Expect(ok).To(BeFalse())
		})

		It("returns snapshots detached from live state", func() {
			b, _ := s.SpawnThrown(physics.Vec(400, 200), physics.Vec(2, 0))
			snap := s.Snapshot()
			s.Step(1.0)
			Expect(snap[0].Position).To(Equal(physics.Vec(400, 200)))
			Expect(b.Position).NotTo(Equal(physics.Vec(400, 200)))
		})
	})
})
