package sim

import (
	"errors"
	"fmt"
)

// Domain errors for sandbox commands. All are local, recoverable
// conditions: a failed command leaves the simulation untouched.
var (
	// ErrInvalidBallSpec indicates a spawn with a non-positive radius
	// or a non-finite position/velocity.
	ErrInvalidBallSpec = errors.New("sim: invalid ball spec")

	// ErrSpawnOverlap indicates a spawn position that would overlap an
	// existing ball.
	ErrSpawnOverlap = errors.New("sim: spawn overlaps an existing ball")

	// ErrUnknownBall indicates a remove/edit of a nonexistent ball id.
	ErrUnknownBall = errors.New("sim: unknown ball id")

	// ErrNotEditable indicates an editor mutation attempted while the
	// simulation is running; editing requires a paused simulation.
	ErrNotEditable = errors.New("sim: editing requires a paused simulation")
)

// SimError wraps a failure detected mid-run with tick context.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.2f): %s", e.Step, e.Time, e.Message)
}
