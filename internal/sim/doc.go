// Package sim owns the sandbox state: the set of balls and the tick
// loop that advances them.
//
// A [Simulation] exclusively owns its balls. External layers read
// state through [Simulation.Snapshot] and mutate it only through the
// command methods (spawn, remove, reset, gravity toggle, shockwave,
// the paused-only velocity editor). [Simulation.Step] returns the
// transient events of that tick; nothing event-like is stored across
// ticks.
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe: a step must never overlap
// another step or a command. A single-threaded host (like the TUI
// frame loop) satisfies this by construction. For parallel headless
// runs use [Ensemble], which gives each goroutine its own Simulation.
package sim
