// Package physics provides the pure math underneath the sandbox.
//
// Everything here is a value computation: vectors are immutable,
// force functions map a velocity to a new velocity, and collision
// resolution returns fresh velocities and positions. No state is
// held between calls and nothing in this package knows how balls
// are stored or drawn.
//
// Units are pixels and frames: velocities are px/frame at the
// nominal 60 fps tick, and dt parameters are measured in frames
// (dt = 1 advances one frame). Per-frame damping factors are raised
// to the dt power so variable timesteps decay consistently.
package physics
