// Package viz renders the sandbox in the terminal. A braille
// dot-matrix canvas gives roughly 200x104 addressable sub-pixels in a
// 100x26 character window, and a bubbletea model drives the 60fps
// loop, keyboard control, and mouse slingshot input.
//
// The package keeps only presentation state (glow timers, shockwave
// rings, drag rubber band); everything physical lives in the
// simulation.
package viz
