// Package sim defines the contract between the render loop and a
// simulation runtime, and the single-owner handle that carries the
// runtime's opaque state across transitions.
package sim

import "github.com/vovakirdan/lys/internal/core"

// State is an opaque state value produced and consumed by a Runtime.
// The loop never inspects it.
type State any

// Runtime is implemented by simulations. Every mutating entry point takes
// the current state and returns a replacement; the caller frees the old
// value with Free once the new one has been obtained. Any error is fatal
// to the run.
type Runtime interface {
	// Init creates the initial state for the given geometry.
	Init(height, width int) (State, error)

	// Resize derives a state sized to a new geometry.
	Resize(height, width int, s State) (State, error)

	// Step advances the simulation by dt seconds.
	Step(dt float32, s State) (State, error)

	// Key reports a key transition. up is true on release.
	Key(up bool, key core.Key, s State) (State, error)

	// Mouse reports pointer motion or button changes.
	Mouse(buttons core.ButtonMask, x, y int, s State) (State, error)

	// Wheel reports a scroll delta.
	Wheel(dx, dy int, s State) (State, error)

	// Render produces a frame of the state's current geometry.
	// For terminal output the height is twice the cell row count.
	Render(s State) (core.Frame, error)

	// Free releases a state value that is no longer referenced.
	Free(s State) error
}

// Info describes a registered simulation.
type Info struct {
	ID    string
	Title string
}

// Describer is optionally implemented by runtimes to expose metadata.
type Describer interface {
	Describe() Info
}
