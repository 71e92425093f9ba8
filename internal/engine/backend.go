package engine

import (
	"time"

	"github.com/vovakirdan/lys/internal/core"
)

// Backend presents frames and translates native input. Coordinates and
// sizes are in pixels; a terminal backend reports twice its row count as
// height.
type Backend interface {
	// Size reports the initial geometry.
	Size() (width, height int)

	// Resize reallocates the backend buffers. Previous contents are
	// discarded.
	Resize(width, height int) error

	// Draw presents one frame.
	Draw(frame core.Frame, info FrameInfo) error

	// Poll drains pending native input, translating it into calls on in.
	Poll(in Input) error

	// Close releases backend resources. It is called exactly once.
	Close() error
}

// Input receives translated input from a backend.
type Input interface {
	// Dispatch applies a logical input event to the simulation.
	Dispatch(ev core.Event) error

	// Resize reports a new substrate geometry.
	Resize(width, height int) error

	// Stop requests the loop to end after the current iteration.
	Stop()
}

// FrameInfo carries per-frame diagnostics to the backend.
type FrameInfo struct {
	Iteration     uint64
	RenderLatency time.Duration
	FPS           float64
	Overlays      []Overlay
}

// Overlay is text drawn over a frame at a position in the backend's
// native unit: pixels for windows, cells for terminals.
type Overlay struct {
	X, Y  int
	Text  string
	Color uint32
}
