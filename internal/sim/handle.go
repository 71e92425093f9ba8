package sim

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/vovakirdan/lys/internal/core"
)

// ErrReleased is returned when a transition is attempted on a released handle.
var ErrReleased = errors.New("sim: handle released")

// TransitionError is a collaborator failure annotated with the call site
// that requested the transition.
type TransitionError struct {
	Op   string
	File string
	Line int
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s:%d: sim %s: %v", e.File, e.Line, e.Op, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// fault wraps err with the location skip frames above it.
func fault(skip int, op string, err error) error {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "???", 0
	}
	return &TransitionError{Op: op, File: filepath.Base(file), Line: line, Err: err}
}

// Handle owns the single live state of a runtime. Each transition hands
// the current state to the runtime, installs the returned state and only
// then frees the old one, so a failed transition leaves the handle intact.
type Handle struct {
	rt    Runtime
	state State
	live  bool
}

// Open initializes a runtime and returns the handle owning its state.
func Open(rt Runtime, height, width int) (*Handle, error) {
	s, err := rt.Init(height, width)
	if err != nil {
		return nil, fault(2, "init", err)
	}
	return &Handle{rt: rt, state: s, live: true}, nil
}

// Live reports whether the handle still owns a state.
func (h *Handle) Live() bool {
	return h != nil && h.live
}

// replace runs one transition. The old state is freed right after the new
// one is installed.
func (h *Handle) replace(op string, next func(State) (State, error)) error {
	if !h.Live() {
		return fault(3, op, ErrReleased)
	}
	ns, err := next(h.state)
	if err != nil {
		return fault(3, op, err)
	}
	old := h.state
	h.state = ns
	if err := h.rt.Free(old); err != nil {
		return fault(3, "free", err)
	}
	return nil
}

// Resize replaces the state with one sized to the new geometry.
func (h *Handle) Resize(height, width int) error {
	return h.replace("resize", func(s State) (State, error) {
		return h.rt.Resize(height, width, s)
	})
}

// Step advances the state by dt seconds.
func (h *Handle) Step(dt float32) error {
	return h.replace("step", func(s State) (State, error) {
		return h.rt.Step(dt, s)
	})
}

// Key applies a key transition.
func (h *Handle) Key(up bool, key core.Key) error {
	return h.replace("key", func(s State) (State, error) {
		return h.rt.Key(up, key, s)
	})
}

// Mouse applies a pointer transition.
func (h *Handle) Mouse(buttons core.ButtonMask, x, y int) error {
	return h.replace("mouse", func(s State) (State, error) {
		return h.rt.Mouse(buttons, x, y, s)
	})
}

// Wheel applies a scroll transition.
func (h *Handle) Wheel(dx, dy int) error {
	return h.replace("wheel", func(s State) (State, error) {
		return h.rt.Wheel(dx, dy, s)
	})
}

// Render asks the runtime for a frame of the current state.
func (h *Handle) Render() (core.Frame, error) {
	if !h.Live() {
		return core.Frame{}, fault(2, "render", ErrReleased)
	}
	f, err := h.rt.Render(h.state)
	if err != nil {
		return core.Frame{}, fault(2, "render", err)
	}
	return f, nil
}

// Release frees the final state. Calling it again is a no-op.
func (h *Handle) Release() error {
	if !h.Live() {
		return nil
	}
	h.live = false
	s := h.state
	h.state = nil
	if err := h.rt.Free(s); err != nil {
		return fault(2, "free", err)
	}
	return nil
}
