// Package simtest provides an instrumented sim.Runtime for tests. It counts
// outstanding states, detects double frees and records every entry point call.
package simtest

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/sim"
)

// ErrInjected is returned by the entry point named in Runtime.FailOn.
var ErrInjected = errors.New("simtest: injected failure")

// State is the state value handed out by Runtime.
type State struct {
	ID     int
	Height int
	Width  int
	Steps  int
	LastDT float32
}

// Runtime is a counting sim.Runtime.
type Runtime struct {
	// FailOn names an entry point ("init", "resize", "step", "key",
	// "mouse", "wheel", "render") that returns ErrInjected.
	FailOn string

	// Fill is the color of rendered frames. Zero renders a gradient
	// derived from the pixel index.
	Fill uint32

	// Calls lists entry point names in call order.
	Calls []string

	// Inputs lists key, mouse and wheel calls as logical events.
	Inputs []core.Event

	nextID int
	live   map[int]bool
	freed  int
}

// New creates an instrumented runtime.
func New() *Runtime {
	return &Runtime{live: make(map[int]bool)}
}

// Live returns the number of states allocated and not yet freed.
func (r *Runtime) Live() int {
	return len(r.live)
}

// Freed returns the number of successful Free calls.
func (r *Runtime) Freed() int {
	return r.freed
}

// Count returns how many times the named entry point was called.
func (r *Runtime) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (r *Runtime) alloc(prev State) *State {
	r.nextID++
	s := prev
	s.ID = r.nextID
	r.live[s.ID] = true
	return &s
}

func (r *Runtime) enter(op string, s sim.State) (*State, error) {
	r.Calls = append(r.Calls, op)
	if r.FailOn == op {
		return nil, ErrInjected
	}
	if s == nil {
		return nil, nil
	}
	st, ok := s.(*State)
	if !ok {
		return nil, fmt.Errorf("simtest: %s: foreign state %T", op, s)
	}
	if !r.live[st.ID] {
		return nil, fmt.Errorf("simtest: %s: use of freed state %d", op, st.ID)
	}
	return st, nil
}

func (r *Runtime) Init(height, width int) (sim.State, error) {
	if _, err := r.enter("init", nil); err != nil {
		return nil, err
	}
	return r.alloc(State{Height: height, Width: width}), nil
}

func (r *Runtime) Resize(height, width int, s sim.State) (sim.State, error) {
	st, err := r.enter("resize", s)
	if err != nil {
		return nil, err
	}
	next := r.alloc(*st)
	next.Height, next.Width = height, width
	return next, nil
}

func (r *Runtime) Step(dt float32, s sim.State) (sim.State, error) {
	st, err := r.enter("step", s)
	if err != nil {
		return nil, err
	}
	next := r.alloc(*st)
	next.Steps++
	next.LastDT = dt
	return next, nil
}

func (r *Runtime) Key(up bool, key core.Key, s sim.State) (sim.State, error) {
	st, err := r.enter("key", s)
	if err != nil {
		return nil, err
	}
	ev := core.KeyDownEvent(key)
	if up {
		ev = core.KeyUpEvent(key)
	}
	r.Inputs = append(r.Inputs, ev)
	return r.alloc(*st), nil
}

func (r *Runtime) Mouse(buttons core.ButtonMask, x, y int, s sim.State) (sim.State, error) {
	st, err := r.enter("mouse", s)
	if err != nil {
		return nil, err
	}
	r.Inputs = append(r.Inputs, core.Event{Kind: core.EventPointerMove, Buttons: buttons, X: x, Y: y})
	return r.alloc(*st), nil
}

func (r *Runtime) Wheel(dx, dy int, s sim.State) (sim.State, error) {
	st, err := r.enter("wheel", s)
	if err != nil {
		return nil, err
	}
	r.Inputs = append(r.Inputs, core.Event{Kind: core.EventWheel, DX: dx, DY: dy})
	return r.alloc(*st), nil
}

func (r *Runtime) Render(s sim.State) (core.Frame, error) {
	st, err := r.enter("render", s)
	if err != nil {
		return core.Frame{}, err
	}
	f, err := core.NewFrame(st.Width, st.Height)
	if err != nil {
		return core.Frame{}, err
	}
	for i := range f.Pix {
		if r.Fill != 0 {
			f.Pix[i] = r.Fill
		} else {
			f.Pix[i] = uint32(i) & 0xFFFFFF
		}
	}
	return f, nil
}

func (r *Runtime) Free(s sim.State) error {
	st, ok := s.(*State)
	if !ok {
		return fmt.Errorf("simtest: free: foreign state %T", s)
	}
	if !r.live[st.ID] {
		return fmt.Errorf("simtest: double free of state %d", st.ID)
	}
	delete(r.live, st.ID)
	r.freed++
	return nil
}
