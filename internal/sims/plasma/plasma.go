// Package plasma implements an animated plasma field.
package plasma

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// ID is the registry identifier.
const ID = "plasma"

const (
	minScale = 2.0
	maxScale = 128.0
)

func init() {
	registry.Register(ID, func() sim.Runtime { return New() })
}

// State is the plasma state. Values are never modified after being
// handed out; every transition returns a fresh copy.
type State struct {
	Width, Height int
	Time          float64
	Speed         float64
	Scale         float64
	Paused        bool
	CX, CY        int // Center of the radial wave
}

// Runtime implements sim.Runtime for the plasma field.
type Runtime struct{}

// New creates a plasma runtime.
func New() *Runtime {
	return &Runtime{}
}

// Describe returns the registry metadata.
func (*Runtime) Describe() sim.Info {
	return sim.Info{ID: ID, Title: "Plasma"}
}

func cast(s sim.State) (State, error) {
	st, ok := s.(*State)
	if !ok || st == nil {
		return State{}, fmt.Errorf("plasma: unexpected state %T", s)
	}
	return *st, nil
}

func (*Runtime) Init(height, width int) (sim.State, error) {
	return &State{
		Width:  width,
		Height: height,
		Speed:  1,
		Scale:  16,
		CX:     width / 2,
		CY:     height / 2,
	}, nil
}

func (*Runtime) Resize(height, width int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	if st.Width > 0 && st.Height > 0 {
		st.CX = st.CX * width / st.Width
		st.CY = st.CY * height / st.Height
	}
	st.Width, st.Height = width, height
	return &st, nil
}

func (*Runtime) Step(dt float32, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	if !st.Paused {
		st.Time += float64(dt) * st.Speed
	}
	return &st, nil
}

func (*Runtime) Key(up bool, key core.Key, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	if up {
		return &st, nil
	}
	switch key {
	case core.KeySpace, core.Letter('p'):
		st.Paused = !st.Paused
	case core.KeyUp:
		st.Speed *= 1.25
	case core.KeyDown:
		st.Speed /= 1.25
	case core.Letter('r'):
		st.Time = 0
		st.Speed = 1
	}
	return &st, nil
}

func (*Runtime) Mouse(buttons core.ButtonMask, x, y int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	if buttons.Has(core.ButtonLeft) {
		st.CX = core.Clamp(x, 0, st.Width-1)
		st.CY = core.Clamp(y, 0, st.Height-1)
	}
	return &st, nil
}

func (*Runtime) Wheel(_, dy int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st.Scale = core.ClampF(st.Scale*math.Pow(1.1, float64(dy)), minScale, maxScale)
	return &st, nil
}

func (*Runtime) Render(s sim.State) (core.Frame, error) {
	st, err := cast(s)
	if err != nil {
		return core.Frame{}, err
	}
	f, err := core.NewFrame(st.Width, st.Height)
	if err != nil {
		return core.Frame{}, err
	}
	t := st.Time
	for y := 0; y < st.Height; y++ {
		fy := float64(y)
		for x := 0; x < st.Width; x++ {
			fx := float64(x)
			dx, dy := fx-float64(st.CX), fy-float64(st.CY)
			v := math.Sin(fx/st.Scale+t) +
				math.Sin(fy/(st.Scale/2)+t*0.7) +
				math.Sin((fx+fy)/st.Scale+t*1.3) +
				math.Sin(math.Sqrt(dx*dx+dy*dy)/(st.Scale/2)-t)
			f.Pix[y*st.Width+x] = palette(v / 4)
		}
	}
	return f, nil
}

// palette maps v in [-1, 1] to a smooth cyclic color.
func palette(v float64) uint32 {
	channel := func(phase float64) uint8 {
		return uint8(127.5 + 127.5*math.Sin(math.Pi*v+phase))
	}
	return core.RGB(channel(0), channel(2*math.Pi/3), channel(4*math.Pi/3))
}

// Free releases nothing; states are garbage collected.
func (*Runtime) Free(s sim.State) error {
	if _, ok := s.(*State); !ok {
		return fmt.Errorf("plasma: unexpected state %T", s)
	}
	return nil
}
