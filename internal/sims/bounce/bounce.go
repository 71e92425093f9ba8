// Package bounce implements balls bouncing in a box under gravity.
package bounce

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// ID is the registry identifier.
const ID = "bounce"

const (
	defaultGravity = 200.0
	maxBalls       = 64
	initialBalls   = 3
	pullStrength   = 600.0
)

var ballColors = []uint32{0xE74C3C, 0xF1C40F, 0x2ECC71, 0x3498DB, 0x9B59B6, 0xE67E22}

func init() {
	registry.Register(ID, func() sim.Runtime { return New(1) })
}

// Ball is a disc with a position and velocity in pixels.
type Ball struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Color  uint32
}

// State holds the balls and the box they bounce in.
type State struct {
	Width, Height int
	Balls         []Ball
	Gravity       float64
	Pulling       bool
	PX, PY        float64 // Pointer position while pulling
}

func (s *State) clone() *State {
	c := *s
	c.Balls = append([]Ball(nil), s.Balls...)
	return &c
}

// Runtime implements sim.Runtime for bouncing balls.
type Runtime struct {
	rng *rand.Rand
}

// New creates a runtime whose spawned balls derive from seed.
func New(seed int64) *Runtime {
	return &Runtime{rng: rand.New(rand.NewSource(seed))}
}

// Describe returns the registry metadata.
func (*Runtime) Describe() sim.Info {
	return sim.Info{ID: ID, Title: "Bouncing Balls"}
}

func cast(s sim.State) (*State, error) {
	st, ok := s.(*State)
	if !ok || st == nil {
		return nil, fmt.Errorf("bounce: unexpected state %T", s)
	}
	return st, nil
}

func (r *Runtime) spawn(st *State, x, y float64) {
	if len(st.Balls) >= maxBalls {
		return
	}
	short := float64(min(st.Width, st.Height))
	radius := math.Max(1, short/12*(0.5+r.rng.Float64()))
	st.Balls = append(st.Balls, Ball{
		X:     x,
		Y:     y,
		VX:    (r.rng.Float64()*2 - 1) * short,
		VY:    (r.rng.Float64()*2 - 1) * short,
		R:     radius,
		Color: ballColors[len(st.Balls)%len(ballColors)],
	})
	st.contain()
}

// contain keeps every ball inside the box.
func (s *State) contain() {
	for i := range s.Balls {
		b := &s.Balls[i]
		b.R = math.Min(b.R, math.Max(1, float64(min(s.Width, s.Height))/2))
		b.X = core.ClampF(b.X, b.R, float64(s.Width)-b.R)
		b.Y = core.ClampF(b.Y, b.R, float64(s.Height)-b.R)
	}
}

func (r *Runtime) Init(height, width int) (sim.State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bounce: invalid box %dx%d", width, height)
	}
	st := &State{Width: width, Height: height, Gravity: defaultGravity}
	for i := 0; i < initialBalls; i++ {
		r.spawn(st, r.rng.Float64()*float64(width), r.rng.Float64()*float64(height))
	}
	return st, nil
}

func (*Runtime) Resize(height, width int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	st.Width, st.Height = width, height
	st.contain()
	return st, nil
}

func (*Runtime) Step(dt float32, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	d := float64(dt)
	w, h := float64(st.Width), float64(st.Height)
	for i := range st.Balls {
		b := &st.Balls[i]
		b.VY += st.Gravity * d
		if st.Pulling {
			dx, dy := st.PX-b.X, st.PY-b.Y
			if dist := math.Hypot(dx, dy); dist > 1 {
				b.VX += dx / dist * pullStrength * d
				b.VY += dy / dist * pullStrength * d
			}
		}
		b.X += b.VX * d
		b.Y += b.VY * d
		if b.X < b.R {
			b.X, b.VX = b.R, math.Abs(b.VX)
		} else if b.X > w-b.R {
			b.X, b.VX = w-b.R, -math.Abs(b.VX)
		}
		if b.Y < b.R {
			b.Y, b.VY = b.R, math.Abs(b.VY)
		} else if b.Y > h-b.R {
			b.Y, b.VY = h-b.R, -math.Abs(b.VY)
		}
	}
	st.contain()
	return st, nil
}

func (r *Runtime) Key(up bool, key core.Key, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	if up {
		return st, nil
	}
	switch key {
	case core.KeySpace, core.Letter('a'):
		r.spawn(st, float64(st.Width)/2, float64(st.Height)/4)
	case core.Letter('c'):
		st.Balls = st.Balls[:0]
	case core.Letter('g'):
		if st.Gravity != 0 {
			st.Gravity = 0
		} else {
			st.Gravity = defaultGravity
		}
	case core.KeyUp:
		for i := range st.Balls {
			st.Balls[i].VY -= float64(st.Height)
		}
	}
	return st, nil
}

// Mouse pulls every ball toward the pointer while the left button is held.
func (*Runtime) Mouse(buttons core.ButtonMask, x, y int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	st.Pulling = buttons.Has(core.ButtonLeft)
	st.PX, st.PY = float64(x), float64(y)
	return st, nil
}

func (*Runtime) Wheel(_, dy int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	st.Gravity += float64(dy) * 50
	return st, nil
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
	top, bottom := core.RGB(0x10, 0x18, 0x30), core.RGB(0x02, 0x04, 0x08)
	for y := 0; y < st.Height; y++ {
		c := core.Lerp(top, bottom, float64(y)/float64(st.Height))
		row := f.Pix[y*st.Width : (y+1)*st.Width]
		for x := range row {
			row[x] = c
		}
	}
	for _, b := range st.Balls {
		x0, x1 := int(b.X-b.R), int(math.Ceil(b.X+b.R))
		y0, y1 := int(b.Y-b.R), int(math.Ceil(b.Y+b.R))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dx, dy := float64(x)+0.5-b.X, float64(y)+0.5-b.Y
				if dx*dx+dy*dy <= b.R*b.R {
					f.Set(x, y, b.Color)
				}
			}
		}
	}
	return f, nil
}

// Free releases nothing; states are garbage collected.
func (*Runtime) Free(s sim.State) error {
	_, err := cast(s)
	return err
}
