// Package life implements Conway's Game of Life on a wrapping grid with
// one cell per pixel.
package life

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// ID is the registry identifier.
const ID = "life"

const (
	colorAlive uint32 = 0x33FF66
	colorDead  uint32 = 0x101418

	defaultRate = 10.0
	maxRate     = 120.0
	minRate     = 1.0

	// maxCatchUp bounds how many generations one step may run after a stall.
	maxCatchUp = 8

	fillRatio = 0.25
)

func init() {
	registry.Register(ID, func() sim.Runtime { return New(1) })
}

// State is one generation of the grid.
type State struct {
	Width, Height int
	Cells         []bool
	Generation    int
	Rate          float64 // Generations per second
	Paused        bool

	acc float64
}

func (s *State) clone() *State {
	c := *s
	c.Cells = make([]bool, len(s.Cells))
	copy(c.Cells, s.Cells)
	return &c
}

// Alive reports whether the cell at (x, y) is alive, wrapping around edges.
func (s *State) Alive(x, y int) bool {
	x = ((x % s.Width) + s.Width) % s.Width
	y = ((y % s.Height) + s.Height) % s.Height
	return s.Cells[y*s.Width+x]
}

func (s *State) set(x, y int, alive bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	s.Cells[y*s.Width+x] = alive
}

// Population counts living cells.
func (s *State) Population() int {
	n := 0
	for _, c := range s.Cells {
		if c {
			n++
		}
	}
	return n
}

// Runtime implements sim.Runtime for the Game of Life.
type Runtime struct {
	rng *rand.Rand
}

// New creates a runtime whose random fills derive from seed.
func New(seed int64) *Runtime {
	return &Runtime{rng: rand.New(rand.NewSource(seed))}
}

// Describe returns the registry metadata.
func (*Runtime) Describe() sim.Info {
	return sim.Info{ID: ID, Title: "Game of Life"}
}

func cast(s sim.State) (*State, error) {
	st, ok := s.(*State)
	if !ok || st == nil {
		return nil, fmt.Errorf("life: unexpected state %T", s)
	}
	return st, nil
}

func (r *Runtime) randomize(st *State) {
	for i := range st.Cells {
		st.Cells[i] = r.rng.Float64() < fillRatio
	}
}

func (r *Runtime) Init(height, width int) (sim.State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("life: invalid grid %dx%d", width, height)
	}
	st := &State{
		Width:  width,
		Height: height,
		Cells:  make([]bool, width*height),
		Rate:   defaultRate,
	}
	r.randomize(st)
	return st, nil
}

// Resize keeps the overlapping part of the grid.
func (*Runtime) Resize(height, width int, s sim.State) (sim.State, error) {
	old, err := cast(s)
	if err != nil {
		return nil, err
	}
	st := *old
	st.Width, st.Height = width, height
	st.Cells = make([]bool, width*height)
	for y := 0; y < min(height, old.Height); y++ {
		for x := 0; x < min(width, old.Width); x++ {
			st.Cells[y*width+x] = old.Cells[y*old.Width+x]
		}
	}
	return &st, nil
}

// next computes the following generation.
func next(s *State) *State {
	n := s.clone()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && s.Alive(x+dx, y+dy) {
						neighbors++
					}
				}
			}
			alive := s.Cells[y*s.Width+x]
			n.Cells[y*s.Width+x] = neighbors == 3 || (alive && neighbors == 2)
		}
	}
	n.Generation++
	return n
}

func (*Runtime) Step(dt float32, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	if st.Paused {
		return st, nil
	}
	st.acc += float64(dt)
	period := 1 / st.Rate
	for i := 0; st.acc >= period; i++ {
		if i == maxCatchUp {
			st.acc = 0
			break
		}
		acc := st.acc - period
		st = next(st)
		st.acc = acc
	}
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
	case core.KeySpace, core.Letter('p'):
		st.Paused = !st.Paused
	case core.Letter('n'):
		if st.Paused {
			st = next(st)
		}
	case core.Letter('r'):
		r.randomize(st)
		st.Generation = 0
	case core.Letter('c'):
		clear(st.Cells)
		st.Generation = 0
	case core.KeyUp:
		st.Rate = core.ClampF(st.Rate*2, minRate, maxRate)
	case core.KeyDown:
		st.Rate = core.ClampF(st.Rate/2, minRate, maxRate)
	}
	return st, nil
}

// Mouse paints live cells with the left button and erases with the right.
func (*Runtime) Mouse(buttons core.ButtonMask, x, y int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	switch {
	case buttons.Has(core.ButtonLeft):
		st.set(x, y, true)
	case buttons.Has(core.ButtonRight):
		st.set(x, y, false)
	}
	return st, nil
}

func (*Runtime) Wheel(_, dy int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	st.Rate = core.ClampF(st.Rate+float64(dy), minRate, maxRate)
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
	for i, alive := range st.Cells {
		if alive {
			f.Pix[i] = colorAlive
		} else {
			f.Pix[i] = colorDead
		}
	}
	return f, nil
}

// Free releases nothing; states are garbage collected.
func (*Runtime) Free(s sim.State) error {
	_, err := cast(s)
	return err
}
