// Package snake implements Snake on a walled board of square tiles. The
// snake moves on a timer; arrows or WASD steer it.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// ID is the registry identifier.
const ID = "snake"

const (
	// TileSize is the edge of one board tile in pixels.
	TileSize = 4

	// minBoard is the smallest playable board, walls included.
	minBoard = 8

	defaultInterval = 0.12 // Seconds per move
	minInterval     = 0.03
	maxInterval     = 0.5

	maxCatchUp = 4
)

const (
	colorFloor    uint32 = 0x101418
	colorWall     uint32 = 0x505A64
	colorBody     uint32 = 0x2EA043
	colorHead     uint32 = 0x7EE787
	colorFood     uint32 = 0xF85149
	colorTooSmall uint32 = 0x3A0A0A
)

func init() {
	registry.Register(ID, func() sim.Runtime { return New(1) })
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// opposite checks if two directions are opposite.
func opposite(d1, d2 Direction) bool {
	return (d1+2)%4 == d2
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// State is one board position. Transitions return fresh copies.
type State struct {
	Width, Height int // Pixels
	Cols, Rows    int // Tiles, border walls included

	Snake     []Point // Head at index 0
	Direction Direction
	NextDir   Direction // Buffered direction for the next move
	Food      Point

	Score    int
	Interval float64 // Seconds per move
	GameOver bool
	Paused   bool
	TooSmall bool

	acc float64
}

func (s *State) clone() *State {
	c := *s
	c.Snake = append([]Point(nil), s.Snake...)
	return &c
}

// wall reports whether p is on the border or outside the board.
func (s *State) wall(p Point) bool {
	return p.X <= 0 || p.Y <= 0 || p.X >= s.Cols-1 || p.Y >= s.Rows-1
}

// occupied checks if the snake covers p.
func (s *State) occupied(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Runtime implements sim.Runtime for Snake.
type Runtime struct {
	rng *rand.Rand
}

// New creates a runtime whose food placement derives from seed.
func New(seed int64) *Runtime {
	return &Runtime{rng: rand.New(rand.NewSource(seed))}
}

// Describe returns the registry metadata.
func (*Runtime) Describe() sim.Info {
	return sim.Info{ID: ID, Title: "Snake"}
}

func cast(s sim.State) (*State, error) {
	st, ok := s.(*State)
	if !ok || st == nil {
		return nil, fmt.Errorf("snake: unexpected state %T", s)
	}
	return st, nil
}

// newGame lays out a fresh board for the given pixel geometry.
func (r *Runtime) newGame(height, width int, interval float64) *State {
	st := &State{
		Width:    width,
		Height:   height,
		Cols:     width / TileSize,
		Rows:     height / TileSize,
		Interval: interval,
	}
	if st.Cols < minBoard || st.Rows < minBoard {
		st.TooSmall = true
		return st
	}

	// Three segments heading right from the left quarter of the board
	x, y := max(1, st.Cols/4), st.Rows/2
	st.Snake = []Point{{X: x + 2, Y: y}, {X: x + 1, Y: y}, {X: x, Y: y}}
	st.Direction = DirRight
	st.NextDir = DirRight
	r.spawnFood(st)
	return st
}

// spawnFood places food at a random empty tile.
func (r *Runtime) spawnFood(st *State) {
	var empty []Point
	for y := 1; y < st.Rows-1; y++ {
		for x := 1; x < st.Cols-1; x++ {
			p := Point{X: x, Y: y}
			if !st.occupied(p) {
				empty = append(empty, p)
			}
		}
	}

	if len(empty) == 0 {
		st.Food = Point{X: -1, Y: -1}
		return
	}
	st.Food = empty[r.rng.Intn(len(empty))]
}

func (r *Runtime) Init(height, width int) (sim.State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snake: invalid size %dx%d", width, height)
	}
	return r.newGame(height, width, defaultInterval), nil
}

// Resize restarts on a board fitted to the new geometry.
func (r *Runtime) Resize(height, width int, s sim.State) (sim.State, error) {
	old, err := cast(s)
	if err != nil {
		return nil, err
	}
	return r.newGame(height, width, old.Interval), nil
}

// move advances the snake one tile in the buffered direction.
func (r *Runtime) move(st *State) {
	st.Direction = st.NextDir

	head := st.Snake[0]
	switch st.Direction {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if st.wall(head) {
		st.GameOver = true
		return
	}

	// The tail tile is vacated by this move, so it is not checked
	for i := range len(st.Snake) - 1 {
		if st.Snake[i] == head {
			st.GameOver = true
			return
		}
	}

	st.Snake = append([]Point{head}, st.Snake...)
	if head == st.Food {
		// Eating keeps the tail, growing the snake by one
		st.Score++
		r.spawnFood(st)
		return
	}
	st.Snake = st.Snake[:len(st.Snake)-1]
}

func (r *Runtime) Step(dt float32, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	if st.GameOver || st.Paused || st.TooSmall {
		return st, nil
	}
	st.acc += float64(dt)
	for i := 0; st.acc >= st.Interval; i++ {
		if i == maxCatchUp {
			st.acc = 0
			break
		}
		st.acc -= st.Interval
		r.move(st)
		if st.GameOver {
			break
		}
	}
	return st, nil
}

var steering = map[core.Key]Direction{
	core.KeyUp:       DirUp,
	core.KeyDown:     DirDown,
	core.KeyLeft:     DirLeft,
	core.KeyRight:    DirRight,
	core.Letter('w'): DirUp,
	core.Letter('s'): DirDown,
	core.Letter('a'): DirLeft,
	core.Letter('d'): DirRight,
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

	if dir, ok := steering[key]; ok {
		// Prevent instant reversal
		if !opposite(dir, st.Direction) {
			st.NextDir = dir
		}
		return st, nil
	}

	switch key {
	case core.KeySpace, core.Letter('p'):
		st.Paused = !st.Paused
	case core.Letter('r'):
		return r.newGame(st.Height, st.Width, st.Interval), nil
	}
	return st, nil
}

func (*Runtime) Mouse(_ core.ButtonMask, _, _ int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	return st.clone(), nil
}

// Wheel changes the speed; scrolling up moves faster.
func (*Runtime) Wheel(_, dy int, s sim.State) (sim.State, error) {
	st, err := cast(s)
	if err != nil {
		return nil, err
	}
	st = st.clone()
	st.Interval = core.ClampF(st.Interval*(1-0.1*float64(dy)), minInterval, maxInterval)
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
	if st.TooSmall {
		f.Fill(colorTooSmall)
		return f, nil
	}

	f.Fill(colorFloor)
	for y := range st.Rows {
		for x := range st.Cols {
			if st.wall(Point{X: x, Y: y}) {
				tile(f, Point{X: x, Y: y}, colorWall)
			}
		}
	}
	if st.Food.X >= 0 {
		tile(f, st.Food, colorFood)
	}
	for i := len(st.Snake) - 1; i >= 0; i-- {
		c := colorBody
		if i == 0 {
			c = colorHead
		}
		if st.GameOver {
			c = core.Lerp(c, colorFood, 0.6)
		}
		tile(f, st.Snake[i], c)
	}
	return f, nil
}

// tile fills the pixels of board tile p.
func tile(f core.Frame, p Point, c uint32) {
	for dy := range TileSize {
		for dx := range TileSize {
			f.Set(p.X*TileSize+dx, p.Y*TileSize+dy, c)
		}
	}
}

// Free releases nothing; states are garbage collected.
func (*Runtime) Free(s sim.State) error {
	_, err := cast(s)
	return err
}
