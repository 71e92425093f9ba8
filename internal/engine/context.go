// Package engine drives a simulation through the interactive render loop:
// it owns the state handle and frame buffer, paces frames, and hands each
// frame to a presentation backend.
package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/sim"
)

// DefaultMaxFPS is the frame rate cap used when Config leaves it unset.
const DefaultMaxFPS = 60

var (
	// ErrInvalidGeometry is returned for non-positive dimensions.
	ErrInvalidGeometry = errors.New("engine: invalid geometry")

	// ErrNotIdle is returned when Run is called on a context that already ran.
	ErrNotIdle = errors.New("engine: context is not idle")
)

// Phase is the loop controller state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config tunes a Context.
type Config struct {
	// MaxFPS caps the frame rate. Negative disables the frame budget;
	// zero selects DefaultMaxFPS.
	MaxFPS int

	// Clock defaults to SystemClock.
	Clock Clock

	// Logger defaults to a discarding logger.
	Logger *log.Logger
}

// Context is the aggregate root of one run.
type Context struct {
	rt      sim.Runtime
	backend Backend
	handler Handler
	clock   Clock
	logger  *log.Logger
	maxFPS  int

	handle *sim.Handle
	frame  core.Frame
	width  int
	height int

	phase     Phase
	running   bool
	start     time.Time
	last      time.Time
	fps       FPSMeter
	latency   time.Duration
	iteration uint64
	overlays  []Overlay
}

// New creates an idle context. A nil handler is replaced by NopHandler.
func New(rt sim.Runtime, backend Backend, handler Handler, cfg Config) *Context {
	if handler == nil {
		handler = NopHandler{}
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	switch {
	case cfg.MaxFPS == 0:
		cfg.MaxFPS = DefaultMaxFPS
	case cfg.MaxFPS < 0:
		cfg.MaxFPS = 0
	}
	return &Context{
		rt:      rt,
		backend: backend,
		handler: handler,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
		maxFPS:  cfg.MaxFPS,
	}
}

// Width returns the current width in pixels.
func (c *Context) Width() int { return c.width }

// Height returns the current height in pixels.
func (c *Context) Height() int { return c.height }

// Phase returns the loop controller state.
func (c *Context) Phase() Phase { return c.phase }

// FPS returns the smoothed frame rate.
func (c *Context) FPS() float64 { return c.fps.Value() }

// MaxFPS returns the frame rate cap, zero when uncapped.
func (c *Context) MaxFPS() int { return c.maxFPS }

// RenderLatency returns the wall time of the last render call.
func (c *Context) RenderLatency() time.Duration { return c.latency }

// Iteration returns the number of completed loop passes.
func (c *Context) Iteration() uint64 { return c.iteration }

// Elapsed returns the time since the loop started.
func (c *Context) Elapsed() time.Duration {
	if c.start.IsZero() {
		return 0
	}
	return c.last.Sub(c.start)
}

// Frame returns the last rendered frame. The buffer is owned by the
// context and is replaced on geometry changes.
func (c *Context) Frame() core.Frame { return c.frame }

// Logger returns the context logger.
func (c *Context) Logger() *log.Logger { return c.logger }

// Stop requests the loop to end once the current iteration completes.
func (c *Context) Stop() {
	c.running = false
}

// DrawText queues overlay text for the next frame.
func (c *Context) DrawText(x, y int, text string, color uint32) {
	c.overlays = append(c.overlays, Overlay{X: x, Y: y, Text: text, Color: color})
}

// Dispatch applies a logical input event to the simulation state.
func (c *Context) Dispatch(ev core.Event) error {
	if c.handle == nil {
		return fmt.Errorf("engine: dispatch %s: %w", ev.Kind, sim.ErrReleased)
	}
	switch ev.Kind {
	case core.EventKeyDown:
		if err := c.handle.Key(false, ev.Key); err != nil {
			return err
		}
		if ev.Key == core.KeyF1 {
			c.handler.Custom(c)
		}
		return nil
	case core.EventKeyUp:
		return c.handle.Key(true, ev.Key)
	case core.EventPointerMove, core.EventPointerButton:
		return c.handle.Mouse(ev.Buttons, ev.X, ev.Y)
	case core.EventWheel:
		return c.handle.Wheel(ev.DX, ev.DY)
	default:
		return fmt.Errorf("engine: unknown event kind %d", ev.Kind)
	}
}

// Resize applies a new geometry reported by the backend.
func (c *Context) Resize(width, height int) error {
	return c.updateGeometry(width, height)
}
