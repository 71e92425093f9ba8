// Package headless provides a backend that presents nothing. It runs the
// loop without a window or terminal and records per-frame timings.
package headless

import (
	"fmt"
	"time"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// Sample is the timing recorded for one drawn frame.
type Sample struct {
	Iteration uint64
	Render    time.Duration
	FPS       float64
}

// Backend is a fixed-size engine.Backend.
type Backend struct {
	width, height int
	samples       []Sample
	checksum      uint32
	closed        bool
}

// New creates a backend reporting the given pixel geometry.
func New(width, height int) *Backend {
	return &Backend{width: width, height: height}
}

func (b *Backend) Size() (int, int) { return b.width, b.height }

func (b *Backend) Resize(width, height int) error {
	b.width, b.height = width, height
	return nil
}

// Draw validates the frame shape and records timings. Pixels are folded
// into a checksum so that frames can be compared across runs.
func (b *Backend) Draw(frame core.Frame, info engine.FrameInfo) error {
	if frame.Width != b.width || frame.Height != b.height {
		return fmt.Errorf("headless: frame %dx%d, expected %dx%d", frame.Width, frame.Height, b.width, b.height)
	}
	var sum uint32
	for _, p := range frame.Pix {
		sum = sum*31 + p&0xFFFFFF
	}
	b.checksum = sum
	b.samples = append(b.samples, Sample{
		Iteration: info.Iteration,
		Render:    info.RenderLatency,
		FPS:       info.FPS,
	})
	return nil
}

// Poll produces no input.
func (b *Backend) Poll(engine.Input) error { return nil }

func (b *Backend) Close() error {
	b.closed = true
	return nil
}

// Samples returns the timings of every drawn frame in order.
func (b *Backend) Samples() []Sample { return b.samples }

// Checksum returns a hash of the last drawn frame.
func (b *Backend) Checksum() uint32 { return b.checksum }

// Closed reports whether Close was called.
func (b *Backend) Closed() bool { return b.closed }

// Milliseconds returns the render latencies as float milliseconds.
func Milliseconds(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Render.Microseconds()) / 1000
	}
	return out
}
