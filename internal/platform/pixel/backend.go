package pixel

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// Label placement of the render latency readout.
const (
	LabelX = 10
	LabelY = 10
)

// Backend is an engine.Backend presenting frames on a Surface.
type Backend struct {
	surface    Surface
	labelColor color.RGBA
	pix        []color.RGBA
	events     []NativeEvent
}

// New creates a backend on s. The latency label is drawn in black.
func New(s Surface) *Backend {
	return &Backend{
		surface:    s,
		labelColor: color.RGBA{A: 0xFF},
	}
}

// SetLabelColor changes the color of the latency label.
func (b *Backend) SetLabelColor(c uint32) {
	b.labelColor = RGBA(c)
}

// Size reports the surface size.
func (b *Backend) Size() (int, int) {
	return b.surface.Size()
}

// Resize reallocates the conversion buffer and the surface view.
func (b *Backend) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pixel: invalid geometry %dx%d", width, height)
	}
	b.pix = make([]color.RGBA, width*height)
	return b.surface.Resize(width, height)
}

// Draw blits the frame, labels it with the render latency, draws the
// overlays and presents.
func (b *Backend) Draw(frame core.Frame, info engine.FrameInfo) error {
	if len(frame.Pix) != len(b.pix) {
		return fmt.Errorf("pixel: frame has %d pixels, surface holds %d", len(frame.Pix), len(b.pix))
	}
	for i, p := range frame.Pix {
		b.pix[i] = RGBA(p)
	}
	if err := b.surface.Blit(b.pix); err != nil {
		return fmt.Errorf("pixel: blit: %w", err)
	}
	ms := float64(info.RenderLatency.Microseconds()) / 1000
	b.surface.Text(LabelX, LabelY, fmt.Sprintf("render: %.2f ms", ms), b.labelColor)
	for _, o := range info.Overlays {
		b.surface.Text(o.X, o.Y, o.Text, RGBA(o.Color))
	}
	if err := b.surface.Present(); err != nil {
		return fmt.Errorf("pixel: present: %w", err)
	}
	return nil
}

// Poll drains every pending native event. Quit and Escape stop the loop.
func (b *Backend) Poll(in engine.Input) error {
	b.events = b.surface.Events(b.events[:0])
	for _, ev := range b.events {
		if err := b.translate(ev, in); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) translate(ev NativeEvent, in engine.Input) error {
	switch ev.Kind {
	case NativeResize:
		return in.Resize(ev.Width, ev.Height)
	case NativeQuit:
		in.Stop()
	case NativeKeyDown, NativeKeyUp:
		if ev.Code == NativeKeyEscape {
			in.Stop()
			return nil
		}
		key, ok := TranslateKey(ev.Code)
		if !ok {
			return nil
		}
		if ev.Kind == NativeKeyDown {
			return in.Dispatch(core.KeyDownEvent(key))
		}
		return in.Dispatch(core.KeyUpEvent(key))
	case NativeMotion:
		return in.Dispatch(core.Event{Kind: core.EventPointerMove, Buttons: ev.Buttons, X: ev.X, Y: ev.Y})
	case NativeButtonDown, NativeButtonUp:
		return in.Dispatch(core.Event{Kind: core.EventPointerButton, Buttons: core.ButtonBit(ev.Button), X: ev.X, Y: ev.Y})
	case NativeWheel:
		return in.Dispatch(core.Event{Kind: core.EventWheel, DX: ev.DX, DY: ev.DY})
	}
	return nil
}

// Close destroys the surface.
func (b *Backend) Close() error {
	b.pix = nil
	return b.surface.Close()
}

// RGBA converts a packed 0x00RRGGBB color to an opaque color.RGBA.
func RGBA(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
}
