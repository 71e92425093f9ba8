// Package terminal renders frames to a truecolor terminal using half-block
// characters and translates raw VT100 input bytes into key events.
package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// Backend is an engine.Backend writing to a character-cell terminal.
// Each cell shows two vertically stacked pixels, so the pixel height is
// twice the row count.
type Backend struct {
	out   *bufio.Writer
	dec   *Decoder
	cols  int
	rows  int
	cells *Cells
}

// New creates a backend for a terminal of cols x rows cells.
func New(out io.Writer, in io.ByteReader, cols, rows int) *Backend {
	return &Backend{
		out:  bufio.NewWriterSize(out, 64*1024),
		dec:  NewDecoder(in),
		cols: cols,
		rows: rows,
	}
}

// Size reports the pixel geometry of the terminal.
func (b *Backend) Size() (int, int) {
	return b.cols, b.rows * 2
}

// Open hides the cursor and clears the screen.
func (b *Backend) Open() error {
	b.out.WriteString(seqOpen)
	return b.out.Flush()
}

// Resize reallocates the cell buffers for a pixel geometry.
func (b *Backend) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("terminal: invalid geometry %dx%d", width, height)
	}
	b.cols = width
	b.rows = core.CeilDiv(height, 2)
	b.cells = NewCells(b.cols, b.rows)
	return nil
}

// Draw folds the frame into cells, applies overlays and writes the
// result, emitting color escapes only where the color pair changes.
func (b *Backend) Draw(frame core.Frame, info engine.FrameInfo) error {
	if b.cells == nil {
		return fmt.Errorf("terminal: draw before resize")
	}
	b.cells.Fold(frame)
	for _, o := range info.Overlays {
		b.cells.Text(o)
	}
	b.display()
	b.out.WriteString(seqFrameEnd)
	return b.out.Flush()
}

// display walks the cells row-major. Tracking starts fresh every frame
// because the cursor is homed and the style reset between frames.
func (b *Backend) display() {
	c := b.cells
	var lastFg, lastBg uint32
	valid := false
	for i := range c.Glyph {
		fg, bg := c.Fg[i], c.Bg[i]
		if !valid || fg != lastFg || bg != lastBg {
			writeRGB(b.out, csiFgRGB, fg)
			writeRGB(b.out, csiBgRGB, bg)
			lastFg, lastBg = fg, bg
			valid = true
		}
		g := c.Glyph[i]
		switch {
		case g == glyphFolded:
			b.out.WriteRune(HalfBlock)
		case g < 0x80:
			b.out.WriteByte(byte(g))
		default:
			b.out.WriteRune(g)
		}
	}
}

// Poll decodes at most one key from the input.
func (b *Backend) Poll(in engine.Input) error {
	return b.dec.Poll(in)
}

// Close resets colors, shows the cursor and drops the cell buffers.
func (b *Backend) Close() error {
	b.cells = nil
	b.out.WriteString(seqClose)
	return b.out.Flush()
}
