package terminal

import (
	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// HalfBlock is drawn for folded cells: the upper half shows the
// foreground color and the lower half the background color.
const HalfBlock = '▀'

// glyphFolded marks a cell showing two pixels rather than a character.
const glyphFolded rune = 0

// Cells holds one frame of terminal cells as parallel slices.
type Cells struct {
	Cols, Rows int
	Fg         []uint32
	Bg         []uint32
	Glyph      []rune
}

// NewCells allocates buffers for a cols x rows grid.
func NewCells(cols, rows int) *Cells {
	n := cols * rows
	return &Cells{
		Cols:  cols,
		Rows:  rows,
		Fg:    make([]uint32, n),
		Bg:    make([]uint32, n),
		Glyph: make([]rune, n),
	}
}

// Fold packs pixel rows 2r and 2r+1 into cell row r. A missing lower
// row on odd-height frames reads as black.
func (c *Cells) Fold(f core.Frame) {
	for r := 0; r < c.Rows; r++ {
		for x := 0; x < c.Cols; x++ {
			i := r*c.Cols + x
			c.Fg[i] = f.At(x, 2*r) & 0xFFFFFF
			c.Bg[i] = f.At(x, 2*r+1) & 0xFFFFFF
			c.Glyph[i] = glyphFolded
		}
	}
}

// Text writes literal characters starting at cell (x, y). Each written
// cell takes fg as foreground on a black background. A newline moves to
// the next row at the starting column; characters off the grid are
// dropped.
func (c *Cells) Text(o engine.Overlay) {
	x, y := o.X, o.Y
	for _, r := range o.Text {
		if r == '\n' {
			x = o.X
			y++
			continue
		}
		if x >= 0 && x < c.Cols && y >= 0 && y < c.Rows {
			i := y*c.Cols + x
			c.Glyph[i] = r
			c.Fg[i] = o.Color & 0xFFFFFF
			c.Bg[i] = core.ColorBlack
		}
		x++
	}
}

// Rune returns the character displayed by cell i.
func (c *Cells) Rune(i int) rune {
	if c.Glyph[i] == glyphFolded {
		return HalfBlock
	}
	return c.Glyph[i]
}
