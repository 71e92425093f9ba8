package core

import "fmt"

// Frame is a dense row-major pixel buffer of packed colors.
type Frame struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewFrame allocates a zeroed frame. Both dimensions must be positive.
func NewFrame(width, height int) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("core: invalid frame size %dx%d", width, height)
	}
	return Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}, nil
}

// Len returns the number of pixels the frame holds.
func (f Frame) Len() int {
	return f.Width * f.Height
}

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (f Frame) At(x, y int) uint32 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return ColorBlack
	}
	return f.Pix[y*f.Width+x]
}

// Set writes a pixel. Out-of-bounds writes are ignored.
func (f Frame) Set(x, y int, c uint32) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	f.Pix[y*f.Width+x] = c
}

// Fill paints every pixel with c.
func (f Frame) Fill(c uint32) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}
