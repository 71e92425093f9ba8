// Package pixel presents frames on a graphical surface and translates the
// surface's structured input events into logical events.
package pixel

import (
	"image/color"

	"github.com/vovakirdan/lys/internal/core"
)

// Surface is a window that can show an RGBA image with text on top.
type Surface interface {
	// Size reports the drawable area in pixels.
	Size() (width, height int)

	// Resize re-derives the surface view after a geometry change.
	Resize(width, height int) error

	// Blit copies a full-surface image. len(pix) is width*height.
	Blit(pix []color.RGBA) error

	// Text draws a label at (x, y) over the blitted image.
	Text(x, y int, text string, c color.RGBA)

	// Present shows the composed image.
	Present() error

	// Events appends pending native events to buf and returns it.
	Events(buf []NativeEvent) []NativeEvent

	// Close destroys the surface.
	Close() error
}

// NativeKind tags a NativeEvent.
type NativeKind uint8

const (
	NativeResize NativeKind = iota
	NativeQuit
	NativeKeyDown
	NativeKeyUp
	NativeMotion
	NativeButtonDown
	NativeButtonUp
	NativeWheel
)

// NativeEvent is an input event as reported by the surface.
type NativeEvent struct {
	Kind NativeKind

	// Code is the native key code for key events.
	Code int32

	// Button is the 1-based button for button events.
	Button int

	// Buttons is the held button mask for motion events.
	Buttons core.ButtonMask

	X, Y          int
	DX, DY        int
	Width, Height int
}
