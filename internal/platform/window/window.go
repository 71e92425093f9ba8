// Package window implements pixel.Surface on a raylib window.
package window

import (
	"errors"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/platform/pixel"
)

// DefaultFontSize is used when Options.FontSize is not positive.
const DefaultFontSize = 20

// ErrNotReady is returned when the window could not be created.
var ErrNotReady = errors.New("window: could not create window")

// Options configures a window.
type Options struct {
	Width    int
	Height   int
	Title    string
	Font     string
	FontSize int
	Logger   *log.Logger
}

var buttons = [...]struct {
	native rl.MouseButton
	button int
}{
	{rl.MouseButtonLeft, core.ButtonLeft},
	{rl.MouseButtonMiddle, core.ButtonMiddle},
	{rl.MouseButtonRight, core.ButtonRight},
}

// Window is a resizable raylib window streaming a texture.
type Window struct {
	logger   *log.Logger
	tex      rl.Texture2D
	hasTex   bool
	font     rl.Font
	hasFont  bool
	fontSize int

	held   []int32
	lastX  int
	lastY  int
	wheelX float32
	wheelY float32
}

// Open creates the window. Escape is not bound to closing so that the
// backend sees it as a key.
func Open(opts Options) (*Window, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return nil, ErrNotReady
	}
	rl.SetExitKey(0)
	rl.SetTargetFPS(0)

	w := &Window{logger: opts.Logger, fontSize: opts.FontSize}
	if opts.Font != "" {
		w.font = rl.LoadFontEx(opts.Font, int32(opts.FontSize), nil, 0)
		w.hasFont = w.font.Texture.ID != 0
		if w.hasFont {
			rl.SetTextureFilter(w.font.Texture, rl.FilterBilinear)
		} else {
			w.logger.Warn("font not loaded, using default", "path", opts.Font)
		}
	}
	pos := rl.GetMousePosition()
	w.lastX, w.lastY = int(pos.X), int(pos.Y)
	return w, nil
}

// Size reports the drawable area.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Resize replaces the streaming texture with one of the new size.
func (w *Window) Resize(width, height int) error {
	if w.hasTex {
		rl.UnloadTexture(w.tex)
		w.hasTex = false
	}
	img := rl.GenImageColor(width, height, rl.Black)
	w.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if w.tex.ID == 0 {
		return errors.New("window: could not allocate texture")
	}
	w.hasTex = true
	return nil
}

// Blit uploads pix and starts composing a frame with it.
func (w *Window) Blit(pix []color.RGBA) error {
	if !w.hasTex {
		return errors.New("window: blit before resize")
	}
	rl.UpdateTexture(w.tex, pix)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(w.tex, 0, 0, rl.White)
	return nil
}

// Text draws a label with the configured font.
func (w *Window) Text(x, y int, text string, c color.RGBA) {
	if w.hasFont {
		rl.DrawTextEx(w.font, text, rl.NewVector2(float32(x), float32(y)), float32(w.fontSize), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(w.fontSize), c)
}

// Present finishes the frame. raylib also polls input here.
func (w *Window) Present() error {
	rl.EndDrawing()
	return nil
}

// Events converts the input state gathered during the last Present.
func (w *Window) Events(buf []pixel.NativeEvent) []pixel.NativeEvent {
	if rl.WindowShouldClose() {
		buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeQuit})
	}
	if rl.IsWindowResized() {
		buf = append(buf, pixel.NativeEvent{
			Kind:   pixel.NativeResize,
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
		})
	}

	buf = w.keys(buf)

	pos := rl.GetMousePosition()
	x, y := int(pos.X), int(pos.Y)
	var held core.ButtonMask
	for _, b := range buttons {
		if rl.IsMouseButtonDown(b.native) {
			held |= core.ButtonBit(b.button)
		}
	}
	if x != w.lastX || y != w.lastY {
		buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeMotion, Buttons: held, X: x, Y: y})
		w.lastX, w.lastY = x, y
	}
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.native) {
			buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeButtonDown, Button: b.button, X: x, Y: y})
		}
		if rl.IsMouseButtonReleased(b.native) {
			buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeButtonUp, Button: b.button, X: x, Y: y})
		}
	}

	// Trackpads report fractional wheel steps; carry the remainder.
	wheel := rl.GetMouseWheelMoveV()
	w.wheelX += wheel.X
	w.wheelY += wheel.Y
	dx, dy := math.Trunc(float64(w.wheelX)), math.Trunc(float64(w.wheelY))
	if dx != 0 || dy != 0 {
		buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeWheel, DX: int(dx), DY: int(dy)})
		w.wheelX -= float32(dx)
		w.wheelY -= float32(dy)
	}
	return buf
}

// keys reports new presses from the key queue and releases of keys
// seen earlier.
func (w *Window) keys(buf []pixel.NativeEvent) []pixel.NativeEvent {
	kept := w.held[:0]
	for _, k := range w.held {
		if rl.IsKeyReleased(k) || !rl.IsKeyDown(k) {
			buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeKeyUp, Code: k})
			continue
		}
		kept = append(kept, k)
	}
	w.held = kept
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		buf = append(buf, pixel.NativeEvent{Kind: pixel.NativeKeyDown, Code: k})
		w.held = append(w.held, k)
	}
	return buf
}

// Close releases GPU resources and closes the window.
func (w *Window) Close() error {
	if w.hasTex {
		rl.UnloadTexture(w.tex)
		w.hasTex = false
	}
	if w.hasFont {
		rl.UnloadFont(w.font)
		w.hasFont = false
	}
	rl.CloseWindow()
	return nil
}
