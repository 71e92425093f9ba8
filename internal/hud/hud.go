// Package hud provides the lifecycle handler used by the lys commands:
// an FPS and render latency readout toggled by F1.
package hud

import (
	"fmt"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// DefaultColor is the overlay text color.
const DefaultColor = core.ColorWhite

// HUD toggles a statistics overlay on the Custom signal.
// X and Y are in backend units (pixels on a window, cells on a terminal).
type HUD struct {
	X, Y    int
	Color   uint32
	Visible bool

	// Limit stops the loop after that many iterations when positive.
	Limit uint64
}

// New returns a hidden HUD anchored at (x, y).
func New(x, y int) *HUD {
	return &HUD{X: x, Y: y, Color: DefaultColor}
}

func (h *HUD) LoopStart(*engine.Context) {}

func (h *HUD) LoopIteration(c *engine.Context) {
	if h.Limit > 0 && c.Iteration() >= h.Limit {
		c.Stop()
		return
	}
	if h.Visible {
		c.DrawText(h.X, h.Y, h.Text(c), h.Color)
	}
}

func (h *HUD) LoopEnd(c *engine.Context) {
	c.Logger().Debug("hud", "iterations", c.Iteration(), "fps", c.FPS())
}

func (h *HUD) GeometryChanged(*engine.Context) {}

// Custom flips the overlay.
func (h *HUD) Custom(*engine.Context) {
	h.Visible = !h.Visible
}

// Text formats the readout for the current state of c.
func (h *HUD) Text(c *engine.Context) string {
	ms := float64(c.RenderLatency().Microseconds()) / 1000
	return fmt.Sprintf("%.0f fps\n%.2f ms\n%dx%d", c.FPS(), ms, c.Width(), c.Height())
}

var _ engine.Handler = (*HUD)(nil)
