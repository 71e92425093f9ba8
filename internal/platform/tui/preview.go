package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lys/internal/platform/terminal"
	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// Preview thumbnail geometry in cells and refresh rate.
const (
	PreviewCols = 32
	PreviewRows = 8
	PreviewRate = 20
)

// TickMsg advances the preview animation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(rate int) tea.Cmd {
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Preview runs a simulation at thumbnail size. The picker owns one
// preview at a time and releases it when the selection moves.
type Preview struct {
	id     string
	handle *sim.Handle
	cells  *terminal.Cells
	err    error
}

// NewPreview opens the simulation registered under id.
func NewPreview(id string, cols, rows int) *Preview {
	p := &Preview{id: id, cells: terminal.NewCells(cols, rows)}
	rt, err := registry.Create(id)
	if err != nil {
		p.err = err
		return p
	}
	p.handle, p.err = sim.Open(rt, rows*2, cols)
	if p.err == nil {
		p.refresh()
	}
	return p
}

// ID returns the previewed simulation.
func (p *Preview) ID() string { return p.id }

// Err returns the failure that stopped the preview, if any.
func (p *Preview) Err() error { return p.err }

// Step advances the simulation by dt and refreshes the cells.
func (p *Preview) Step(dt time.Duration) {
	if p.err != nil || p.handle == nil {
		return
	}
	if err := p.handle.Step(float32(dt.Seconds())); err != nil {
		p.fail(err)
		return
	}
	p.refresh()
}

func (p *Preview) refresh() {
	frame, err := p.handle.Render()
	if err != nil {
		p.fail(err)
		return
	}
	if frame.Width != p.cells.Cols || frame.Height != p.cells.Rows*2 {
		p.fail(fmt.Errorf("preview: frame %dx%d, expected %dx%d", frame.Width, frame.Height, p.cells.Cols, p.cells.Rows*2))
		return
	}
	p.cells.Fold(frame)
}

func (p *Preview) fail(err error) {
	p.err = err
	p.Close()
}

// Close releases the simulation state.
func (p *Preview) Close() {
	if p.handle != nil {
		//nolint:errcheck // Preview state carries nothing worth reporting
		p.handle.Release()
		p.handle = nil
	}
}

// View renders the thumbnail with r.
func (p *Preview) View(r *lipgloss.Renderer) string {
	return RenderCells(r, p.cells)
}

// RenderCells converts folded cells to a styled string for display.
// Groups adjacent cells with the same color pair to minimize ANSI escape sequences.
func RenderCells(r *lipgloss.Renderer, c *terminal.Cells) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var sb strings.Builder
	sb.Grow(c.Cols*c.Rows*4 + c.Rows)

	for y := range c.Rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Cols {
			i := y*c.Cols + x
			fg, bg := c.Fg[i], c.Bg[i]

			var run strings.Builder
			for x < c.Cols {
				j := y*c.Cols + x
				if c.Fg[j] != fg || c.Bg[j] != bg {
					break
				}
				run.WriteRune(c.Rune(j))
				x++
			}

			style := r.NewStyle().
				Foreground(lipgloss.Color(hexColor(fg))).
				Background(lipgloss.Color(hexColor(bg)))
			sb.WriteString(style.Render(run.String()))
		}
	}

	return sb.String()
}

func hexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}
