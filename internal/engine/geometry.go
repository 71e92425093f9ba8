package engine

import (
	"fmt"

	"github.com/vovakirdan/lys/internal/core"
)

// updateGeometry moves the run to a new size: the state is resized, the
// frame buffer and backend buffers are reallocated, and the host is told.
func (c *Context) updateGeometry(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	if err := c.handle.Resize(height, width); err != nil {
		return err
	}
	frame, err := core.NewFrame(width, height)
	if err != nil {
		return err
	}
	c.frame = frame
	c.width, c.height = width, height
	if err := c.backend.Resize(width, height); err != nil {
		return fmt.Errorf("engine: backend resize: %w", err)
	}
	c.logger.Debug("geometry changed", "width", width, "height", height)
	c.handler.GeometryChanged(c)
	return nil
}
