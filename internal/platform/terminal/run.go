package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/sim"
)

// Mode is an acquired terminal mode that must be put back.
type Mode interface {
	Restore() error
}

// Terminal describes the endpoints of one terminal session.
type Terminal struct {
	Out  io.Writer
	In   io.ByteReader
	Cols int
	Rows int

	// Mode, if set, is restored on every return path of Run.
	Mode Mode
}

// Run drives rt on t until the loop stops. The terminal is measured once;
// later size changes are not followed.
func Run(ctx context.Context, rt sim.Runtime, t Terminal, h engine.Handler, cfg engine.Config) (err error) {
	if t.Mode != nil {
		defer func() {
			err = errors.Join(err, t.Mode.Restore())
		}()
	}
	if t.Cols <= 0 || t.Rows <= 0 {
		return fmt.Errorf("terminal: %w: %dx%d cells", engine.ErrInvalidGeometry, t.Cols, t.Rows)
	}
	b := New(t.Out, t.In, t.Cols, t.Rows)
	if err := b.Open(); err != nil {
		return fmt.Errorf("terminal: open: %w", err)
	}
	return engine.New(rt, b, h, cfg).Run(ctx)
}
