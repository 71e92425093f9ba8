package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/sim"
)

// Run executes the loop until the handler or backend stops it, ctx is
// done, or an unrecoverable error occurs. The backend is closed and the
// final state freed on every return path.
func (c *Context) Run(ctx context.Context) (err error) {
	if c.phase != PhaseIdle {
		return ErrNotIdle
	}
	c.phase = PhaseStopped

	defer func() {
		err = errors.Join(err, c.teardown())
	}()

	if err := c.setup(); err != nil {
		return err
	}

	c.phase = PhaseRunning
	c.running = true
	c.logger.Info("loop started", "width", c.width, "height", c.height, "max_fps", c.maxFPS)
	c.handler.LoopStart(c)

	for c.running {
		if ctx.Err() != nil {
			c.logger.Debug("loop cancelled", "cause", context.Cause(ctx))
			break
		}
		if err := c.iterate(); err != nil {
			c.running = false
			c.phase = PhaseStopped
			return err
		}
	}

	c.running = false
	c.phase = PhaseStopped
	c.handler.LoopEnd(c)
	c.logger.Info("loop ended", "iterations", c.iteration, "fps", fmt.Sprintf("%.1f", c.fps.Value()))
	return nil
}

func (c *Context) setup() error {
	width, height := c.backend.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	handle, err := sim.Open(c.rt, height, width)
	if err != nil {
		return err
	}
	c.handle = handle
	if err := c.updateGeometry(width, height); err != nil {
		return err
	}
	c.start = c.clock.Now()
	c.last = c.start
	return nil
}

// iterate runs one pass: step, render, draw, pace, input, callback.
func (c *Context) iterate() error {
	now := c.clock.Now()
	delta := now.Sub(c.last)
	c.last = now

	if err := c.handle.Step(float32(delta.Seconds())); err != nil {
		return err
	}

	renderStart := c.clock.Now()
	frame, err := c.handle.Render()
	if err != nil {
		return err
	}
	c.latency = c.clock.Now().Sub(renderStart)

	if frame.Width != c.width || frame.Height != c.height || len(frame.Pix) != c.frame.Len() {
		return fmt.Errorf("engine: render returned %dx%d frame for %dx%d geometry",
			frame.Width, frame.Height, c.width, c.height)
	}
	copy(c.frame.Pix, frame.Pix)

	info := FrameInfo{
		Iteration:     c.iteration,
		RenderLatency: c.latency,
		FPS:           c.fps.Value(),
		Overlays:      c.overlays,
	}
	if err := c.backend.Draw(c.frame, info); err != nil {
		return fmt.Errorf("engine: draw: %w", err)
	}
	c.overlays = c.overlays[:0]

	c.fps.Update(delta.Seconds())

	if c.maxFPS > 0 {
		budget := time.Second/time.Duration(c.maxFPS) - c.clock.Now().Sub(now)
		if budget > 0 {
			c.clock.Sleep(budget)
		}
	}

	if err := c.backend.Poll(c); err != nil {
		return fmt.Errorf("engine: input: %w", err)
	}

	c.iteration++
	c.handler.LoopIteration(c)
	return nil
}

func (c *Context) teardown() error {
	var errs []error
	if c.handle != nil {
		errs = append(errs, c.handle.Release())
		c.handle = nil
	}
	c.frame = core.Frame{}
	c.overlays = nil
	if err := c.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("engine: close backend: %w", err))
	}
	return errors.Join(errs...)
}
