package engine

import "github.com/vovakirdan/lys/internal/core"

// Handler receives lifecycle callbacks from the loop. Callbacks run
// synchronously on the loop and may call Context methods such as Stop
// and DrawText.
type Handler interface {
	LoopStart(c *Context)
	LoopIteration(c *Context)
	LoopEnd(c *Context)
	GeometryChanged(c *Context)
	Custom(c *Context)
}

// HandlerFunc adapts a single function receiving every lifecycle signal.
type HandlerFunc func(c *Context, ev core.Lifecycle)

func (f HandlerFunc) LoopStart(c *Context)       { f(c, core.LifecycleLoopStart) }
func (f HandlerFunc) LoopIteration(c *Context)   { f(c, core.LifecycleLoopIteration) }
func (f HandlerFunc) LoopEnd(c *Context)         { f(c, core.LifecycleLoopEnd) }
func (f HandlerFunc) GeometryChanged(c *Context) { f(c, core.LifecycleGeometryChanged) }
func (f HandlerFunc) Custom(c *Context)          { f(c, core.LifecycleCustom) }

// NopHandler ignores every signal.
type NopHandler struct{}

func (NopHandler) LoopStart(*Context)       {}
func (NopHandler) LoopIteration(*Context)   {}
func (NopHandler) LoopEnd(*Context)         {}
func (NopHandler) GeometryChanged(*Context) {}
func (NopHandler) Custom(*Context)          {}
