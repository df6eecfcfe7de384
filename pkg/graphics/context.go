package graphics

import (
	"errors"
	"fmt"

	drifterrors "github.com/go-drift/skpaint/pkg/errors"
	"github.com/go-drift/skpaint/pkg/skia"
)

// Options tunes a Context.
type Options struct {
	// StrictUniformBounds makes FragmentShader setters return an error for
	// indices outside the uniform arrays. When false an out-of-range index
	// panics.
	StrictUniformBounds bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{StrictUniformBounds: true}
}

// tracked is implemented by every Resurrectable.
type tracked interface {
	Delete()
	State() LifecycleState
	Kind() string
	rebuild() error
}

// Context binds graphics objects to a native engine. It tracks every
// native-backed object created through it so that a lost rendering context
// can drop all handles at once and have them rebuilt lazily.
//
// A Context is not safe for concurrent use.
type Context struct {
	engine   skia.Engine
	opts     Options
	objects  map[tracked]struct{}
	lost     []tracked
	invert   *ManagedColorFilter
	disposed bool
}

// NewContext returns a Context backed by engine.
func NewContext(engine skia.Engine, opts Options) *Context {
	return &Context{
		engine:  engine,
		opts:    opts,
		objects: make(map[tracked]struct{}),
	}
}

// Engine returns the native engine.
func (c *Context) Engine() skia.Engine { return c.engine }

// Options returns the options the context was created with.
func (c *Context) Options() Options { return c.opts }

func (c *Context) track(t tracked) {
	if c.disposed {
		panic("graphics: Context used after Dispose")
	}
	c.objects[t] = struct{}{}
}

func (c *Context) untrack(t tracked) {
	delete(c.objects, t)
}

// TrackedObjects returns the number of objects that have not been disposed.
func (c *Context) TrackedObjects() int {
	return len(c.objects)
}

// LiveObjects returns the number of tracked objects holding a native handle.
func (c *Context) LiveObjects() int {
	n := 0
	for t := range c.objects {
		if t.State() == StateLive {
			n++
		}
	}
	return n
}

// LoseContext deletes every native handle while keeping logical state, as
// happens when the GPU context backing the engine is lost. Objects are
// resurrected on their next use, or eagerly by Restore.
func (c *Context) LoseContext() {
	c.lost = c.lost[:0]
	for t := range c.objects {
		if t.State() == StateLive {
			c.lost = append(c.lost, t)
			t.Delete()
		}
	}
	Logger().Debug("graphics: context lost", "deleted", len(c.lost))
}

// Restore eagerly resurrects the objects deleted by the last LoseContext.
// Failures are reported through the errors package and returned joined.
func (c *Context) Restore() error {
	var errs []error
	for _, t := range c.lost {
		if t.State() != StateDeleted {
			continue
		}
		if err := t.rebuild(); err != nil {
			drifterrors.ReportError("graphics.Context.Restore", drifterrors.KindNative, t.Kind(), err)
			errs = append(errs, err)
		}
	}
	c.lost = c.lost[:0]
	return errors.Join(errs...)
}

// Dispose releases the shared objects owned by the context and deletes the
// handles of anything still tracked. Objects that were not disposed by
// their owners are reported as lifecycle errors.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}
	if c.invert != nil {
		c.invert.Release()
		c.invert = nil
	}
	if n := len(c.objects); n > 0 {
		Logger().Warn("graphics: objects alive at context dispose", "count", n)
		drifterrors.ReportError("graphics.Context.Dispose", drifterrors.KindLifecycle, "",
			fmt.Errorf("%d native objects were not disposed", n))
		for t := range c.objects {
			t.Delete()
		}
	}
	c.objects = map[tracked]struct{}{}
	c.lost = nil
	c.disposed = true
}

// invertColorFilter returns the shared invert-only filter, creating it on
// first use. The context holds one reference until Dispose.
func (c *Context) invertColorFilter() *ManagedColorFilter {
	if c.invert == nil {
		c.invert = c.NewColorFilter(ColorFilterInvert())
	}
	return c.invert
}
