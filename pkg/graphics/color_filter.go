package graphics

import (
	"errors"

	"github.com/go-drift/skpaint/pkg/skia"
)

var errEmptyColorFilter = errors.New("graphics: color filter has no encoding")

// ManagedColorFilter is a native-backed node of a color filter chain: either
// a single ColorFilter or the composition of two managed filters, where the
// outer filter is applied to the inner filter's result.
//
// Managed filters are reference counted. The creator holds the first
// reference; compositions and paints retain the filters they use. Releasing
// the last reference disposes the native handle and releases any children.
// Identity is by pointer.
type ManagedColorFilter struct {
	ctx    *Context
	native *Resurrectable[skia.ColorFilter]
	filter *ColorFilter
	outer  *ManagedColorFilter
	inner  *ManagedColorFilter
	refs   int
}

// NewColorFilter returns a single-node managed filter holding one reference.
func (c *Context) NewColorFilter(cf ColorFilter) *ManagedColorFilter {
	f := &ManagedColorFilter{ctx: c, filter: cf.clone(), refs: 1}
	f.native = NewResurrectable[skia.ColorFilter](c, "colorFilter", colorFilterNative{f})
	return f
}

// ComposeColorFilters returns a managed filter applying inner first, then
// outer. The result retains both children and holds one reference of its
// own. Both filters must belong to the same Context.
func ComposeColorFilters(outer, inner *ManagedColorFilter) *ManagedColorFilter {
	if outer == nil || inner == nil {
		panic("graphics: ComposeColorFilters with nil filter")
	}
	if outer.ctx != inner.ctx {
		panic("graphics: ComposeColorFilters across contexts")
	}
	f := &ManagedColorFilter{
		ctx:   outer.ctx,
		outer: outer.Retain(),
		inner: inner.Retain(),
		refs:  1,
	}
	f.native = NewResurrectable[skia.ColorFilter](outer.ctx, "colorFilter", colorFilterNative{f})
	return f
}

// Retain adds a reference and returns f. It is nil-safe.
func (f *ManagedColorFilter) Retain() *ManagedColorFilter {
	if f != nil {
		if f.refs <= 0 {
			panic("graphics: Retain on released color filter")
		}
		f.refs++
	}
	return f
}

// Release drops a reference. The last release disposes the native handle
// and releases composed children. It is nil-safe.
func (f *ManagedColorFilter) Release() {
	if f == nil {
		return
	}
	if f.refs <= 0 {
		panic("graphics: color filter released too many times")
	}
	f.refs--
	if f.refs > 0 {
		return
	}
	f.native.Dispose()
	f.outer.Release()
	f.inner.Release()
}

// Refs returns the current reference count.
func (f *ManagedColorFilter) Refs() int { return f.refs }

// IsComposed reports whether f is a two-node composition.
func (f *ManagedColorFilter) IsComposed() bool { return f.outer != nil }

// Filter returns the descriptor of a single-node filter.
func (f *ManagedColorFilter) Filter() (ColorFilter, bool) {
	if f.filter == nil {
		return ColorFilter{}, false
	}
	return *f.filter.clone(), true
}

// Outer returns the outer filter of a composition, or nil.
func (f *ManagedColorFilter) Outer() *ManagedColorFilter { return f.outer }

// Inner returns the inner filter of a composition, or nil.
func (f *ManagedColorFilter) Inner() *ManagedColorFilter { return f.inner }

// Handle returns the native filter, building it if needed.
func (f *ManagedColorFilter) Handle() (skia.ColorFilter, error) {
	return f.native.Handle()
}

// Native exposes the lifecycle of the native handle.
func (f *ManagedColorFilter) Native() *Resurrectable[skia.ColorFilter] {
	return f.native
}

type colorFilterNative struct {
	f *ManagedColorFilter
}

func (n colorFilterNative) CreateDefault() (skia.ColorFilter, error) {
	return n.build()
}

func (n colorFilterNative) Resurrect() (skia.ColorFilter, error) {
	return n.build()
}

func (n colorFilterNative) Release(h skia.ColorFilter) {
	h.Delete()
}

func (n colorFilterNative) build() (skia.ColorFilter, error) {
	f := n.f
	engine := f.ctx.engine
	if !f.IsComposed() {
		data := encodeColorFilter(f.filter)
		if data == nil {
			return nil, errEmptyColorFilter
		}
		return engine.NewColorFilter(data)
	}
	outer, err := f.outer.Handle()
	if err != nil {
		return nil, err
	}
	inner, err := f.inner.Handle()
	if err != nil {
		return nil, err
	}
	return engine.NewComposeColorFilter(outer, inner)
}
