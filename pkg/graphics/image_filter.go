package graphics

import (
	"errors"

	"github.com/go-drift/skpaint/pkg/skia"
)

var errEmptyImageFilter = errors.New("graphics: image filter has no encoding")

// ManagedImageFilter is a native-backed ImageFilter. Paints borrow it; the
// creator disposes it once no paint uses it.
type ManagedImageFilter struct {
	ctx    *Context
	filter *ImageFilter
	native *Resurrectable[skia.ImageFilter]
}

// NewImageFilter returns a managed image filter.
func (c *Context) NewImageFilter(imf ImageFilter) *ManagedImageFilter {
	f := &ManagedImageFilter{ctx: c, filter: imf.clone()}
	f.native = NewResurrectable[skia.ImageFilter](c, "imageFilter", imageFilterNative{f})
	return f
}

// Filter returns a copy of the descriptor.
func (f *ManagedImageFilter) Filter() ImageFilter {
	return *f.filter.clone()
}

// Handle returns the native filter, building it if needed.
func (f *ManagedImageFilter) Handle() (skia.ImageFilter, error) {
	return f.native.Handle()
}

// Native exposes the lifecycle of the native handle.
func (f *ManagedImageFilter) Native() *Resurrectable[skia.ImageFilter] {
	return f.native
}

// Dispose releases the native handle permanently.
func (f *ManagedImageFilter) Dispose() {
	f.native.Dispose()
}

type imageFilterNative struct {
	f *ManagedImageFilter
}

func (n imageFilterNative) CreateDefault() (skia.ImageFilter, error) {
	return n.build()
}

func (n imageFilterNative) Resurrect() (skia.ImageFilter, error) {
	return n.build()
}

func (n imageFilterNative) Release(h skia.ImageFilter) {
	h.Delete()
}

func (n imageFilterNative) build() (skia.ImageFilter, error) {
	data := encodeImageFilter(n.f.filter)
	if data == nil {
		return nil, errEmptyImageFilter
	}
	return n.f.ctx.engine.NewImageFilter(data)
}
