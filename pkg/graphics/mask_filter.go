package graphics

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/go-drift/skpaint/pkg/skia"
)

// BlurStyle controls how the blur mask is generated.
type BlurStyle int

const (
	// BlurStyleNormal blurs inside and outside the shape.
	BlurStyleNormal BlurStyle = iota
	// BlurStyleSolid keeps the shape solid inside, blurs outside.
	BlurStyleSolid
	// BlurStyleOuter draws nothing inside, blurs outside only.
	BlurStyleOuter
	// BlurStyleInner blurs inside the shape only, nothing outside.
	BlurStyleInner
)

// String returns a human-readable representation of the blur style.
func (s BlurStyle) String() string {
	switch s {
	case BlurStyleNormal:
		return "normal"
	case BlurStyleSolid:
		return "solid"
	case BlurStyleOuter:
		return "outer"
	case BlurStyleInner:
		return "inner"
	default:
		return fmt.Sprintf("BlurStyle(%d)", int(s))
	}
}

// MaskFilter describes a blur applied to a shape's coverage mask.
type MaskFilter struct {
	Style BlurStyle
	Sigma float64
}

// NewBlurMaskFilter returns a blur mask filter.
func NewBlurMaskFilter(style BlurStyle, sigma float64) *MaskFilter {
	return &MaskFilter{Style: style, Sigma: sigma}
}

// Degenerate reports whether the filter has no visible effect. The native
// engine builds no object for such filters. Sigma is checked at the
// engine's float32 precision, so values that overflow float32 count.
func (m MaskFilter) Degenerate() bool {
	s := float32(m.Sigma)
	return !(s > 0) || math32.IsInf(s, 0) || math32.IsNaN(s)
}

// managedMaskFilter is the paint-owned native counterpart of a MaskFilter.
type managedMaskFilter struct {
	ctx    *Context
	filter MaskFilter
	native *Resurrectable[skia.MaskFilter]
}

func newManagedMaskFilter(ctx *Context, filter MaskFilter) *managedMaskFilter {
	m := &managedMaskFilter{ctx: ctx, filter: filter}
	m.native = NewResurrectable[skia.MaskFilter](ctx, "maskFilter", m)
	return m
}

func (m *managedMaskFilter) CreateDefault() (skia.MaskFilter, error) {
	return m.build()
}

func (m *managedMaskFilter) Resurrect() (skia.MaskFilter, error) {
	return m.build()
}

func (m *managedMaskFilter) Release(h skia.MaskFilter) {
	h.Delete()
}

func (m *managedMaskFilter) build() (skia.MaskFilter, error) {
	return m.ctx.engine.NewBlurMaskFilter(toSkBlurStyle(m.filter.Style), float32(m.filter.Sigma), true)
}
