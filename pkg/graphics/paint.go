package graphics

import (
	"errors"

	"github.com/go-drift/skpaint/pkg/skia"
)

var errForeignFilter = errors.New("graphics: color filter belongs to another context")

// Paint describes how to draw a shape. It keeps the logical value of every
// property and mirrors them onto a native paint that is built lazily and
// rebuilt after deletion.
//
// Setters compare against the current value with exact equality and do
// nothing when it is unchanged. Otherwise the logical value is updated and,
// if a native paint exists, the matching native setter is called. Setters
// that may need to build native objects return an error and leave the paint
// unchanged on failure.
//
// The zero Paint is not usable; create one with Context.NewPaint and
// release it with Dispose. Setters that retain or own objects fail with
// ErrDisposed afterwards.
type Paint struct {
	ctx    *Context
	native *Resurrectable[skia.Paint]

	color            Color
	blendMode        BlendMode
	style            PaintStyle
	strokeWidth      float64
	strokeCap        StrokeCap
	strokeJoin       StrokeJoin
	strokeMiterLimit float64
	antiAlias        bool
	filterQuality    FilterQuality
	invertColors     bool

	shader      Shader
	ownedShader *RuntimeShader // realized from a template, disposed on replace

	maskFilter  *MaskFilter
	maskValue   MaskFilter
	managedMask *managedMaskFilter // nil when maskFilter is nil or degenerate

	// colorFilter is the effective filter bound to the native paint.
	// While invertColors is set, originalColorFilter holds the user filter.
	// The paint holds one reference on each.
	colorFilter         *ManagedColorFilter
	originalColorFilter *ManagedColorFilter

	imageFilter *ManagedImageFilter

	disposed bool
}

// NewPaint returns a paint with default values: opaque black fill,
// src-over blending, antialiasing on, miter limit 4.
func (c *Context) NewPaint() *Paint {
	p := &Paint{
		ctx:              c,
		color:            ColorBlack,
		blendMode:        BlendModeSrcOver,
		strokeMiterLimit: 4,
		antiAlias:        true,
	}
	p.native = NewResurrectable[skia.Paint](c, "paint", paintNative{p})
	return p
}

// Handle returns the native paint, building or resurrecting it if needed.
func (p *Paint) Handle() (skia.Paint, error) {
	return p.native.Handle()
}

// Native exposes the lifecycle of the native paint.
func (p *Paint) Native() *Resurrectable[skia.Paint] {
	return p.native
}

// Dispose releases the native paint and every object the paint owns or
// retains. Calling it again has no effect.
func (p *Paint) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.native.Dispose()
	p.colorFilter.Release()
	p.originalColorFilter.Release()
	p.colorFilter, p.originalColorFilter = nil, nil
	if p.ownedShader != nil {
		p.ownedShader.Dispose()
		p.ownedShader = nil
	}
	if p.managedMask != nil {
		p.managedMask.native.Dispose()
		p.managedMask = nil
	}
	p.shader = nil
	p.imageFilter = nil
}

// Color returns the paint color.
func (p *Paint) Color() Color { return p.color }

// SetColor sets the paint color.
func (p *Paint) SetColor(c Color) {
	if p.color == c {
		return
	}
	p.color = c
	if h, ok := p.native.Live(); ok {
		h.SetColor(uint32(c))
	}
}

// BlendMode returns the blend mode.
func (p *Paint) BlendMode() BlendMode { return p.blendMode }

// SetBlendMode sets the blend mode.
func (p *Paint) SetBlendMode(mode BlendMode) {
	if p.blendMode == mode {
		return
	}
	p.blendMode = mode
	if h, ok := p.native.Live(); ok {
		h.SetBlendMode(toSkBlendMode(mode))
	}
}

// Style returns the paint style.
func (p *Paint) Style() PaintStyle { return p.style }

// SetStyle sets the paint style.
func (p *Paint) SetStyle(style PaintStyle) {
	if p.style == style {
		return
	}
	p.style = style
	if h, ok := p.native.Live(); ok {
		h.SetStyle(toSkPaintStyle(style))
	}
}

// StrokeWidth returns the stroke width.
func (p *Paint) StrokeWidth() float64 { return p.strokeWidth }

// SetStrokeWidth sets the stroke width. Zero means hairline.
func (p *Paint) SetStrokeWidth(width float64) {
	if p.strokeWidth == width {
		return
	}
	p.strokeWidth = width
	if h, ok := p.native.Live(); ok {
		h.SetStrokeWidth(float32(width))
	}
}

// StrokeCap returns the stroke cap.
func (p *Paint) StrokeCap() StrokeCap { return p.strokeCap }

// SetStrokeCap sets the stroke cap.
func (p *Paint) SetStrokeCap(cap StrokeCap) {
	if p.strokeCap == cap {
		return
	}
	p.strokeCap = cap
	if h, ok := p.native.Live(); ok {
		h.SetStrokeCap(toSkStrokeCap(cap))
	}
}

// StrokeJoin returns the stroke join.
func (p *Paint) StrokeJoin() StrokeJoin { return p.strokeJoin }

// SetStrokeJoin sets the stroke join.
func (p *Paint) SetStrokeJoin(join StrokeJoin) {
	if p.strokeJoin == join {
		return
	}
	p.strokeJoin = join
	if h, ok := p.native.Live(); ok {
		h.SetStrokeJoin(toSkStrokeJoin(join))
	}
}

// StrokeMiterLimit returns the miter limit.
func (p *Paint) StrokeMiterLimit() float64 { return p.strokeMiterLimit }

// SetStrokeMiterLimit sets the miter limit.
func (p *Paint) SetStrokeMiterLimit(limit float64) {
	if p.strokeMiterLimit == limit {
		return
	}
	p.strokeMiterLimit = limit
	if h, ok := p.native.Live(); ok {
		h.SetStrokeMiter(float32(limit))
	}
}

// IsAntiAlias reports whether antialiasing is enabled.
func (p *Paint) IsAntiAlias() bool { return p.antiAlias }

// SetAntiAlias enables or disables antialiasing.
func (p *Paint) SetAntiAlias(aa bool) {
	if p.antiAlias == aa {
		return
	}
	p.antiAlias = aa
	if h, ok := p.native.Live(); ok {
		h.SetAntiAlias(aa)
	}
}

// Shader returns the bound shader. For a template source this is the
// RuntimeShader realized from it.
func (p *Paint) Shader() Shader { return p.shader }

// SetShader binds a shader. Ready shaders are compared by identity and
// borrowed; templates are always realized into a new RuntimeShader owned
// by the paint. The shader is rendered at the current FilterQuality.
func (p *Paint) SetShader(src ShaderSource) error {
	if p.disposed {
		return ErrDisposed
	}
	switch src.kind {
	case shaderSourceNone:
		if p.shader == nil {
			return nil
		}
	case shaderSourceReady:
		if src.shader == p.shader {
			return nil
		}
	}

	var (
		next  Shader
		owned *RuntimeShader
	)
	switch src.kind {
	case shaderSourceReady:
		next = src.shader
	case shaderSourceTemplate:
		rs, err := src.template.CreateShader()
		if err != nil {
			return err
		}
		next, owned = rs, rs
	}

	if err := p.pushShader(next, p.filterQuality); err != nil {
		if owned != nil {
			owned.Dispose()
		}
		return err
	}
	if p.ownedShader != nil {
		p.ownedShader.Dispose()
	}
	p.shader, p.ownedShader = next, owned
	return nil
}

func (p *Paint) pushShader(s Shader, q FilterQuality) error {
	h, ok := p.native.Live()
	if !ok {
		return nil
	}
	var ns skia.Shader
	if s != nil {
		var err error
		if ns, err = s.NativeShader(q); err != nil {
			return err
		}
	}
	h.SetShader(ns)
	return nil
}

// FilterQuality returns the sampling hint used for the shader.
func (p *Paint) FilterQuality() FilterQuality { return p.filterQuality }

// SetFilterQuality sets the sampling hint and rebinds the shader at the new
// quality.
func (p *Paint) SetFilterQuality(q FilterQuality) error {
	if p.filterQuality == q {
		return nil
	}
	if p.shader != nil {
		if err := p.pushShader(p.shader, q); err != nil {
			return err
		}
	}
	p.filterQuality = q
	return nil
}

// MaskFilter returns the mask filter as it was set, including degenerate
// filters that are not bound natively.
func (p *Paint) MaskFilter() *MaskFilter { return p.maskFilter }

// SetMaskFilter sets the mask filter. Filters are compared by value. A
// degenerate filter (see MaskFilter.Degenerate) binds no native filter.
func (p *Paint) SetMaskFilter(mf *MaskFilter) error {
	if p.disposed {
		return ErrDisposed
	}
	if mf == nil && p.maskFilter == nil {
		return nil
	}
	if mf != nil && p.maskFilter != nil && *mf == p.maskValue {
		return nil
	}

	var managed *managedMaskFilter
	if mf != nil && !mf.Degenerate() {
		managed = newManagedMaskFilter(p.ctx, *mf)
	}
	if h, ok := p.native.Live(); ok {
		var nm skia.MaskFilter
		if managed != nil {
			var err error
			if nm, err = managed.native.Handle(); err != nil {
				managed.native.Dispose()
				return err
			}
		}
		h.SetMaskFilter(nm)
	}
	if p.managedMask != nil {
		p.managedMask.native.Dispose()
	}
	p.maskFilter, p.managedMask = mf, managed
	if mf != nil {
		p.maskValue = *mf
	} else {
		p.maskValue = MaskFilter{}
	}
	return nil
}

// ColorFilter returns the user-supplied color filter, without the invert
// overlay.
func (p *Paint) ColorFilter() *ManagedColorFilter {
	if p.invertColors {
		return p.originalColorFilter
	}
	return p.colorFilter
}

// EffectiveColorFilter returns the filter bound to the native paint.
func (p *Paint) EffectiveColorFilter() *ManagedColorFilter { return p.colorFilter }

// SetColorFilter sets the user color filter, compared by identity. The
// paint retains f; the caller keeps its own reference. While InvertColors
// is set the effective filter is the invert overlay composed over f.
func (p *Paint) SetColorFilter(f *ManagedColorFilter) error {
	if p.disposed {
		return ErrDisposed
	}
	if f == p.ColorFilter() {
		return nil
	}
	if f != nil && f.ctx != p.ctx {
		return errForeignFilter
	}

	var effective, original *ManagedColorFilter
	if p.invertColors {
		original = f.Retain()
		effective = p.invertOverlay(f)
	} else {
		effective = f.Retain()
	}
	if err := p.pushColorFilter(effective); err != nil {
		effective.Release()
		original.Release()
		return err
	}
	p.colorFilter.Release()
	p.originalColorFilter.Release()
	p.colorFilter, p.originalColorFilter = effective, original
	return nil
}

// InvertColors reports whether colors are inverted.
func (p *Paint) InvertColors() bool { return p.invertColors }

// SetInvertColors toggles the invert overlay. Turning it off restores the
// exact filter that was effective before it was turned on.
func (p *Paint) SetInvertColors(invert bool) error {
	if p.disposed {
		return ErrDisposed
	}
	if p.invertColors == invert {
		return nil
	}
	if invert {
		effective := p.invertOverlay(p.colorFilter)
		if err := p.pushColorFilter(effective); err != nil {
			effective.Release()
			return err
		}
		p.originalColorFilter = p.colorFilter
		p.colorFilter = effective
	} else {
		if err := p.pushColorFilter(p.originalColorFilter); err != nil {
			return err
		}
		p.colorFilter.Release()
		p.colorFilter = p.originalColorFilter
		p.originalColorFilter = nil
	}
	p.invertColors = invert
	return nil
}

// invertOverlay returns a new reference to the invert filter applied over
// user, or to the shared invert filter when user is nil.
func (p *Paint) invertOverlay(user *ManagedColorFilter) *ManagedColorFilter {
	invert := p.ctx.invertColorFilter()
	if user == nil {
		return invert.Retain()
	}
	return ComposeColorFilters(invert, user)
}

func (p *Paint) pushColorFilter(f *ManagedColorFilter) error {
	h, ok := p.native.Live()
	if !ok {
		return nil
	}
	var nf skia.ColorFilter
	if f != nil {
		var err error
		if nf, err = f.Handle(); err != nil {
			return err
		}
	}
	h.SetColorFilter(nf)
	return nil
}

// ImageFilter returns the image filter.
func (p *Paint) ImageFilter() *ManagedImageFilter { return p.imageFilter }

// SetImageFilter sets the image filter, compared by identity. The paint
// borrows f; it must outlive its use by the paint.
func (p *Paint) SetImageFilter(f *ManagedImageFilter) error {
	if f == p.imageFilter {
		return nil
	}
	if h, ok := p.native.Live(); ok {
		var nf skia.ImageFilter
		if f != nil {
			var err error
			if nf, err = f.Handle(); err != nil {
				return err
			}
		}
		h.SetImageFilter(nf)
	}
	p.imageFilter = f
	return nil
}

type paintNative struct {
	p *Paint
}

func (n paintNative) CreateDefault() (skia.Paint, error) {
	return n.build()
}

func (n paintNative) Resurrect() (skia.Paint, error) {
	return n.build()
}

func (n paintNative) Release(h skia.Paint) {
	h.Delete()
}

func (n paintNative) build() (skia.Paint, error) {
	h, err := n.p.ctx.engine.NewPaint()
	if err != nil {
		return nil, err
	}
	if err := n.p.applyTo(h); err != nil {
		h.Delete()
		return nil, err
	}
	return h, nil
}

// applyTo copies every property that differs from the native defaults onto
// a fresh native paint, using the same conversions as the setters.
func (p *Paint) applyTo(h skia.Paint) error {
	if uint32(p.color) != skia.DefaultColor {
		h.SetColor(uint32(p.color))
	}
	if m := toSkBlendMode(p.blendMode); m != skia.BlendModeSrcOver {
		h.SetBlendMode(m)
	}
	if s := toSkPaintStyle(p.style); s != skia.PaintStyleFill {
		h.SetStyle(s)
	}
	if w := float32(p.strokeWidth); w != 0 {
		h.SetStrokeWidth(w)
	}
	if c := toSkStrokeCap(p.strokeCap); c != skia.StrokeCapButt {
		h.SetStrokeCap(c)
	}
	if j := toSkStrokeJoin(p.strokeJoin); j != skia.StrokeJoinMiter {
		h.SetStrokeJoin(j)
	}
	if m := float32(p.strokeMiterLimit); m != skia.DefaultStrokeMiter {
		h.SetStrokeMiter(m)
	}
	if p.antiAlias {
		h.SetAntiAlias(true)
	}
	if p.shader != nil {
		s, err := p.shader.NativeShader(p.filterQuality)
		if err != nil {
			return err
		}
		h.SetShader(s)
	}
	if p.managedMask != nil {
		m, err := p.managedMask.native.Handle()
		if err != nil {
			return err
		}
		h.SetMaskFilter(m)
	}
	if p.colorFilter != nil {
		f, err := p.colorFilter.Handle()
		if err != nil {
			return err
		}
		h.SetColorFilter(f)
	}
	if p.imageFilter != nil {
		f, err := p.imageFilter.Handle()
		if err != nil {
			return err
		}
		h.SetImageFilter(f)
	}
	return nil
}
