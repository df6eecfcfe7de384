// Package skia defines the native engine contract used by the graphics
// package and provides a recording implementation of it.
//
// Every handle returned by an Engine is exclusively owned by the caller and
// must be released with Delete exactly once. Handles are not safe for
// concurrent use.
package skia

// BlendMode matches SkBlendMode ordinals.
type BlendMode int32

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeDst
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity
)

// PaintStyle matches SkPaint::Style.
type PaintStyle int32

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
	PaintStyleStrokeAndFill
)

// StrokeCap matches SkPaint::Cap.
type StrokeCap int32

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

// StrokeJoin matches SkPaint::Join.
type StrokeJoin int32

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

// BlurStyle matches SkBlurStyle.
type BlurStyle int32

const (
	BlurStyleNormal BlurStyle = iota
	BlurStyleSolid
	BlurStyleOuter
	BlurStyleInner
)

// TileMode matches SkTileMode.
type TileMode int32

const (
	TileModeClamp TileMode = iota
	TileModeRepeat
	TileModeMirror
	TileModeDecal
)

// FilterMode matches SkFilterMode.
type FilterMode int32

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

// MipmapMode matches SkMipmapMode.
type MipmapMode int32

const (
	MipmapModeNone MipmapMode = iota
	MipmapModeNearest
	MipmapModeLinear
)

// Sampling mirrors SkSamplingOptions. When Cubic is set, B and C select the
// cubic resampler and Filter/Mipmap are ignored.
type Sampling struct {
	Filter FilterMode
	Mipmap MipmapMode
	Cubic  bool
	B, C   float32
}

// ImageData is an unpremultiplied RGBA8 pixel buffer.
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// Native paint defaults, as produced by Engine.NewPaint.
const (
	DefaultColor       uint32  = 0xFF000000
	DefaultStrokeMiter float32 = 4
)

// Paint is a native paint object. Setters take effect immediately.
// Passing a nil shader or filter clears the binding.
type Paint interface {
	SetColor(argb uint32)
	SetBlendMode(mode BlendMode)
	SetStyle(style PaintStyle)
	SetStrokeWidth(width float32)
	SetStrokeCap(cap StrokeCap)
	SetStrokeJoin(join StrokeJoin)
	SetStrokeMiter(limit float32)
	SetAntiAlias(aa bool)
	SetShader(shader Shader)
	SetMaskFilter(filter MaskFilter)
	SetColorFilter(filter ColorFilter)
	SetImageFilter(filter ImageFilter)
	Delete()
}

// Shader is a native shader object.
type Shader interface {
	Delete()
}

// ColorFilter is a native color filter object.
type ColorFilter interface {
	Delete()
}

// MaskFilter is a native mask filter object.
type MaskFilter interface {
	Delete()
}

// ImageFilter is a native image filter object.
type ImageFilter interface {
	Delete()
}

// RuntimeEffect is a compiled SkSL program.
type RuntimeEffect interface {
	// MakeShader instantiates the effect with the given uniform floats.
	MakeShader(uniforms []float32) (Shader, error)
	// MakeShaderWithChildren instantiates the effect with uniform floats and
	// child shaders bound to its sampler slots.
	MakeShaderWithChildren(uniforms []float32, children []Shader) (Shader, error)
	Delete()
}

// Engine constructs native objects.
type Engine interface {
	// Version reports the engine version as a semantic version string.
	Version() string

	NewPaint() (Paint, error)

	// NewColorFilter builds a color filter from its bridge encoding.
	NewColorFilter(data []float32) (ColorFilter, error)
	// NewComposeColorFilter applies inner first, then outer.
	NewComposeColorFilter(outer, inner ColorFilter) (ColorFilter, error)

	// NewBlurMaskFilter returns a nil filter and a nil error when sigma is
	// degenerate (zero, negative or non-finite).
	NewBlurMaskFilter(style BlurStyle, sigma float32, respectCTM bool) (MaskFilter, error)

	// NewImageFilter builds an image filter from its bridge encoding.
	NewImageFilter(data []float32) (ImageFilter, error)

	NewRuntimeEffect(sksl string) (RuntimeEffect, error)

	NewImageShader(img ImageData, tileX, tileY TileMode, sampling Sampling) (Shader, error)
	NewLinearGradient(x0, y0, x1, y1 float32, colors []uint32, positions []float32, tile TileMode) (Shader, error)
	NewRadialGradient(cx, cy, radius float32, colors []uint32, positions []float32, tile TileMode) (Shader, error)
}
