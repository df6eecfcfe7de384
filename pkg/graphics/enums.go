package graphics

import (
	"fmt"

	"github.com/go-drift/skpaint/pkg/skia"
)

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke

	// PaintStyleFillAndStroke fills and then strokes the outline.
	PaintStyleFillAndStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill_and_stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// StrokeCap describes how stroke endpoints are drawn.
type StrokeCap int

const (
	CapButt   StrokeCap = iota // Flat edge at endpoint (default)
	CapRound                   // Semicircle at endpoint
	CapSquare                  // Square extending past endpoint
)

// StrokeJoin describes how stroke corners are drawn.
type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota // Sharp corner (default)
	JoinRound                   // Rounded corner
	JoinBevel                   // Flattened corner
)

// BlendMode controls how source and destination colors are composited.
type BlendMode int

const (
	BlendModeClear      BlendMode = iota // clear
	BlendModeSrc                         // src
	BlendModeDst                         // dst
	BlendModeSrcOver                     // src_over
	BlendModeDstOver                     // dst_over
	BlendModeSrcIn                       // src_in
	BlendModeDstIn                       // dst_in
	BlendModeSrcOut                      // src_out
	BlendModeDstOut                      // dst_out
	BlendModeSrcATop                     // src_atop
	BlendModeDstATop                     // dst_atop
	BlendModeXor                         // xor
	BlendModePlus                        // plus
	BlendModeModulate                    // modulate
	BlendModeScreen                      // screen
	BlendModeOverlay                     // overlay
	BlendModeDarken                      // darken
	BlendModeLighten                     // lighten
	BlendModeColorDodge                  // color_dodge
	BlendModeColorBurn                   // color_burn
	BlendModeHardLight                   // hard_light
	BlendModeSoftLight                   // soft_light
	BlendModeDifference                  // difference
	BlendModeExclusion                   // exclusion
	BlendModeMultiply                    // multiply
	BlendModeHue                         // hue
	BlendModeSaturation                  // saturation
	BlendModeColor                       // color
	BlendModeLuminosity                  // luminosity
)

var blendModeNames = []string{
	"clear", "src", "dst", "src_over", "dst_over",
	"src_in", "dst_in", "src_out", "dst_out",
	"src_atop", "dst_atop", "xor", "plus", "modulate",
	"screen", "overlay", "darken", "lighten",
	"color_dodge", "color_burn", "hard_light", "soft_light",
	"difference", "exclusion", "multiply",
	"hue", "saturation", "color", "luminosity",
}

// String returns a human-readable representation of the blend mode.
func (b BlendMode) String() string {
	if int(b) >= 0 && int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// FilterQuality is a sampling hint for shaders and images.
type FilterQuality int

const (
	FilterQualityNone   FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                         // Bilinear
	FilterQualityMedium                      // Bilinear + mipmaps
	FilterQualityHigh                        // Bicubic (Mitchell)
)

// String returns a human-readable representation of the filter quality.
func (q FilterQuality) String() string {
	switch q {
	case FilterQualityNone:
		return "none"
	case FilterQualityLow:
		return "low"
	case FilterQualityMedium:
		return "medium"
	case FilterQualityHigh:
		return "high"
	default:
		return fmt.Sprintf("FilterQuality(%d)", int(q))
	}
}

// Conversions to native enums. Out-of-range values fall back to the native
// default rather than reaching the engine.

func toSkBlendMode(b BlendMode) skia.BlendMode {
	if b < BlendModeClear || b > BlendModeLuminosity {
		return skia.BlendModeSrcOver
	}
	return skia.BlendMode(b)
}

func toSkPaintStyle(s PaintStyle) skia.PaintStyle {
	switch s {
	case PaintStyleStroke:
		return skia.PaintStyleStroke
	case PaintStyleFillAndStroke:
		return skia.PaintStyleStrokeAndFill
	default:
		return skia.PaintStyleFill
	}
}

func toSkStrokeCap(c StrokeCap) skia.StrokeCap {
	switch c {
	case CapRound:
		return skia.StrokeCapRound
	case CapSquare:
		return skia.StrokeCapSquare
	default:
		return skia.StrokeCapButt
	}
}

func toSkStrokeJoin(j StrokeJoin) skia.StrokeJoin {
	switch j {
	case JoinRound:
		return skia.StrokeJoinRound
	case JoinBevel:
		return skia.StrokeJoinBevel
	default:
		return skia.StrokeJoinMiter
	}
}

func toSkBlurStyle(s BlurStyle) skia.BlurStyle {
	switch s {
	case BlurStyleSolid:
		return skia.BlurStyleSolid
	case BlurStyleOuter:
		return skia.BlurStyleOuter
	case BlurStyleInner:
		return skia.BlurStyleInner
	default:
		return skia.BlurStyleNormal
	}
}

func toSkTileMode(m TileMode) skia.TileMode {
	switch m {
	case TileModeRepeat:
		return skia.TileModeRepeat
	case TileModeMirror:
		return skia.TileModeMirror
	case TileModeDecal:
		return skia.TileModeDecal
	default:
		return skia.TileModeClamp
	}
}

// Mitchell cubic coefficients used for FilterQualityHigh.
const (
	mitchellB = 1.0 / 3
	mitchellC = 1.0 / 3
)

func toSkSampling(q FilterQuality) skia.Sampling {
	switch q {
	case FilterQualityLow:
		return skia.Sampling{Filter: skia.FilterModeLinear, Mipmap: skia.MipmapModeNone}
	case FilterQualityMedium:
		return skia.Sampling{Filter: skia.FilterModeLinear, Mipmap: skia.MipmapModeLinear}
	case FilterQualityHigh:
		return skia.Sampling{Cubic: true, B: mitchellB, C: mitchellC}
	default:
		return skia.Sampling{Filter: skia.FilterModeNearest, Mipmap: skia.MipmapModeNone}
	}
}
