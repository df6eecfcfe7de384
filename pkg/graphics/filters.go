package graphics

// ColorFilterType specifies the algorithm used by a ColorFilter.
type ColorFilterType int

const (
	// ColorFilterBlend blends a constant color with the input using a blend mode.
	// Requires Color and BlendMode fields to be set.
	ColorFilterBlend ColorFilterType = iota

	// ColorFilterMatrix applies a 5x4 color transformation matrix.
	// Requires the Matrix field to be set.
	ColorFilterMatrix
)

// ColorFilter describes a color transformation. It is a plain value; use
// Context.NewColorFilter to obtain a native-backed filter for a Paint.
//
// Filters can be chained using the Compose method. When composed, the inner
// filter is applied first, then the outer filter processes the result.
type ColorFilter struct {
	// Type specifies the filter algorithm.
	Type ColorFilterType

	// Color is the constant color for ColorFilterBlend.
	Color Color

	// BlendMode controls how Color is blended for ColorFilterBlend.
	BlendMode BlendMode

	// Matrix is a 5x4 row-major color matrix for ColorFilterMatrix:
	//
	//   R' = Matrix[0]*R + Matrix[1]*G + Matrix[2]*B + Matrix[3]*A + Matrix[4]
	//   ...
	//   A' = Matrix[15]*R + Matrix[16]*G + Matrix[17]*B + Matrix[18]*A + Matrix[19]
	//
	// Input values are in the range [0, 255].
	Matrix [20]float64

	// Inner is an optional filter to apply before this one.
	Inner *ColorFilter
}

// ColorFilterTint creates a color filter that blends a constant color
// with the input using the specified blend mode.
func ColorFilterTint(color Color, mode BlendMode) ColorFilter {
	return ColorFilter{
		Type:      ColorFilterBlend,
		Color:     color,
		BlendMode: mode,
	}
}

// ColorFilterMatrixOf creates a matrix color filter.
func ColorFilterMatrixOf(m [20]float64) ColorFilter {
	return ColorFilter{Type: ColorFilterMatrix, Matrix: m}
}

// ColorFilterGrayscale creates a color filter that converts colors to
// grayscale using BT.709 luminance.
func ColorFilterGrayscale() ColorFilter {
	return ColorFilterMatrixOf([20]float64{
		0.2126, 0.7152, 0.0722, 0, 0,
		0.2126, 0.7152, 0.0722, 0, 0,
		0.2126, 0.7152, 0.0722, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// invertColorMatrix inverts RGB and preserves alpha. It backs the
// Paint.InvertColors overlay.
var invertColorMatrix = [20]float64{
	-1, 0, 0, 0, 255,
	0, -1, 0, 0, 255,
	0, 0, -1, 0, 255,
	0, 0, 0, 1, 0,
}

// ColorFilterInvert creates a color filter that inverts RGB values.
// Alpha is preserved.
func ColorFilterInvert() ColorFilter {
	return ColorFilterMatrixOf(invertColorMatrix)
}

// ColorFilterBrightness creates a color filter that scales RGB values by
// factor. Alpha is preserved.
func ColorFilterBrightness(factor float64) ColorFilter {
	return ColorFilterMatrixOf([20]float64{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// ColorFilterSaturate creates a color filter that adjusts saturation.
// A factor of 0 produces grayscale, 1 leaves colors unchanged.
func ColorFilterSaturate(factor float64) ColorFilter {
	inv := 1 - factor
	r := 0.2126 * inv
	g := 0.7152 * inv
	b := 0.0722 * inv
	return ColorFilterMatrixOf([20]float64{
		r + factor, g, b, 0, 0,
		r, g + factor, b, 0, 0,
		r, g, b + factor, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// Compose returns a new ColorFilter that applies inner first, then this filter.
// The result does not alias inner.
func (cf ColorFilter) Compose(inner ColorFilter) ColorFilter {
	cf.Inner = inner.clone()
	return cf
}

// ImageFilterType specifies the algorithm used by an ImageFilter.
type ImageFilterType int

const (
	// ImageFilterBlur applies a Gaussian blur.
	ImageFilterBlur ImageFilterType = iota

	// ImageFilterDropShadow renders a shadow behind the content.
	ImageFilterDropShadow

	// ImageFilterColorFilter applies a ColorFilter as an image filter.
	ImageFilterColorFilter
)

// TileMode specifies how pixels outside an image or filter's bounds are
// produced.
type TileMode int

const (
	// TileModeClamp extends edge pixels outward.
	TileModeClamp TileMode = iota

	// TileModeRepeat tiles the image.
	TileModeRepeat

	// TileModeMirror tiles with alternating mirrored copies.
	TileModeMirror

	// TileModeDecal renders transparent black outside the bounds.
	TileModeDecal
)

// ImageFilter describes a pixel-based effect such as blur or drop shadow.
// Use Context.NewImageFilter to obtain a native-backed filter for a Paint.
type ImageFilter struct {
	Type ImageFilterType

	// SigmaX and SigmaY are the blur radii for blur and drop shadow.
	SigmaX float64
	SigmaY float64

	// TileMode controls edge handling for ImageFilterBlur.
	TileMode TileMode

	// OffsetX and OffsetY position the drop shadow.
	OffsetX float64
	OffsetY float64

	// Color is the drop shadow color.
	Color Color

	// ShadowOnly renders only the shadow without the original content.
	ShadowOnly bool

	// ColorFilter is the filter to apply for ImageFilterColorFilter.
	ColorFilter *ColorFilter

	// Input is an optional filter to apply before this one.
	Input *ImageFilter
}

// NewBlurFilter creates a Gaussian blur image filter using TileModeDecal.
func NewBlurFilter(sigmaX, sigmaY float64) ImageFilter {
	return ImageFilter{
		Type:     ImageFilterBlur,
		SigmaX:   sigmaX,
		SigmaY:   sigmaY,
		TileMode: TileModeDecal,
	}
}

// NewDropShadowFilter creates a drop shadow that renders both the shadow
// and the original content.
func NewDropShadowFilter(dx, dy, sigma float64, color Color) ImageFilter {
	return ImageFilter{
		Type:    ImageFilterDropShadow,
		OffsetX: dx,
		OffsetY: dy,
		SigmaX:  sigma,
		SigmaY:  sigma,
		Color:   color,
	}
}

// NewImageFilterFromColorFilter wraps a ColorFilter as an ImageFilter.
func NewImageFilterFromColorFilter(cf ColorFilter) ImageFilter {
	return ImageFilter{
		Type:        ImageFilterColorFilter,
		ColorFilter: cf.clone(),
	}
}

// Compose returns a new ImageFilter that applies input first, then this filter.
func (imf ImageFilter) Compose(input ImageFilter) ImageFilter {
	imf.Input = input.clone()
	return imf
}

// clone returns a deep copy of the ColorFilter, including the Inner chain.
func (cf *ColorFilter) clone() *ColorFilter {
	if cf == nil {
		return nil
	}
	c := *cf
	c.Inner = cf.Inner.clone()
	return &c
}

// clone returns a deep copy of the ImageFilter, including nested filters.
func (imf *ImageFilter) clone() *ImageFilter {
	if imf == nil {
		return nil
	}
	c := *imf
	c.Input = imf.Input.clone()
	c.ColorFilter = imf.ColorFilter.clone()
	return &c
}
