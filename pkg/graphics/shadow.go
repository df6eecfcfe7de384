package graphics

// BoxShadow defines a shadow to draw around a shape.
//
// BlurStyle controls where the shadow appears relative to the shape.
//
// Spread controls the shadow's extent relative to the shape:
// - Outer/Normal/Solid: positive spread expands the shadow outward.
// - Inner: positive spread moves the inner edge inward, thickening the band.
//
// BlurRadius controls softness. Sigma for Skia is BlurRadius * 0.5.
type BoxShadow struct {
	Color      Color
	Offset     Offset
	BlurRadius float64 // sigma = blurRadius * 0.5
	Spread     float64
	BlurStyle  BlurStyle
}

// Sigma returns the blur sigma for Skia's mask filter.
// Returns 0 if BlurRadius is negative.
func (s BoxShadow) Sigma() float64 {
	if s.BlurRadius <= 0 {
		return 0
	}
	return s.BlurRadius * 0.5
}

// MaskFilter returns the blur mask filter for the shadow. A shadow without
// blur yields a degenerate filter, which paints bind as no filter.
func (s BoxShadow) MaskFilter() *MaskFilter {
	return NewBlurMaskFilter(s.BlurStyle, s.Sigma())
}

// ApplyTo configures p to draw the shadow shape: fill with the shadow
// color through the shadow's mask filter.
func (s BoxShadow) ApplyTo(p *Paint) error {
	if err := p.SetMaskFilter(s.MaskFilter()); err != nil {
		return err
	}
	p.SetStyle(PaintStyleFill)
	p.SetColor(s.Color)
	return nil
}

// NewBoxShadow creates a simple drop shadow with the given color and blur radius.
// Offset defaults to (0, 2) for a subtle downward shadow.
func NewBoxShadow(color Color, blurRadius float64) *BoxShadow {
	return &BoxShadow{
		Color:      color,
		Offset:     Offset{X: 0, Y: 2},
		BlurRadius: blurRadius,
	}
}

// BoxShadowElevation returns a Material-style elevation shadow.
// Level should be 1-5, where higher levels have larger blur and offset.
func BoxShadowElevation(level int, color Color) *BoxShadow {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	// Material Design elevation values (approximate)
	offsets := []float64{1, 2, 4, 6, 8}
	blurs := []float64{3, 6, 10, 14, 18}
	spreads := []float64{0, 0, 1, 2, 3}

	return &BoxShadow{
		Color:      color,
		Offset:     Offset{X: 0, Y: offsets[level-1]},
		BlurRadius: blurs[level-1],
		Spread:     spreads[level-1],
		BlurStyle:  BlurStyleOuter,
	}
}

// TextShadow defines a shadow drawn behind content, such as text.
type TextShadow struct {
	Color      Color
	Offset     Offset
	BlurRadius float64 // sigma = blurRadius * 0.5, 0 = hard shadow
}

// Sigma returns the blur sigma for Skia's mask filter.
// Returns 0 if BlurRadius is zero or negative.
func (s TextShadow) Sigma() float64 {
	if s.BlurRadius <= 0 {
		return 0
	}
	return s.BlurRadius * 0.5
}

// ImageFilter returns a drop shadow filter that draws the shadow under the
// original content.
func (s TextShadow) ImageFilter() ImageFilter {
	return NewDropShadowFilter(s.Offset.X, s.Offset.Y, s.Sigma(), s.Color)
}

// NewTextShadow creates a simple text shadow with the given color and blur radius.
// Offset defaults to (0, 2) for a subtle downward shadow.
func NewTextShadow(color Color, blurRadius float64) *TextShadow {
	return &TextShadow{
		Color:      color,
		Offset:     Offset{X: 0, Y: 2},
		BlurRadius: blurRadius,
	}
}
