package graphics

import "math"

// Filter type markers in the bridge encoding.
const (
	colorFilterTypeBlend  float32 = 0
	colorFilterTypeMatrix float32 = 1

	imageFilterTypeBlur        float32 = 0
	imageFilterTypeDropShadow  float32 = 1
	imageFilterTypeColorFilter float32 = 2
)

// payload accumulates a float32 bridge encoding.
type payload []float32

func (p *payload) add(vs ...float32) {
	*p = append(*p, vs...)
}

// color stores ARGB bits unchanged in a float32 slot.
func (p *payload) color(c Color) {
	p.add(math.Float32frombits(uint32(c)))
}

// nested appends a length-prefixed sub-encoding.
func (p *payload) nested(sub []float32) {
	p.add(float32(len(sub)))
	p.add(sub...)
}

// encodeColorFilter serializes a ColorFilter for skia.Engine.NewColorFilter.
// Returns nil if cf is nil or of an unknown type.
//
// Format:
//
//	Blend:  [0, color_bits, blend_mode, inner_len, ...inner]
//	Matrix: [1, m0..m19, inner_len, ...inner]
func encodeColorFilter(cf *ColorFilter) []float32 {
	if cf == nil {
		return nil
	}
	var p payload
	switch cf.Type {
	case ColorFilterBlend:
		p.add(colorFilterTypeBlend)
		p.color(cf.Color)
		p.add(float32(toSkBlendMode(cf.BlendMode)))
	case ColorFilterMatrix:
		p.add(colorFilterTypeMatrix)
		for _, v := range cf.Matrix {
			p.add(float32(v))
		}
	default:
		return nil
	}
	p.nested(encodeColorFilter(cf.Inner))
	return p
}

// encodeImageFilter serializes an ImageFilter for skia.Engine.NewImageFilter.
// Returns nil if imf is nil or of an unknown type.
//
// Format:
//
//	Blur:        [0, sigma_x, sigma_y, tile_mode, input_len, ...input]
//	DropShadow:  [1, dx, dy, sigma_x, sigma_y, color_bits, shadow_only, input_len, ...input]
//	ColorFilter: [2, cf_len, ...cf, input_len, ...input]
func encodeImageFilter(imf *ImageFilter) []float32 {
	if imf == nil {
		return nil
	}
	var p payload
	switch imf.Type {
	case ImageFilterBlur:
		p.add(imageFilterTypeBlur, float32(imf.SigmaX), float32(imf.SigmaY), float32(toSkTileMode(imf.TileMode)))
	case ImageFilterDropShadow:
		p.add(imageFilterTypeDropShadow, float32(imf.OffsetX), float32(imf.OffsetY), float32(imf.SigmaX), float32(imf.SigmaY))
		p.color(imf.Color)
		if imf.ShadowOnly {
			p.add(1)
		} else {
			p.add(0)
		}
	case ImageFilterColorFilter:
		p.add(imageFilterTypeColorFilter)
		p.nested(encodeColorFilter(imf.ColorFilter))
	default:
		return nil
	}
	p.nested(encodeImageFilter(imf.Input))
	return p
}
