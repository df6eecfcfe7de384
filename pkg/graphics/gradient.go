package graphics

import (
	"errors"
	"fmt"

	"github.com/go-drift/skpaint/pkg/skia"
)

// Offset is a point in logical pixels.
type Offset struct {
	X, Y float64
}

// GradientType describes the gradient variant.
type GradientType int

const (
	// GradientTypeNone indicates no gradient is applied.
	GradientTypeNone GradientType = iota
	// GradientTypeLinear indicates a linear gradient.
	GradientTypeLinear
	// GradientTypeRadial indicates a radial gradient.
	GradientTypeRadial
)

// String returns a human-readable representation of the gradient type.
func (t GradientType) String() string {
	switch t {
	case GradientTypeNone:
		return "none"
	case GradientTypeLinear:
		return "linear"
	case GradientTypeRadial:
		return "radial"
	default:
		return fmt.Sprintf("GradientType(%d)", int(t))
	}
}

// GradientStop defines a color stop within a gradient.
type GradientStop struct {
	Position float64
	Color    Color
}

// Gradient describes a linear or radial gradient.
type Gradient struct {
	Type   GradientType
	Start  Offset // linear
	End    Offset // linear
	Center Offset // radial
	Radius float64
	Stops  []GradientStop
}

// NewLinearGradient constructs a linear gradient definition.
func NewLinearGradient(start, end Offset, stops []GradientStop) *Gradient {
	return &Gradient{
		Type:  GradientTypeLinear,
		Start: start,
		End:   end,
		Stops: cloneGradientStops(stops),
	}
}

// NewRadialGradient constructs a radial gradient definition.
func NewRadialGradient(center Offset, radius float64, stops []GradientStop) *Gradient {
	return &Gradient{
		Type:   GradientTypeRadial,
		Center: center,
		Radius: radius,
		Stops:  cloneGradientStops(stops),
	}
}

// IsValid reports whether the gradient has usable stops.
func (g *Gradient) IsValid() bool {
	if g == nil || len(g.Stops) < 2 {
		return false
	}
	if g.Type == GradientTypeRadial && g.Radius <= 0 {
		return false
	}
	for _, stop := range g.Stops {
		if stop.Position < 0 || stop.Position > 1 {
			return false
		}
	}
	return g.Type == GradientTypeLinear || g.Type == GradientTypeRadial
}

func cloneGradientStops(stops []GradientStop) []GradientStop {
	if len(stops) == 0 {
		return nil
	}
	clone := make([]GradientStop, len(stops))
	copy(clone, stops)
	return clone
}

var errInvalidGradient = errors.New("graphics: invalid gradient")

// GradientShader renders a Gradient. Filter quality does not affect it.
type GradientShader struct {
	ctx      *Context
	gradient Gradient
	tile     TileMode
	native   *Resurrectable[skia.Shader]
}

// NewGradientShader returns a shader for g. Invalid gradients are rejected.
func (c *Context) NewGradientShader(g *Gradient, tile TileMode) (*GradientShader, error) {
	if !g.IsValid() {
		return nil, errInvalidGradient
	}
	s := &GradientShader{ctx: c, gradient: *g, tile: tile}
	s.gradient.Stops = cloneGradientStops(g.Stops)
	s.native = NewResurrectable[skia.Shader](c, "gradientShader", gradientNative{s})
	return s, nil
}

// NativeShader implements Shader.
func (s *GradientShader) NativeShader(FilterQuality) (skia.Shader, error) {
	return s.native.Handle()
}

// Native exposes the lifecycle of the native handle.
func (s *GradientShader) Native() *Resurrectable[skia.Shader] { return s.native }

// Dispose releases the native handle permanently.
func (s *GradientShader) Dispose() {
	s.native.Dispose()
}

type gradientNative struct {
	s *GradientShader
}

func (n gradientNative) CreateDefault() (skia.Shader, error) {
	return n.build()
}

func (n gradientNative) Resurrect() (skia.Shader, error) {
	return n.build()
}

func (n gradientNative) Release(h skia.Shader) {
	h.Delete()
}

func (n gradientNative) build() (skia.Shader, error) {
	g := &n.s.gradient
	colors := make([]uint32, len(g.Stops))
	positions := make([]float32, len(g.Stops))
	for i, stop := range g.Stops {
		colors[i] = uint32(stop.Color)
		positions[i] = float32(stop.Position)
	}
	engine := n.s.ctx.engine
	tile := toSkTileMode(n.s.tile)
	if g.Type == GradientTypeRadial {
		return engine.NewRadialGradient(float32(g.Center.X), float32(g.Center.Y), float32(g.Radius), colors, positions, tile)
	}
	return engine.NewLinearGradient(float32(g.Start.X), float32(g.Start.Y), float32(g.End.X), float32(g.End.Y), colors, positions, tile)
}
