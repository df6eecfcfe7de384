package skia

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// DefaultRecorderVersion is the version reported by a Recorder unless
// EngineVersion is set.
const DefaultRecorderVersion = "v1.0.0"

var errEmptyPayload = errors.New("skia: empty filter payload")

// Call is a single native call captured by a Recorder.
type Call struct {
	// Object names the receiver, e.g. "paint#3". Constructors are recorded
	// against the object they return.
	Object string
	Method string
	Args   []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s.%s(%s)", c.Object, c.Method, strings.Join(args, ", "))
}

// PaintState is the observable state of a recorded paint. Bound objects are
// reported by description so that states built from different handles can
// be compared.
type PaintState struct {
	Color       uint32
	BlendMode   BlendMode
	Style       PaintStyle
	StrokeWidth float32
	StrokeCap   StrokeCap
	StrokeJoin  StrokeJoin
	StrokeMiter float32
	AntiAlias   bool
	Shader      string
	MaskFilter  string
	ColorFilter string
	ImageFilter string
}

func defaultPaintState() PaintState {
	return PaintState{
		Color:       DefaultColor,
		BlendMode:   BlendModeSrcOver,
		StrokeMiter: DefaultStrokeMiter,
	}
}

// Recorder is an Engine that keeps every native object in memory and logs
// each call made against it. It is used on platforms without a native Skia
// build and by tests that need to observe native traffic.
//
// Using a handle after Delete, or deleting it twice, panics.
type Recorder struct {
	// EngineVersion is reported by Version.
	EngineVersion string

	// UniformFloats maps SkSL source to the number of uniform floats the
	// compiled effect accepts. Sources without an entry accept any length.
	UniformFloats map[string]int

	// CompileErrors maps SkSL source to the error NewRuntimeEffect returns.
	CompileErrors map[string]error

	nextID int
	calls  []Call
	live   map[string]struct{}
}

var _ Engine = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		EngineVersion: DefaultRecorderVersion,
		live:          make(map[string]struct{}),
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (r *Recorder) CallCount() int {
	return len(r.calls)
}

// CallsTo returns the recorded calls with the given method name.
func (r *Recorder) CallsTo(method string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log. Live objects are unaffected.
func (r *Recorder) ResetCalls() {
	r.calls = r.calls[:0]
}

// Live returns the names of objects that have not been deleted, sorted.
func (r *Recorder) Live() []string {
	out := make([]string, 0, len(r.live))
	for name := range r.live {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LiveCount returns the number of objects that have not been deleted.
func (r *Recorder) LiveCount() int {
	return len(r.live)
}

// PaintState returns the current state of a paint created by r.
func (r *Recorder) PaintState(p Paint) (PaintState, bool) {
	rp, ok := p.(*recordedPaint)
	if !ok || rp.rec != r {
		return PaintState{}, false
	}
	return rp.state, true
}

// Describe returns the description of a native object created by r, or ""
// for nil and foreign objects.
func (r *Recorder) Describe(obj any) string {
	return describe(obj)
}

// Version implements Engine.
func (r *Recorder) Version() string {
	if r.EngineVersion == "" {
		return DefaultRecorderVersion
	}
	return r.EngineVersion
}

func (r *Recorder) newObject(kind, desc string) object {
	r.nextID++
	o := object{rec: r, name: fmt.Sprintf("%s#%d", kind, r.nextID), desc: desc}
	if r.live == nil {
		r.live = make(map[string]struct{})
	}
	r.live[o.name] = struct{}{}
	return o
}

func (r *Recorder) record(object, method string, args ...any) {
	r.calls = append(r.calls, Call{Object: object, Method: method, Args: args})
}

// NewPaint implements Engine.
func (r *Recorder) NewPaint() (Paint, error) {
	p := &recordedPaint{object: r.newObject("paint", "paint"), state: defaultPaintState()}
	r.record(p.name, "NewPaint")
	return p, nil
}

// NewColorFilter implements Engine.
func (r *Recorder) NewColorFilter(data []float32) (ColorFilter, error) {
	if len(data) == 0 {
		return nil, errEmptyPayload
	}
	f := &recordedColorFilter{r.newObject("colorFilter", fmt.Sprintf("colorFilter%v", data))}
	r.record(f.name, "NewColorFilter", data)
	return f, nil
}

// NewComposeColorFilter implements Engine.
func (r *Recorder) NewComposeColorFilter(outer, inner ColorFilter) (ColorFilter, error) {
	o, err := r.own(outer)
	if err != nil {
		return nil, fmt.Errorf("skia: compose outer: %w", err)
	}
	i, err := r.own(inner)
	if err != nil {
		return nil, fmt.Errorf("skia: compose inner: %w", err)
	}
	f := &recordedColorFilter{r.newObject("colorFilter", fmt.Sprintf("compose(%s,%s)", o.desc, i.desc))}
	r.record(f.name, "NewComposeColorFilter", o.name, i.name)
	return f, nil
}

// NewBlurMaskFilter implements Engine.
func (r *Recorder) NewBlurMaskFilter(style BlurStyle, sigma float32, respectCTM bool) (MaskFilter, error) {
	if !(sigma > 0) || sigma-sigma != 0 {
		r.record("engine", "NewBlurMaskFilter", style, sigma, respectCTM)
		return nil, nil
	}
	f := &recordedMaskFilter{r.newObject("maskFilter", fmt.Sprintf("blur(%d,%g,%t)", style, sigma, respectCTM))}
	r.record(f.name, "NewBlurMaskFilter", style, sigma, respectCTM)
	return f, nil
}

// NewImageFilter implements Engine.
func (r *Recorder) NewImageFilter(data []float32) (ImageFilter, error) {
	if len(data) == 0 {
		return nil, errEmptyPayload
	}
	f := &recordedImageFilter{r.newObject("imageFilter", fmt.Sprintf("imageFilter%v", data))}
	r.record(f.name, "NewImageFilter", data)
	return f, nil
}

// NewRuntimeEffect implements Engine.
func (r *Recorder) NewRuntimeEffect(sksl string) (RuntimeEffect, error) {
	if err := r.CompileErrors[sksl]; err != nil {
		r.record("engine", "NewRuntimeEffect", sksl)
		return nil, err
	}
	h := fnv.New32a()
	h.Write([]byte(sksl))
	e := &recordedEffect{object: r.newObject("effect", fmt.Sprintf("%08x", h.Sum32())), sksl: sksl}
	r.record(e.name, "NewRuntimeEffect", e.desc)
	return e, nil
}

// NewImageShader implements Engine.
func (r *Recorder) NewImageShader(img ImageData, tileX, tileY TileMode, sampling Sampling) (Shader, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pixels) != img.Width*img.Height*4 {
		return nil, fmt.Errorf("skia: invalid image %dx%d with %d bytes", img.Width, img.Height, len(img.Pixels))
	}
	desc := fmt.Sprintf("image(%dx%d,%d,%d,%+v)", img.Width, img.Height, tileX, tileY, sampling)
	s := &recordedShader{r.newObject("shader", desc)}
	r.record(s.name, "NewImageShader", img.Width, img.Height, tileX, tileY, sampling)
	return s, nil
}

// NewLinearGradient implements Engine.
func (r *Recorder) NewLinearGradient(x0, y0, x1, y1 float32, colors []uint32, positions []float32, tile TileMode) (Shader, error) {
	if err := checkStops(colors, positions); err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("linear(%g,%g,%g,%g,%x,%v,%d)", x0, y0, x1, y1, colors, positions, tile)
	s := &recordedShader{r.newObject("shader", desc)}
	r.record(s.name, "NewLinearGradient", x0, y0, x1, y1, colors, positions, tile)
	return s, nil
}

// NewRadialGradient implements Engine.
func (r *Recorder) NewRadialGradient(cx, cy, radius float32, colors []uint32, positions []float32, tile TileMode) (Shader, error) {
	if err := checkStops(colors, positions); err != nil {
		return nil, err
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("skia: invalid gradient radius %g", radius)
	}
	desc := fmt.Sprintf("radial(%g,%g,%g,%x,%v,%d)", cx, cy, radius, colors, positions, tile)
	s := &recordedShader{r.newObject("shader", desc)}
	r.record(s.name, "NewRadialGradient", cx, cy, radius, colors, positions, tile)
	return s, nil
}

func checkStops(colors []uint32, positions []float32) error {
	if len(colors) < 2 {
		return fmt.Errorf("skia: gradient needs at least 2 colors, got %d", len(colors))
	}
	if positions != nil && len(positions) != len(colors) {
		return fmt.Errorf("skia: gradient has %d colors but %d positions", len(colors), len(positions))
	}
	return nil
}

// own returns the recorded object behind a handle, rejecting foreign and
// deleted handles.
func (r *Recorder) own(h any) (*object, error) {
	d, ok := h.(described)
	if !ok {
		return nil, fmt.Errorf("skia: foreign handle %T", h)
	}
	o := d.base()
	if o.rec != r {
		return nil, errors.New("skia: handle belongs to another engine")
	}
	if o.deleted {
		return nil, fmt.Errorf("skia: %s used after delete", o.name)
	}
	return o, nil
}

type described interface {
	base() *object
}

func describe(h any) string {
	if h == nil {
		return ""
	}
	d, ok := h.(described)
	if !ok {
		return ""
	}
	return d.base().desc
}

type object struct {
	rec     *Recorder
	name    string
	desc    string
	deleted bool
}

func (o *object) base() *object { return o }

func (o *object) mustLive(method string) {
	if o.deleted {
		panic(fmt.Sprintf("skia: %s.%s called after delete", o.name, method))
	}
}

func (o *object) Delete() {
	if o.deleted {
		panic(fmt.Sprintf("skia: %s deleted twice", o.name))
	}
	o.deleted = true
	delete(o.rec.live, o.name)
	o.rec.record(o.name, "Delete")
}

type recordedPaint struct {
	object
	state PaintState
}

func (p *recordedPaint) set(method string, arg any) {
	p.mustLive(method)
	p.rec.record(p.name, method, arg)
}

// bound describes an object being attached to p, panicking on deleted ones.
func (p *recordedPaint) bound(method string, h any) string {
	if h == nil {
		p.set(method, "<nil>")
		return ""
	}
	o, err := p.rec.own(h)
	if err != nil {
		panic(err.Error())
	}
	p.set(method, o.name)
	return o.desc
}

func (p *recordedPaint) SetColor(argb uint32) {
	p.set("SetColor", fmt.Sprintf("%#08x", argb))
	p.state.Color = argb
}

func (p *recordedPaint) SetBlendMode(mode BlendMode) {
	p.set("SetBlendMode", mode)
	p.state.BlendMode = mode
}

func (p *recordedPaint) SetStyle(style PaintStyle) {
	p.set("SetStyle", style)
	p.state.Style = style
}

func (p *recordedPaint) SetStrokeWidth(width float32) {
	p.set("SetStrokeWidth", width)
	p.state.StrokeWidth = width
}

func (p *recordedPaint) SetStrokeCap(cap StrokeCap) {
	p.set("SetStrokeCap", cap)
	p.state.StrokeCap = cap
}

func (p *recordedPaint) SetStrokeJoin(join StrokeJoin) {
	p.set("SetStrokeJoin", join)
	p.state.StrokeJoin = join
}

func (p *recordedPaint) SetStrokeMiter(limit float32) {
	p.set("SetStrokeMiter", limit)
	p.state.StrokeMiter = limit
}

func (p *recordedPaint) SetAntiAlias(aa bool) {
	p.set("SetAntiAlias", aa)
	p.state.AntiAlias = aa
}

func (p *recordedPaint) SetShader(shader Shader) {
	p.state.Shader = p.bound("SetShader", nilIfTyped(shader))
}

func (p *recordedPaint) SetMaskFilter(filter MaskFilter) {
	p.state.MaskFilter = p.bound("SetMaskFilter", nilIfTyped(filter))
}

func (p *recordedPaint) SetColorFilter(filter ColorFilter) {
	p.state.ColorFilter = p.bound("SetColorFilter", nilIfTyped(filter))
}

func (p *recordedPaint) SetImageFilter(filter ImageFilter) {
	p.state.ImageFilter = p.bound("SetImageFilter", nilIfTyped(filter))
}

// nilIfTyped collapses typed nil pointers into an untyped nil.
func nilIfTyped(h any) any {
	switch v := h.(type) {
	case *recordedShader:
		if v == nil {
			return nil
		}
	case *recordedColorFilter:
		if v == nil {
			return nil
		}
	case *recordedMaskFilter:
		if v == nil {
			return nil
		}
	case *recordedImageFilter:
		if v == nil {
			return nil
		}
	}
	return h
}

type recordedShader struct{ object }

type recordedColorFilter struct{ object }

type recordedMaskFilter struct{ object }

type recordedImageFilter struct{ object }

type recordedEffect struct {
	object
	sksl string
}

func (e *recordedEffect) MakeShader(uniforms []float32) (Shader, error) {
	return e.MakeShaderWithChildren(uniforms, nil)
}

func (e *recordedEffect) MakeShaderWithChildren(uniforms []float32, children []Shader) (Shader, error) {
	e.mustLive("MakeShader")
	if want, ok := e.rec.UniformFloats[e.sksl]; ok && want != len(uniforms) {
		return nil, fmt.Errorf("skia: effect %s expects %d uniform floats, got %d", e.desc, want, len(uniforms))
	}
	names := make([]string, len(children))
	descs := make([]string, len(children))
	for i, c := range children {
		if nilIfTyped(c) == nil {
			return nil, fmt.Errorf("skia: effect %s child %d is nil", e.desc, i)
		}
		o, err := e.rec.own(c)
		if err != nil {
			return nil, err
		}
		names[i] = o.name
		descs[i] = o.desc
	}
	uniformsCopy := append([]float32(nil), uniforms...)
	desc := fmt.Sprintf("runtime(%s,%v,[%s])", e.desc, uniformsCopy, strings.Join(descs, ";"))
	s := &recordedShader{e.rec.newObject("shader", desc)}
	if len(children) == 0 {
		e.rec.record(s.name, "MakeShader", e.name, uniformsCopy)
	} else {
		e.rec.record(s.name, "MakeShaderWithChildren", e.name, uniformsCopy, names)
	}
	return s, nil
}
