package graphics

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-drift/skpaint/pkg/skia"
)

// UniformType is the declared type of a shader uniform. Values match the
// type codes of the shader asset format.
type UniformType int

const (
	UniformBool UniformType = iota
	UniformInt8
	UniformUint8
	UniformInt16
	UniformUint16
	UniformInt32
	UniformUint32
	UniformInt64
	UniformUint64
	UniformFloat16
	UniformFloat32
	UniformFloat64
	UniformSampledImage
)

var uniformTypeNames = [...]string{
	"bool", "int8", "uint8", "int16", "uint16", "int32", "uint32",
	"int64", "uint64", "float16", "float32", "float64", "sampled_image",
}

func (t UniformType) String() string {
	if t >= 0 && int(t) < len(uniformTypeNames) {
		return uniformTypeNames[t]
	}
	return fmt.Sprintf("UniformType(%d)", int(t))
}

// Uniform is one entry of a UniformLayout.
type Uniform struct {
	Name     string
	Type     UniformType
	Location int
	// BitWidth is the declared size in bits; zero for sampled images.
	BitWidth int
}

// FloatSlots returns the number of 32-bit float slots the uniform occupies.
func (u Uniform) FloatSlots() int {
	if u.Type == UniformSampledImage {
		return 0
	}
	return u.BitWidth / 32
}

// UniformLayout is the immutable, ordered uniform table of a shader
// program. It is shared by every FragmentShader of the program.
type UniformLayout struct {
	uniforms     []Uniform
	floatCount   int
	textureCount int
}

// Len returns the number of uniforms.
func (l *UniformLayout) Len() int { return len(l.uniforms) }

// Uniforms returns a copy of the uniform table in declaration order.
func (l *UniformLayout) Uniforms() []Uniform {
	return append([]Uniform(nil), l.uniforms...)
}

// FloatCount returns the number of float slots declared by non-image
// uniforms.
func (l *UniformLayout) FloatCount() int { return l.floatCount }

// TextureCount returns the number of sampled-image uniforms.
func (l *UniformLayout) TextureCount() int { return l.textureCount }

// Lookup finds a uniform by name.
func (l *UniformLayout) Lookup(name string) (Uniform, bool) {
	for _, u := range l.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

// FloatOffset returns the first float slot of a non-image uniform. Float
// slots are assigned in declaration order.
func (l *UniformLayout) FloatOffset(name string) (int, bool) {
	offset := 0
	for _, u := range l.uniforms {
		if u.Name == name {
			return offset, u.Type != UniformSampledImage
		}
		offset += u.FloatSlots()
	}
	return 0, false
}

// SamplerIndex returns the texture slot of a sampled-image uniform.
func (l *UniformLayout) SamplerIndex(name string) (int, bool) {
	index := 0
	for _, u := range l.uniforms {
		if u.Type != UniformSampledImage {
			continue
		}
		if u.Name == name {
			return index, true
		}
		index++
	}
	return 0, false
}

// FormatError reports a malformed shader asset. No partial program is ever
// produced alongside it.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid Shader Data: %s: %v", e.Reason, e.Err)
	}
	return "Invalid Shader Data: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// ShaderAsset is a parsed shader asset: SkSL source plus its uniform layout.
type ShaderAsset struct {
	SkSL   string
	Layout UniformLayout
}

type rawAsset struct {
	SkSL     *string         `json:"sksl"`
	Uniforms json.RawMessage `json:"uniforms"`
}

type rawUniform struct {
	Name     *string `json:"name"`
	Location *int    `json:"location"`
	Type     *int    `json:"type"`
	BitWidth *int    `json:"bit_width"`
}

// ParseShaderAsset decodes a UTF-8 JSON shader asset of the form
//
//	{"sksl": "...", "uniforms": [{"name": "u", "location": 0, "type": 10, "bit_width": 32}]}
//
// Every uniform needs name, location and type; all types except sampled
// images (type 12) also need bit_width. Locations must be unique and
// non-negative. Any deviation yields a *FormatError.
func ParseShaderAsset(data []byte) (*ShaderAsset, error) {
	if !utf8.Valid(data) {
		return nil, formatErrorf("asset is not valid UTF-8")
	}
	var raw rawAsset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: "asset is not a JSON object of the expected shape", Err: err}
	}
	if raw.SkSL == nil {
		return nil, formatErrorf("missing sksl")
	}
	if len(raw.Uniforms) == 0 || string(raw.Uniforms) == "null" {
		return nil, formatErrorf("missing uniforms")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw.Uniforms, &entries); err != nil {
		return nil, &FormatError{Reason: "uniforms is not a list", Err: err}
	}

	asset := &ShaderAsset{SkSL: *raw.SkSL}
	layout := &asset.Layout
	layout.uniforms = make([]Uniform, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for i, entry := range entries {
		u, err := parseUniform(entry)
		if err != nil {
			err.Reason = fmt.Sprintf("uniform %d: %s", i, err.Reason)
			return nil, err
		}
		if prev, dup := seen[u.Location]; dup {
			return nil, formatErrorf("uniform %q reuses location %d of %q", u.Name, u.Location, prev)
		}
		seen[u.Location] = u.Name
		if u.Type == UniformSampledImage {
			layout.textureCount++
		} else {
			layout.floatCount += u.FloatSlots()
		}
		layout.uniforms = append(layout.uniforms, u)
	}
	return asset, nil
}

func parseUniform(entry json.RawMessage) (Uniform, *FormatError) {
	var raw rawUniform
	if err := json.Unmarshal(entry, &raw); err != nil {
		return Uniform{}, &FormatError{Reason: "not an object of the expected shape", Err: err}
	}
	switch {
	case raw.Name == nil:
		return Uniform{}, formatErrorf("missing name")
	case raw.Location == nil:
		return Uniform{}, formatErrorf("missing location")
	case raw.Type == nil:
		return Uniform{}, formatErrorf("missing type")
	}
	u := Uniform{Name: *raw.Name, Location: *raw.Location, Type: UniformType(*raw.Type)}
	if u.Location < 0 {
		return Uniform{}, formatErrorf("negative location %d", u.Location)
	}
	if u.Type < UniformBool || u.Type > UniformSampledImage {
		return Uniform{}, formatErrorf("unknown type code %d", *raw.Type)
	}
	if u.Type != UniformSampledImage {
		if raw.BitWidth == nil {
			return Uniform{}, formatErrorf("missing bit_width")
		}
		if *raw.BitWidth < 0 {
			return Uniform{}, formatErrorf("negative bit_width %d", *raw.BitWidth)
		}
		u.BitWidth = *raw.BitWidth
	}
	return u, nil
}

// FragmentProgram is a shader asset bound to a Context. Its runtime effect
// is compiled lazily and resurrected after context loss.
type FragmentProgram struct {
	ctx    *Context
	name   string
	asset  *ShaderAsset
	effect *Resurrectable[skia.RuntimeEffect]
}

// NewFragmentProgram parses data as a shader asset and binds it to c.
// Name identifies the program in errors.
func (c *Context) NewFragmentProgram(name string, data []byte) (*FragmentProgram, error) {
	asset, err := ParseShaderAsset(data)
	if err != nil {
		return nil, err
	}
	return c.LoadFragmentProgram(name, asset), nil
}

// LoadFragmentProgram binds an already parsed asset to c.
func (c *Context) LoadFragmentProgram(name string, asset *ShaderAsset) *FragmentProgram {
	p := &FragmentProgram{ctx: c, name: name, asset: asset}
	p.effect = NewResurrectable[skia.RuntimeEffect](c, "runtimeEffect", effectNative{p})
	return p
}

// Name returns the program name.
func (p *FragmentProgram) Name() string { return p.name }

// SkSL returns the program source.
func (p *FragmentProgram) SkSL() string { return p.asset.SkSL }

// Layout returns the shared uniform layout.
func (p *FragmentProgram) Layout() *UniformLayout { return &p.asset.Layout }

// Compile builds the runtime effect now instead of on first use.
func (p *FragmentProgram) Compile() error {
	_, err := p.effect.Handle()
	return err
}

// Dispose releases the runtime effect. Shaders created from the program
// must be disposed first.
func (p *FragmentProgram) Dispose() {
	p.effect.Dispose()
}

// FragmentShader returns a fresh instance with zeroed uniforms and no
// samplers bound.
func (p *FragmentProgram) FragmentShader() *FragmentShader {
	l := p.Layout()
	return &FragmentShader{
		program:  p,
		floats:   make([]float32, l.FloatCount()+2*l.TextureCount()),
		samplers: make([]*ImageShader, l.TextureCount()),
	}
}

var errCompile = errors.New("graphics: runtime effect compilation failed")

type effectNative struct {
	p *FragmentProgram
}

func (n effectNative) CreateDefault() (skia.RuntimeEffect, error) {
	return n.build()
}

func (n effectNative) Resurrect() (skia.RuntimeEffect, error) {
	return n.build()
}

func (n effectNative) Release(h skia.RuntimeEffect) {
	h.Delete()
}

func (n effectNative) build() (skia.RuntimeEffect, error) {
	e, err := n.p.ctx.engine.NewRuntimeEffect(n.p.asset.SkSL)
	if err != nil {
		return nil, fmt.Errorf("%w: program %q: %w", errCompile, n.p.name, err)
	}
	return e, nil
}
