package graphics

import (
	"errors"
	"fmt"

	"github.com/go-drift/skpaint/pkg/skia"
)

// ErrUniformIndex is returned by FragmentShader setters for indices outside
// the uniform arrays when Options.StrictUniformBounds is set.
var ErrUniformIndex = errors.New("graphics: uniform index out of range")

var errNilSampler = errors.New("graphics: nil sampler")

// FragmentShader holds per-draw uniform values for a FragmentProgram.
//
// The float array has FloatCount + 2*TextureCount slots: the trailing pairs
// receive the width and height of each bound sampler. Use CreateShader, or
// pass the instance to Paint.SetShader via ShaderTemplate, to obtain a
// native shader from the current values.
type FragmentShader struct {
	program  *FragmentProgram
	floats   []float32
	samplers []*ImageShader
	disposed bool
}

// Program returns the program the instance was created from.
func (s *FragmentShader) Program() *FragmentProgram { return s.program }

func (s *FragmentShader) strict() bool {
	return s.program.ctx.opts.StrictUniformBounds
}

// SetFloat writes value to float slot index.
func (s *FragmentShader) SetFloat(index int, value float64) error {
	if s.strict() && (index < 0 || index >= len(s.floats)) {
		return fmt.Errorf("%w: float %d of %d", ErrUniformIndex, index, len(s.floats))
	}
	s.floats[index] = float32(value)
	return nil
}

// SetSampler binds sampler to texture slot index and writes its width and
// height to float slots FloatCount+2*index and FloatCount+2*index+1.
func (s *FragmentShader) SetSampler(index int, sampler *ImageShader) error {
	if sampler == nil {
		return errNilSampler
	}
	if s.strict() && (index < 0 || index >= len(s.samplers)) {
		return fmt.Errorf("%w: sampler %d of %d", ErrUniformIndex, index, len(s.samplers))
	}
	s.samplers[index] = sampler
	slot := s.program.Layout().FloatCount() + 2*index
	s.floats[slot] = float32(sampler.Width())
	s.floats[slot+1] = float32(sampler.Height())
	return nil
}

// Floats returns a copy of the float uniform values.
func (s *FragmentShader) Floats() []float32 {
	return append([]float32(nil), s.floats...)
}

// Sampler returns the sampler bound at index, or nil.
func (s *FragmentShader) Sampler(index int) *ImageShader {
	if index < 0 || index >= len(s.samplers) {
		return nil
	}
	return s.samplers[index]
}

// Dispose marks the instance disposed. Calling it again has no effect.
func (s *FragmentShader) Dispose() {
	s.disposed = true
}

// DebugDisposed reports whether Dispose was called.
func (s *FragmentShader) DebugDisposed() bool { return s.disposed }

// CreateShader snapshots the current uniform values into a new
// RuntimeShader and builds its native shader. The caller owns the result.
func (s *FragmentShader) CreateShader() (*RuntimeShader, error) {
	if s.disposed {
		return nil, fmt.Errorf("fragment shader %q: %w", s.program.name, ErrDisposed)
	}
	r := &RuntimeShader{
		program:  s.program,
		floats:   s.Floats(),
		samplers: append([]*ImageShader(nil), s.samplers...),
	}
	r.native = NewResurrectable[skia.Shader](s.program.ctx, "runtimeShader", runtimeShaderNative{r})
	if _, err := r.native.Handle(); err != nil {
		r.native.Dispose()
		return nil, err
	}
	return r, nil
}

// ShaderBuildError reports uniform data rejected by the native engine.
type ShaderBuildError struct {
	Program  string
	Floats   []float32
	Samplers []string
	Err      error
}

func (e *ShaderBuildError) Error() string {
	return fmt.Sprintf("graphics: invalid uniform data for shader program %q: floats=%v samplers=%v: %v",
		e.Program, e.Floats, e.Samplers, e.Err)
}

func (e *ShaderBuildError) Unwrap() error { return e.Err }

// RuntimeShader is an immutable realization of a FragmentShader. Filter
// quality does not affect it; samplers use their own quality.
type RuntimeShader struct {
	program  *FragmentProgram
	floats   []float32
	samplers []*ImageShader
	native   *Resurrectable[skia.Shader]
}

// Program returns the program the shader was realized from.
func (r *RuntimeShader) Program() *FragmentProgram { return r.program }

// Floats returns a copy of the snapshotted float uniforms.
func (r *RuntimeShader) Floats() []float32 {
	return append([]float32(nil), r.floats...)
}

// NativeShader implements Shader.
func (r *RuntimeShader) NativeShader(FilterQuality) (skia.Shader, error) {
	return r.native.Handle()
}

// Native exposes the lifecycle of the native handle.
func (r *RuntimeShader) Native() *Resurrectable[skia.Shader] { return r.native }

// Dispose releases the native handle permanently. Samplers are borrowed
// and stay alive.
func (r *RuntimeShader) Dispose() {
	r.native.Dispose()
}

type runtimeShaderNative struct {
	r *RuntimeShader
}

func (n runtimeShaderNative) CreateDefault() (skia.Shader, error) {
	return n.build()
}

func (n runtimeShaderNative) Resurrect() (skia.Shader, error) {
	return n.build()
}

func (n runtimeShaderNative) Release(h skia.Shader) {
	h.Delete()
}

func (n runtimeShaderNative) build() (skia.Shader, error) {
	r := n.r
	effect, err := r.program.effect.Handle()
	if err != nil {
		return nil, err
	}
	if len(r.samplers) == 0 {
		sh, err := effect.MakeShader(r.floats)
		if err != nil {
			return nil, r.buildError(err)
		}
		return sh, nil
	}
	children := make([]skia.Shader, len(r.samplers))
	for i, sampler := range r.samplers {
		if sampler == nil {
			return nil, r.buildError(fmt.Errorf("sampler %d is not bound", i))
		}
		if children[i], err = sampler.NativeShader(sampler.Quality()); err != nil {
			return nil, r.buildError(err)
		}
	}
	sh, err := effect.MakeShaderWithChildren(r.floats, children)
	if err != nil {
		return nil, r.buildError(err)
	}
	return sh, nil
}

func (r *RuntimeShader) buildError(err error) *ShaderBuildError {
	samplers := make([]string, len(r.samplers))
	for i, s := range r.samplers {
		if s == nil {
			samplers[i] = "<unbound>"
		} else {
			samplers[i] = fmt.Sprintf("%dx%d", s.Width(), s.Height())
		}
	}
	return &ShaderBuildError{
		Program:  r.program.name,
		Floats:   r.Floats(),
		Samplers: samplers,
		Err:      err,
	}
}
