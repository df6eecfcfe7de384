package graphics

import "github.com/go-drift/skpaint/pkg/skia"

// Shader is a native-backed shader that can be bound to a Paint.
// Implementations: *ImageShader, *GradientShader and *RuntimeShader.
type Shader interface {
	// NativeShader returns the native shader rendered at quality q.
	// Shaders that do not sample images ignore q.
	NativeShader(q FilterQuality) (skia.Shader, error)
}

type shaderSourceKind int

const (
	shaderSourceNone shaderSourceKind = iota
	shaderSourceReady
	shaderSourceTemplate
)

// ShaderSource is the argument of Paint.SetShader: nothing, a ready Shader,
// or a FragmentShader template that the paint realizes into a new
// RuntimeShader.
type ShaderSource struct {
	kind     shaderSourceKind
	shader   Shader
	template *FragmentShader
}

// NoShader clears the paint's shader.
func NoShader() ShaderSource {
	return ShaderSource{}
}

// ShaderOf wraps a ready shader. The paint borrows it; the caller keeps
// ownership. A nil shader is equivalent to NoShader.
func ShaderOf(s Shader) ShaderSource {
	if s == nil {
		return NoShader()
	}
	return ShaderSource{kind: shaderSourceReady, shader: s}
}

// ShaderTemplate wraps a fragment shader whose current uniform values are
// snapshotted into a paint-owned RuntimeShader. A nil template is
// equivalent to NoShader.
func ShaderTemplate(fs *FragmentShader) ShaderSource {
	if fs == nil {
		return NoShader()
	}
	return ShaderSource{kind: shaderSourceTemplate, template: fs}
}
