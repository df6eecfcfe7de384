package graphics

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeImageShader
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/go-drift/skpaint/pkg/skia"
)

// ImageShader samples an image. It is rebuilt whenever it is requested at
// a filter quality different from the one it was built at.
type ImageShader struct {
	ctx     *Context
	image   skia.ImageData
	tileX   TileMode
	tileY   TileMode
	quality FilterQuality
	builtAt FilterQuality
	native  *Resurrectable[skia.Shader]
}

// NewImageShader returns a shader sampling img. Quality is the sampling
// used when the shader is bound as a fragment shader sampler.
func (c *Context) NewImageShader(img image.Image, tileX, tileY TileMode, quality FilterQuality) *ImageShader {
	s := &ImageShader{
		ctx:     c,
		image:   toImageData(img),
		tileX:   tileX,
		tileY:   tileY,
		quality: quality,
		builtAt: quality,
	}
	s.native = NewResurrectable[skia.Shader](c, "imageShader", imageShaderNative{s})
	return s
}

// DecodeImageShader decodes a PNG, JPEG, BMP or WebP image and returns a
// shader sampling it.
func (c *Context) DecodeImageShader(data []byte, tileX, tileY TileMode, quality FilterQuality) (*ImageShader, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("graphics: decode image: %w", err)
	}
	Logger().Debug("graphics: decoded sampler image", "format", format, "bounds", img.Bounds())
	return c.NewImageShader(img, tileX, tileY, quality), nil
}

// Width returns the image width in pixels.
func (s *ImageShader) Width() int { return s.image.Width }

// Height returns the image height in pixels.
func (s *ImageShader) Height() int { return s.image.Height }

// Quality returns the sampling quality used as a fragment shader sampler.
func (s *ImageShader) Quality() FilterQuality { return s.quality }

// NativeShader implements Shader.
func (s *ImageShader) NativeShader(q FilterQuality) (skia.Shader, error) {
	if h, ok := s.native.Live(); ok && s.builtAt == q {
		return h, nil
	}
	s.native.Delete()
	s.builtAt = q
	return s.native.Handle()
}

// Native exposes the lifecycle of the native handle.
func (s *ImageShader) Native() *Resurrectable[skia.Shader] { return s.native }

// Dispose releases the native handle permanently.
func (s *ImageShader) Dispose() {
	s.native.Dispose()
}

type imageShaderNative struct {
	s *ImageShader
}

func (n imageShaderNative) CreateDefault() (skia.Shader, error) {
	return n.build()
}

func (n imageShaderNative) Resurrect() (skia.Shader, error) {
	return n.build()
}

func (n imageShaderNative) Release(h skia.Shader) {
	h.Delete()
}

func (n imageShaderNative) build() (skia.Shader, error) {
	s := n.s
	return s.ctx.engine.NewImageShader(s.image, toSkTileMode(s.tileX), toSkTileMode(s.tileY), toSkSampling(s.builtAt))
}

// toImageData converts img to unpremultiplied RGBA8.
func toImageData(img image.Image) skia.ImageData {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return skia.ImageData{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: append([]byte(nil), nrgba.Pix[:b.Dx()*b.Dy()*4]...),
	}
}
