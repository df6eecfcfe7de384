package graphics

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-drift/skpaint/pkg/skia"
)

func TestImageShader_RebuildsOnQualityChange(t *testing.T) {
	ctx, rec := newTestContext(t)
	s := ctx.NewImageShader(testImage(2, 2), TileModeRepeat, TileModeClamp, FilterQualityLow)
	defer s.Dispose()

	h1, err := s.NativeShader(FilterQualityLow)
	if err != nil {
		t.Fatalf("NativeShader: %v", err)
	}
	h2, err := s.NativeShader(FilterQualityLow)
	if err != nil {
		t.Fatalf("NativeShader: %v", err)
	}
	if h1 != h2 {
		t.Error("shader rebuilt at unchanged quality")
	}

	h3, err := s.NativeShader(FilterQualityNone)
	if err != nil {
		t.Fatalf("NativeShader: %v", err)
	}
	if h3 == h1 {
		t.Error("shader not rebuilt at new quality")
	}
	if got := len(rec.CallsTo("NewImageShader")); got != 2 {
		t.Errorf("NewImageShader calls = %d, want 2", got)
	}
	if got := rec.LiveCount(); got != 1 {
		t.Errorf("LiveCount = %d, want 1: %v", got, rec.Live())
	}
	if s.Quality() != FilterQualityLow {
		t.Errorf("Quality = %v, want the sampler quality to be unchanged", s.Quality())
	}
}

func TestImageShader_PixelConversion(t *testing.T) {
	ctx, rec := newTestContext(t)
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{R: 0xFF, A: 0xFF})
	src.Set(6, 5, color.RGBA{G: 0x40, A: 0xFF})

	s := ctx.NewImageShader(src, TileModeClamp, TileModeClamp, FilterQualityNone)
	defer s.Dispose()
	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", s.Width(), s.Height())
	}
	want := []byte{0xFF, 0, 0, 0xFF, 0, 0x40, 0, 0xFF}
	if !bytes.Equal(s.image.Pixels, want) {
		t.Errorf("pixels = %v, want %v", s.image.Pixels, want)
	}
	if _, err := s.NativeShader(FilterQualityNone); err != nil {
		t.Fatalf("NativeShader: %v", err)
	}
	calls := rec.CallsTo("NewImageShader")
	if len(calls) != 1 || calls[0].Args[0] != 2 || calls[0].Args[1] != 1 {
		t.Errorf("calls = %v", calls)
	}
}

func TestDecodeImageShader(t *testing.T) {
	ctx, _ := newTestContext(t)
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(3, 4)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	s, err := ctx.DecodeImageShader(buf.Bytes(), TileModeClamp, TileModeClamp, FilterQualityMedium)
	if err != nil {
		t.Fatalf("DecodeImageShader: %v", err)
	}
	defer s.Dispose()
	if s.Width() != 3 || s.Height() != 4 || s.Quality() != FilterQualityMedium {
		t.Errorf("decoded %dx%d at %v", s.Width(), s.Height(), s.Quality())
	}

	if _, err := ctx.DecodeImageShader([]byte("not an image"), TileModeClamp, TileModeClamp, FilterQualityNone); err == nil {
		t.Error("expected decode error")
	}
}

func TestToSkSampling(t *testing.T) {
	tests := []struct {
		q    FilterQuality
		want skia.Sampling
	}{
		{FilterQualityNone, skia.Sampling{Filter: skia.FilterModeNearest}},
		{FilterQualityLow, skia.Sampling{Filter: skia.FilterModeLinear}},
		{FilterQualityMedium, skia.Sampling{Filter: skia.FilterModeLinear, Mipmap: skia.MipmapModeLinear}},
		{FilterQualityHigh, skia.Sampling{Cubic: true, B: 1.0 / 3, C: 1.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.q.String(), func(t *testing.T) {
			if got := toSkSampling(tt.q); got != tt.want {
				t.Errorf("toSkSampling(%v) = %+v, want %+v", tt.q, got, tt.want)
			}
		})
	}
}
