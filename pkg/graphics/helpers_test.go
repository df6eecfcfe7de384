package graphics

import (
	"testing"

	"github.com/go-drift/skpaint/pkg/skia"
)

func newTestContext(t *testing.T) (*Context, *skia.Recorder) {
	t.Helper()
	rec := skia.NewRecorder()
	return NewContext(rec, DefaultOptions()), rec
}

func paintState(t *testing.T, rec *skia.Recorder, p *Paint) skia.PaintState {
	t.Helper()
	h, err := p.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	state, ok := rec.PaintState(h)
	if !ok {
		t.Fatal("paint handle not created by recorder")
	}
	return state
}

const floatAsset = `{"sksl":"half4 main(float2 p) { return half4(u1); }","uniforms":[{"name":"u1","location":0,"type":10,"bit_width":32}]}`

const samplerAsset = `{"sksl":"uniform shader tex; half4 main(float2 p) { return tex.eval(p); }","uniforms":[
	{"name":"scale","location":0,"type":10,"bit_width":32},
	{"name":"offset","location":1,"type":10,"bit_width":32},
	{"name":"tex","location":2,"type":12}
]}`
