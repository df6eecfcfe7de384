package graphics

import (
	"strings"
	"testing"
)

func TestBoxShadowElevation_Clamps(t *testing.T) {
	tests := []struct {
		level int
		blur  float64
	}{
		{-3, 3},
		{1, 3},
		{3, 10},
		{9, 18},
	}
	for _, tt := range tests {
		s := BoxShadowElevation(tt.level, ColorBlack)
		if s.BlurRadius != tt.blur || s.BlurStyle != BlurStyleOuter {
			t.Errorf("BoxShadowElevation(%d) = %+v, want blur %v", tt.level, s, tt.blur)
		}
	}
}

func TestBoxShadow_ApplyTo(t *testing.T) {
	ctx, rec := newTestContext(t)
	p := ctx.NewPaint()
	defer p.Dispose()

	s := BoxShadowElevation(2, 0x40000000)
	if err := s.ApplyTo(p); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if p.Color() != 0x40000000 || p.MaskFilter().Sigma != 3 {
		t.Errorf("paint color/sigma = %v/%v", p.Color(), p.MaskFilter().Sigma)
	}
	state := paintState(t, rec, p)
	if !strings.HasPrefix(state.MaskFilter, "blur(2,3,") {
		t.Errorf("native mask filter = %q", state.MaskFilter)
	}

	// A hard shadow binds no native mask filter.
	hard := NewBoxShadow(ColorBlack, 0)
	if err := hard.ApplyTo(p); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if state := paintState(t, rec, p); state.MaskFilter != "" {
		t.Errorf("native mask filter = %q, want none", state.MaskFilter)
	}
}

func TestTextShadow_ImageFilter(t *testing.T) {
	s := NewTextShadow(ColorRed, 4)
	f := s.ImageFilter()
	if f.Type != ImageFilterDropShadow || f.SigmaX != 2 || f.OffsetY != 2 || f.Color != ColorRed {
		t.Errorf("ImageFilter = %+v", f)
	}
	if (TextShadow{BlurRadius: -1}).Sigma() != 0 {
		t.Error("negative blur radius produced a sigma")
	}
}
