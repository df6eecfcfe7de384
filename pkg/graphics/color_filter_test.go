package graphics

import (
	"strings"
	"testing"
)

func TestManagedColorFilter_RefCounting(t *testing.T) {
	ctx, rec := newTestContext(t)
	f := ctx.NewColorFilter(ColorFilterTint(ColorRed, BlendModeSrcIn))
	if f.Refs() != 1 {
		t.Fatalf("Refs = %d, want 1", f.Refs())
	}
	if _, err := f.Handle(); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	f.Retain()
	f.Release()
	if f.Native().State() != StateLive {
		t.Errorf("state = %v, want live while referenced", f.Native().State())
	}
	f.Release()
	if f.Native().State() != StateDisposed {
		t.Errorf("state = %v, want disposed after last release", f.Native().State())
	}
	if got := rec.LiveCount(); got != 0 {
		t.Errorf("LiveCount = %d, want 0", got)
	}
	if got := ctx.TrackedObjects(); got != 0 {
		t.Errorf("TrackedObjects = %d, want 0", got)
	}
}

func TestManagedColorFilter_OverReleasePanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	f := ctx.NewColorFilter(ColorFilterGrayscale())
	f.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on over-release")
		}
	}()
	f.Release()
}

func TestManagedColorFilter_NilSafe(t *testing.T) {
	var f *ManagedColorFilter
	if f.Retain() != nil {
		t.Error("Retain on nil returned non-nil")
	}
	f.Release()
}

func TestComposeColorFilters(t *testing.T) {
	ctx, rec := newTestContext(t)
	outer := ctx.NewColorFilter(ColorFilterInvert())
	inner := ctx.NewColorFilter(ColorFilterGrayscale())

	c := ComposeColorFilters(outer, inner)
	if !c.IsComposed() || c.Outer() != outer || c.Inner() != inner {
		t.Fatal("composition does not expose its children")
	}
	if _, ok := c.Filter(); ok {
		t.Error("composition reported a single-node descriptor")
	}
	if outer.Refs() != 2 || inner.Refs() != 2 {
		t.Errorf("child refs = %d/%d, want 2/2", outer.Refs(), inner.Refs())
	}

	h, err := c.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if desc := rec.Describe(h); !strings.HasPrefix(desc, "compose(colorFilter[1") {
		t.Errorf("Describe = %q, want a compose of the matrix filters", desc)
	}

	// The caller's references go away first; the composition keeps the
	// children alive.
	outer.Release()
	inner.Release()
	if outer.Native().State() != StateLive || inner.Native().State() != StateLive {
		t.Error("children disposed while still composed")
	}

	c.Release()
	if got := rec.LiveCount(); got != 0 {
		t.Errorf("LiveCount = %d, want 0: %v", got, rec.Live())
	}
	if got := ctx.TrackedObjects(); got != 0 {
		t.Errorf("TrackedObjects = %d, want 0", got)
	}
}

func TestComposeColorFilters_Resurrect(t *testing.T) {
	ctx, rec := newTestContext(t)
	outer := ctx.NewColorFilter(ColorFilterBrightness(0.5))
	inner := ctx.NewColorFilter(ColorFilterSaturate(0))
	c := ComposeColorFilters(outer, inner)
	defer func() {
		c.Release()
		outer.Release()
		inner.Release()
	}()

	h, err := c.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := rec.Describe(h)

	ctx.LoseContext()
	h, err = c.Handle()
	if err != nil {
		t.Fatalf("Handle after loss: %v", err)
	}
	if got := rec.Describe(h); got != want {
		t.Errorf("resurrected = %q, want %q", got, want)
	}
}

func TestComposeColorFilters_Panics(t *testing.T) {
	ctxA, _ := newTestContext(t)
	ctxB, _ := newTestContext(t)
	a := ctxA.NewColorFilter(ColorFilterInvert())
	b := ctxB.NewColorFilter(ColorFilterInvert())

	tests := []struct {
		name         string
		outer, inner *ManagedColorFilter
	}{
		{"nil outer", nil, a},
		{"nil inner", a, nil},
		{"cross context", a, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			ComposeColorFilters(tt.outer, tt.inner)
		})
	}
}

func TestManagedColorFilter_FilterIsCopied(t *testing.T) {
	ctx, _ := newTestContext(t)
	src := ColorFilterTint(ColorBlue, BlendModeMultiply).Compose(ColorFilterGrayscale())
	f := ctx.NewColorFilter(src)
	defer f.Release()

	src.Inner.Matrix[0] = 42
	got, ok := f.Filter()
	if !ok {
		t.Fatal("Filter reported no descriptor")
	}
	if got.Inner == nil || got.Inner.Matrix[0] == 42 {
		t.Error("managed filter aliases the caller's descriptor")
	}
}
