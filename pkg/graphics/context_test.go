package graphics

import (
	"errors"
	"testing"

	drifterrors "github.com/go-drift/skpaint/pkg/errors"
)

type recordingHandler struct {
	errs []*drifterrors.DriftError
}

func (h *recordingHandler) HandleError(err *drifterrors.DriftError) {
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(*drifterrors.PanicError) {}

func installHandler(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	drifterrors.SetHandler(h)
	t.Cleanup(func() { drifterrors.SetHandler(nil) })
	return h
}

func TestContext_LoseContextAndRestore(t *testing.T) {
	ctx, rec := newTestContext(t)
	p := ctx.NewPaint()
	p.SetColor(ColorRed)
	cf := ctx.NewColorFilter(ColorFilterGrayscale())
	defer cf.Release()
	if err := p.SetColorFilter(cf); err != nil {
		t.Fatalf("SetColorFilter: %v", err)
	}
	before := paintState(t, rec, p)
	if got := ctx.LiveObjects(); got != 2 {
		t.Fatalf("LiveObjects = %d, want 2", got)
	}

	ctx.LoseContext()
	if got := ctx.LiveObjects(); got != 0 {
		t.Errorf("LiveObjects after loss = %d, want 0", got)
	}
	if got := rec.LiveCount(); got != 0 {
		t.Errorf("recorder LiveCount after loss = %d, want 0", got)
	}
	if got := ctx.TrackedObjects(); got != 2 {
		t.Errorf("TrackedObjects after loss = %d, want 2", got)
	}

	if err := ctx.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := ctx.LiveObjects(); got != 2 {
		t.Errorf("LiveObjects after restore = %d, want 2", got)
	}
	if after := paintState(t, rec, p); after != before {
		t.Errorf("restored state = %+v, want %+v", after, before)
	}
	if got := p.Native().Stats().Resurrected; got != 1 {
		t.Errorf("paint resurrections = %d, want 1", got)
	}
	p.Dispose()
}

func TestContext_RestoreReportsFailures(t *testing.T) {
	h := installHandler(t)
	ctx, rec := newTestContext(t)
	prog, err := ctx.NewFragmentProgram("fill", []byte(floatAsset))
	if err != nil {
		t.Fatalf("NewFragmentProgram: %v", err)
	}
	if err := prog.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx.LoseContext()
	boom := errors.New("device lost")
	rec.CompileErrors = map[string]error{prog.SkSL(): boom}

	err = ctx.Restore()
	if !errors.Is(err, boom) {
		t.Fatalf("Restore err = %v, want %v", err, boom)
	}
	if len(h.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(h.errs))
	}
	if got := h.errs[0]; got.Kind != drifterrors.KindNative || got.Object != "runtimeEffect" {
		t.Errorf("reported %+v", got)
	}
}

func TestContext_DisposeReportsLeaks(t *testing.T) {
	h := installHandler(t)
	ctx, rec := newTestContext(t)
	p := ctx.NewPaint()
	if err := p.SetInvertColors(true); err != nil {
		t.Fatalf("SetInvertColors: %v", err)
	}
	if _, err := p.Handle(); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	ctx.Dispose()
	if len(h.errs) != 1 || h.errs[0].Kind != drifterrors.KindLifecycle {
		t.Fatalf("reported %v, want one lifecycle error", h.errs)
	}
	if got := rec.LiveCount(); got != 0 {
		t.Errorf("recorder LiveCount = %d, want 0: %v", got, rec.Live())
	}
	ctx.Dispose()
}

func TestContext_DisposeClean(t *testing.T) {
	h := installHandler(t)
	ctx, rec := newTestContext(t)
	p := ctx.NewPaint()
	if err := p.SetInvertColors(true); err != nil {
		t.Fatalf("SetInvertColors: %v", err)
	}
	if _, err := p.Handle(); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	p.Dispose()

	ctx.Dispose()
	if len(h.errs) != 0 {
		t.Errorf("reported %v, want nothing", h.errs)
	}
	if got := rec.LiveCount(); got != 0 {
		t.Errorf("recorder LiveCount = %d, want 0: %v", got, rec.Live())
	}
}

func TestContext_TrackAfterDisposePanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic creating an object on a disposed context")
		}
	}()
	ctx.NewPaint()
}
