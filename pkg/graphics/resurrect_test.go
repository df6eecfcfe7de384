package graphics

import (
	"errors"
	"testing"
)

type fakeHandle struct {
	id       int
	released bool
}

type fakeNative struct {
	creates    int
	resurrects int
	releases   int
	fail       error
	next       int
}

func (f *fakeNative) CreateDefault() (*fakeHandle, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.creates++
	f.next++
	return &fakeHandle{id: f.next}, nil
}

func (f *fakeNative) Resurrect() (*fakeHandle, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.resurrects++
	f.next++
	return &fakeHandle{id: f.next}, nil
}

func (f *fakeNative) Release(h *fakeHandle) {
	f.releases++
	h.released = true
}

func TestResurrectable_Lifecycle(t *testing.T) {
	ctx, _ := newTestContext(t)
	obj := &fakeNative{}
	r := NewResurrectable[*fakeHandle](ctx, "fake", obj)

	if r.State() != StateUnbuilt {
		t.Fatalf("initial state = %v, want unbuilt", r.State())
	}
	if _, ok := r.Live(); ok {
		t.Error("Live reported a handle before the first build")
	}

	h1, err := r.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if obj.creates != 1 || obj.resurrects != 0 {
		t.Errorf("creates/resurrects = %d/%d, want 1/0", obj.creates, obj.resurrects)
	}
	if h, _ := r.Handle(); h != h1 {
		t.Error("Handle rebuilt a live handle")
	}

	r.Delete()
	if !h1.released || r.State() != StateDeleted {
		t.Errorf("after Delete: released=%v state=%v", h1.released, r.State())
	}
	r.Delete()
	if obj.releases != 1 {
		t.Errorf("releases = %d, want 1 after repeated Delete", obj.releases)
	}

	h2, err := r.Handle()
	if err != nil {
		t.Fatalf("Handle after Delete: %v", err)
	}
	if h2 == h1 || obj.resurrects != 1 {
		t.Errorf("expected a resurrected handle, resurrects = %d", obj.resurrects)
	}
	want := Stats{Created: 1, Resurrected: 1, Deleted: 1}
	if got := r.Stats(); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestResurrectable_BuildFailureCachesNothing(t *testing.T) {
	ctx, _ := newTestContext(t)
	boom := errors.New("boom")
	obj := &fakeNative{fail: boom}
	r := NewResurrectable[*fakeHandle](ctx, "fake", obj)

	if _, err := r.Handle(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if r.State() != StateUnbuilt {
		t.Errorf("state = %v, want unbuilt", r.State())
	}

	obj.fail = nil
	if _, err := r.Handle(); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if obj.creates != 1 {
		t.Errorf("creates = %d, want 1", obj.creates)
	}
}

func TestResurrectable_Dispose(t *testing.T) {
	ctx, _ := newTestContext(t)
	obj := &fakeNative{}
	r := NewResurrectable[*fakeHandle](ctx, "fake", obj)
	if _, err := r.Handle(); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got := ctx.TrackedObjects(); got != 1 {
		t.Fatalf("TrackedObjects = %d, want 1", got)
	}

	r.Dispose()
	r.Dispose()
	if obj.releases != 1 {
		t.Errorf("releases = %d, want 1", obj.releases)
	}
	if got := ctx.TrackedObjects(); got != 0 {
		t.Errorf("TrackedObjects = %d, want 0", got)
	}
	if _, err := r.Handle(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Handle after Dispose: err = %v, want ErrDisposed", err)
	}
}

func TestLifecycleState_String(t *testing.T) {
	tests := []struct {
		state LifecycleState
		want  string
	}{
		{StateUnbuilt, "unbuilt"},
		{StateLive, "live"},
		{StateDeleted, "deleted"},
		{StateDisposed, "disposed"},
		{LifecycleState(9), "LifecycleState(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
