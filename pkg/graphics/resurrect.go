package graphics

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned when a disposed native object is accessed.
var ErrDisposed = errors.New("graphics: native object used after dispose")

// NativeObject builds and releases the native handle held by a
// Resurrectable. CreateDefault is used for the first build and Resurrect
// after the handle was deleted; both must derive the handle solely from
// the object's current logical state.
type NativeObject[H any] interface {
	CreateDefault() (H, error)
	Resurrect() (H, error)
	Release(h H)
}

// LifecycleState is the state of a Resurrectable's native handle.
type LifecycleState int

const (
	// StateUnbuilt means no handle was ever built.
	StateUnbuilt LifecycleState = iota
	// StateLive means a handle exists.
	StateLive
	// StateDeleted means the handle was released and will be resurrected
	// on next access.
	StateDeleted
	// StateDisposed means the object was discarded and may not be used.
	StateDisposed
)

func (s LifecycleState) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateLive:
		return "live"
	case StateDeleted:
		return "deleted"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("LifecycleState(%d)", int(s))
	}
}

// Stats counts lifecycle transitions of a Resurrectable.
type Stats struct {
	Created     int
	Resurrected int
	Deleted     int
}

// Resurrectable owns at most one native handle of type H and rebuilds it on
// demand:
//
//	unbuilt --CreateDefault--> live --Delete--> deleted --Resurrect--> live
//
// It is registered with its Context so that LoseContext and Dispose can
// reach it. A Resurrectable is not safe for concurrent use.
type Resurrectable[H any] struct {
	ctx    *Context
	kind   string
	obj    NativeObject[H]
	handle H
	state  LifecycleState
	stats  Stats
}

// NewResurrectable registers a new, unbuilt object with ctx. Kind names the
// object in logs and errors.
func NewResurrectable[H any](ctx *Context, kind string, obj NativeObject[H]) *Resurrectable[H] {
	r := &Resurrectable[H]{ctx: ctx, kind: kind, obj: obj}
	ctx.track(r)
	return r
}

// Handle returns the live native handle, building it first if needed.
// A failed build leaves the object without a handle.
func (r *Resurrectable[H]) Handle() (H, error) {
	var zero H
	switch r.state {
	case StateLive:
		return r.handle, nil
	case StateDisposed:
		return zero, fmt.Errorf("%s: %w", r.kind, ErrDisposed)
	}

	var (
		h   H
		err error
	)
	if r.state == StateUnbuilt {
		h, err = r.obj.CreateDefault()
	} else {
		h, err = r.obj.Resurrect()
	}
	if err != nil {
		return zero, fmt.Errorf("graphics: build %s: %w", r.kind, err)
	}

	if r.state == StateUnbuilt {
		r.stats.Created++
		Logger().Debug("graphics: created native object", "kind", r.kind)
	} else {
		r.stats.Resurrected++
		Logger().Debug("graphics: resurrected native object", "kind", r.kind)
	}
	r.handle = h
	r.state = StateLive
	return h, nil
}

// Live returns the handle without building it. The boolean is false when no
// handle exists.
func (r *Resurrectable[H]) Live() (H, bool) {
	if r.state != StateLive {
		var zero H
		return zero, false
	}
	return r.handle, true
}

// Delete releases the native handle, if any. The next Handle call
// resurrects it. Delete is idempotent.
func (r *Resurrectable[H]) Delete() {
	if r.state != StateLive {
		return
	}
	h := r.handle
	var zero H
	r.handle = zero
	r.state = StateDeleted
	r.stats.Deleted++
	if any(h) != nil {
		r.obj.Release(h)
	}
	Logger().Debug("graphics: deleted native object", "kind", r.kind)
}

// Dispose deletes the handle and unregisters the object. Any later Handle
// call fails with ErrDisposed. Dispose is idempotent.
func (r *Resurrectable[H]) Dispose() {
	if r.state == StateDisposed {
		return
	}
	r.Delete()
	r.state = StateDisposed
	r.ctx.untrack(r)
}

// State reports the lifecycle state.
func (r *Resurrectable[H]) State() LifecycleState { return r.state }

// Stats reports lifecycle counters.
func (r *Resurrectable[H]) Stats() Stats { return r.stats }

// Kind returns the name given at construction.
func (r *Resurrectable[H]) Kind() string { return r.kind }

func (r *Resurrectable[H]) rebuild() error {
	_, err := r.Handle()
	return err
}
