// Package errors provides structured error reporting for skpaint.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNative indicates the native engine refused to build or update an object.
	KindNative
	// KindFormat indicates a malformed asset, such as shader JSON.
	KindFormat
	// KindLifecycle indicates misuse of a native object's lifecycle, such as
	// leaking or using it after disposal.
	KindLifecycle
	// KindConfig indicates an invalid configuration file or value.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindFormat:
		return "format"
	case KindLifecycle:
		return "lifecycle"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DriftError represents a structured error reported by the graphics layer.
type DriftError struct {
	// Op is the operation that failed (e.g., "graphics.Context.Restore").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Object names the native object involved, if any (e.g., "paint").
	Object string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DriftError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("%s [%s] object=%s: %v", e.Op, e.Kind, e.Object, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DriftError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first DriftError in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var de *DriftError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "skpaint.inspect").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *DriftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
