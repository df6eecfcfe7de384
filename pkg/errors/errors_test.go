package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestDriftErrorString(t *testing.T) {
	err := &DriftError{
		Op:   "graphics.Paint.Handle",
		Kind: KindNative,
		Err:  fmt.Errorf("engine refused paint"),
	}
	want := "graphics.Paint.Handle [native]: engine refused paint"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDriftErrorWithObject(t *testing.T) {
	err := &DriftError{
		Op:     "graphics.Context.Restore",
		Kind:   KindNative,
		Object: "colorFilter",
		Err:    fmt.Errorf("boom"),
	}
	if got := err.Error(); !strings.Contains(got, "object=colorFilter") {
		t.Errorf("error string %q should contain object", got)
	}
}

func TestDriftErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := fmt.Errorf("outer: %w", &DriftError{Op: "op", Kind: KindFormat, Err: inner})
	if KindOf(err) != KindFormat {
		t.Errorf("KindOf = %v, want %v", KindOf(err), KindFormat)
	}
	if KindOf(inner) != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want unknown", KindOf(inner))
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindNative, "native"},
		{KindFormat, "format"},
		{KindLifecycle, "lifecycle"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "skpaint.inspect"
	if got, want := err.Error(), "panic in skpaint.inspect: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *DriftError
	old := DefaultHandler
	SetHandler(&testHandler{onError: func(err *DriftError) { captured = err }})
	defer SetHandler(old)

	Report(&DriftError{Op: "test.op", Kind: KindLifecycle, Err: fmt.Errorf("leak")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportError(t *testing.T) {
	var captured *DriftError
	old := DefaultHandler
	SetHandler(&testHandler{onError: func(err *DriftError) { captured = err }})
	defer SetHandler(old)

	if got := ReportError("op", KindNative, "paint", nil); got != nil {
		t.Errorf("ReportError(nil) = %v, want nil", got)
	}
	if captured != nil {
		t.Fatal("nil error should not be reported")
	}

	de := ReportError("op", KindNative, "paint", fmt.Errorf("x"))
	if captured != de {
		t.Error("reported error should be the returned one")
	}
	if de.StackTrace == "" {
		t.Error("expected stack trace")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	old := DefaultHandler
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(old)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	old := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(old)

	var got any
	func() {
		defer RecoverWithCallback("test.cb", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	defer SetHandler(old)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&DriftError{Op: "op", Kind: KindNative, Object: "paint", Err: fmt.Errorf("bad")})
	if got, want := buf.String(), "[skpaint error] op: bad\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&DriftError{Op: "op", Kind: KindNative, Object: "paint", Err: fmt.Errorf("bad")})
	if got := buf.String(); !strings.Contains(got, "[native] object=paint") {
		t.Errorf("verbose output = %q", got)
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "op", Value: "v"})
	if got := buf.String(); got != "[skpaint panic] op: v\n" {
		t.Errorf("panic output = %q", got)
	}
}

type testHandler struct {
	onError func(*DriftError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *DriftError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
