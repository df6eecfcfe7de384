package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes errors to a stream.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out receives the output. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out == nil {
		return os.Stderr
	}
	return h.Out
}

// HandleError logs a DriftError.
func (h *LogHandler) HandleError(err *DriftError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		fmt.Fprintf(w, "[skpaint error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[skpaint error] %s [%s]", err.Op, err.Kind)
	if err.Object != "" {
		fmt.Fprintf(w, " object=%s", err.Object)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[skpaint panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[skpaint panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
