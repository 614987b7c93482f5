// Package errors provides annotated errors that carry slog attributes and
// remember where in the source they were created. It re-exports the stdlib
// helpers so callers only need one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"strings"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text) //nolint:err113 // passthrough to stdlib.
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// annotatedError is an error with a message, an optional cause, slog
// attributes for structured logging, and the source location of the call
// that created it.
type annotatedError struct {
	msg    string
	cause  error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates an error meant to be matched with [Is].
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:    msg,
		cause:  nil,
		attrs:  nil,
		source: callerSource(2), //nolint:mnd // skip callerSource and NewSentinel.
	}
}

// Wrap annotates err with a message and optional slog attributes. The
// attributes surface in log output through [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		cause:  err,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip callerSource and Wrap.
	}
}

// DecoratePanic converts a recovered panic value into an error pointing at
// the line that panicked. Returns nil when excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", excp),
		cause:  nil,
		attrs:  nil,
		source: panicSource(),
	}
}

// SlogError renders err as a structured "error" attribute including the
// message, the origin source location, and any attached annotations.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{} //nolint:exhaustruct // empty attr is discarded by slog.
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []slog.Attr{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Attr{Key: "annotations", Value: slog.GroupValue(annotations...)})
	}
	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// collectAnnotations walks the error tree gathering attributes. The source of
// the outermost annotated error wins since it is closest to the caller.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}
	switch e := err.(type) { //nolint:errorlint // deliberate tree walk.
	case *annotatedError:
		*annotations = append(*annotations, e.attrs...)
		if *source == "" {
			*source = e.source
		}
		collectAnnotations(e.cause, annotations, source)
	case interface{ Unwrap() error }:
		collectAnnotations(e.Unwrap(), annotations, source)
	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectAnnotations(sub, annotations, source)
		}
	}
}

// callerSource resolves the file:line of the caller skip frames up.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", path.Base(file), line)
}

// panicSource finds the frame that raised the panic currently being
// recovered, i.e. the first non-runtime frame after runtime.gopanic.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and panicSource.
	frames := runtime.CallersFrames(pcs[:n])

	seenGopanic := false
	for {
		frame, more := frames.Next()
		if seenGopanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			seenGopanic = true
		}
		if !more {
			return ""
		}
	}
}
