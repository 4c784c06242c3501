package error

import (
	"reflect"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// pkgPrefix prefixes the function names of this package's own frames.
var pkgPrefix = reflect.TypeOf((*Error)(nil)).Elem().PkgPath() + "."

// captureStack records the call stack and drops the frames of this package, so the
// trace starts at the code that called the exported constructor.
func captureStack() pkgerrors.StackTrace {
	st := pkgerrors.New("").(stackTracer).StackTrace()

	for i, f := range st {
		if !strings.HasPrefix(frameFunction(f), pkgPrefix) {
			return st[i:]
		}
	}

	return nil
}

// frameFunction returns the fully qualified function name of f.
func frameFunction(f pkgerrors.Frame) string {
	text, _ := f.MarshalText()
	name, _, _ := strings.Cut(string(text), " ")

	return name
}

// formatStack renders frames as "function file:line" lines.
func formatStack(st pkgerrors.StackTrace) []string {
	trace := make([]string, 0, len(st))

	for _, f := range st {
		text, err := f.MarshalText()
		if err != nil || string(text) == "unknown" {
			continue
		}

		trace = append(trace, string(text))
	}

	return trace
}
