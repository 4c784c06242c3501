package error

import (
	"errors"
)

// Wrap attaches a cause to a new Error. If cause is nil, an opaque cause is created.
// It preserves the original cause for errors.Is / errors.As via Unwrap().
func Wrap(cause error, message string, detail map[string]any, opts ...Option) *Error {
	if cause == nil {
		cause = errors.New("unknown")
	}

	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithCause(cause))

	return newError(message, detail, all)
}

// Ensure converts any error to *Error.
//
// Behavior:
//   - nil input => nil output
//   - if err's chain holds an *Error => that *Error (same pointer)
//   - otherwise a new envelope with err as cause; detail, id and code are read off err
//     the way ToSnapshot reads them, and retryable defaults to true
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error

	if errors.As(err, &e) {
		return e
	}

	opts := []Option{WithCause(err), WithRetryable(true)}

	if v, ok := err.(identified); ok {
		opts = append(opts, WithID(v.ID()))
	}

	if v, ok := err.(coded); ok {
		opts = append(opts, WithCode(v.Code()))
	}

	if v, ok := err.(retrier); ok {
		opts = append(opts, WithRetryable(v.Retryable()))
	}

	return newError("", ExtractDetail(err), opts)
}
