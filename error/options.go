package error

import (
	"reflect"

	"github.com/google/uuid"
)

// Option configures an Error during construction via New, Wrap or a Kind.
type Option func(*Error)

const (
	// DefaultName is the name given to errors built without WithName or WithTypeName.
	DefaultName = "Error"

	// DefaultRetryable is the retryable flag of a freshly built Error.
	// Foreign errors converted by ToSnapshot default to retryable instead.
	DefaultRetryable = false
)

// WithName sets the error name during construction.
func WithName(name string) Option { return func(e *Error) { e.name = name } }

// WithTypeName names the error after T and records T for IsType, so a type embedding
// *Base gets its own name and type identity:
//
//	type NotFoundError struct{ *apiError.Base }
//	apiError.New("missing", nil, apiError.WithTypeName[NotFoundError]())
func WithTypeName[T any]() Option {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return func(e *Error) {
		e.name = t.Name()
		e.typ = t
	}
}

// WithID sets the error id during construction.
func WithID(id string) Option { return func(e *Error) { e.id = id } }

// WithGeneratedID assigns a random uuid as the error id during construction.
func WithGeneratedID() Option { return func(e *Error) { e.id = uuid.NewString() } }

// WithCode sets the classification code during construction.
func WithCode(code string) Option { return func(e *Error) { e.code = code } }

// WithCause sets the underlying cause to be returned by Unwrap().
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }

// WithRetryable overrides DefaultRetryable during construction.
func WithRetryable(retryable bool) Option { return func(e *Error) { e.retryable = retryable } }
