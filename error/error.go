// Package error provides a structured error type carrying machine-readable metadata
// and helpers to snapshot, classify and format any error-like value.
package error

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/next-trace/scg-xerror/contract"
)

// Error is the structured error type.
//
// Fields:
//   - ID:        optional identifier (e.g. a request-scoped uuid)
//   - Time:      instant of construction, never changes
//   - Code:      optional machine-facing classification code
//   - Name:      type-distinguishing name, "Error" unless overridden
//   - Message:   human readable message
//   - Detail:    auxiliary key/value information, stored by reference
//   - Retryable: advisory flag for the caller's own retry logic
//   - Cause:     underlying error, exposed through Unwrap
type Error struct {
	id        string
	time      time.Time
	cause     error
	code      string
	name      string
	message   string
	detail    map[string]any
	retryable bool
	stack     pkgerrors.StackTrace
	// typ is the embedding type recorded by WithTypeName; WithName leaves it alone.
	typ reflect.Type
}

// Base is Error under a name fit for embedding. A struct embedding *Error gets a field
// named Error, which hides the Error method; embedding *Base does not:
//
//	type NotFoundError struct{ *apiError.Base }
type Base = Error

// compile-time guarantee that *Error implements contract.Error
var _ contract.Error = (*Error)(nil)

// New creates an Error with the given message and detail.
// The detail map is stored as is; later changes to it are visible through the error.
// The stack trace starts at the caller of New.
func New(message string, detail map[string]any, opts ...Option) *Error {
	return newError(message, detail, opts)
}

func newError(message string, detail map[string]any, opts []Option) *Error {
	e := &Error{
		time:      time.Now(),
		name:      DefaultName,
		message:   message,
		detail:    detail,
		retryable: DefaultRetryable,
		stack:     captureStack(),
	}
	for _, o := range opts {
		o(e)
	}

	return e
}

// ------ standard error interface

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	s := e.name
	if e.code != "" {
		s += " [" + e.code + "]"
	}

	if e.message != "" {
		s += ": " + e.message
	}

	if e.cause != nil {
		s += ": " + e.cause.Error()
	}

	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// ------ contract.Error getters (nil receivers yield zero values)

func (e *Error) ID() string {
	if e == nil {
		return ""
	}

	return e.id
}

func (e *Error) Time() time.Time {
	if e == nil {
		return time.Time{}
	}

	return e.time
}

func (e *Error) Code() string {
	if e == nil {
		return ""
	}

	return e.code
}

func (e *Error) Name() string {
	if e == nil {
		return ""
	}

	return e.name
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) Detail() map[string]any {
	if e == nil {
		return nil
	}

	return e.detail
}

// Retryable reports the advisory retry flag; a nil receiver reports the foreign-error
// default, true.
func (e *Error) Retryable() bool {
	if e == nil {
		return true
	}

	return e.retryable
}

// Stack returns the call stack captured at construction, one frame per line.
func (e *Error) Stack() []string {
	if e == nil {
		return []string{}
	}

	return formatStack(e.stack)
}

// ------ fluent helpers (chainable, mutate receiver intentionally)

// WithMessage replaces the message and returns the same receiver for chaining.
func (e *Error) WithMessage(message string) *Error {
	if e == nil {
		return nil
	}

	e.message = message

	return e
}

// WithName replaces the type-distinguishing name. Type checks are not affected.
func (e *Error) WithName(name string) *Error {
	if e == nil {
		return nil
	}

	e.name = name

	return e
}

func (e *Error) WithID(id string) *Error {
	if e == nil {
		return nil
	}

	e.id = id

	return e
}

// WithGeneratedID assigns a random uuid as the error id.
func (e *Error) WithGeneratedID() *Error {
	return e.WithID(uuid.NewString())
}

func (e *Error) WithCode(code string) *Error {
	if e == nil {
		return nil
	}

	e.code = code

	return e
}

// WithCause sets the underlying cause. Passing e itself, or any error whose chain leads
// back to e, creates a cycle; snapshots stop at MaxCauseDepth.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}

	e.cause = cause

	return e
}

// WithDetail attaches the detail map by reference, replacing the previous one.
func (e *Error) WithDetail(detail map[string]any) *Error {
	if e == nil {
		return nil
	}

	e.detail = detail

	return e
}

// WithDetailKV sets a single key in the detail map and returns the same receiver.
// The map is created on first use.
func (e *Error) WithDetailKV(k string, v any) *Error {
	if e == nil {
		return nil
	}

	if e.detail == nil {
		e.detail = map[string]any{}
	}

	e.detail[k] = v

	return e
}

func (e *Error) WithRetryable(retryable bool) *Error {
	if e == nil {
		return nil
	}

	e.retryable = retryable

	return e
}

// IsType reports whether the error's runtime type is the type of target or derives from it.
// Pass a typed nil as target, e.g. (*Error)(nil) or (*contract.Error)(nil) for interfaces.
// Called through a type embedding *Base, it also matches that type when the error was
// built with WithTypeName for it. The name field plays no part in the check.
func (e *Error) IsType(target any) bool {
	if e == nil {
		return false
	}

	if t := targetType(target); t != nil && e.typ != nil {
		if t == e.typ || t == reflect.PointerTo(e.typ) {
			return true
		}
	}

	return IsErrorTypeOf(e, target)
}
