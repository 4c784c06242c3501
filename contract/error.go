// Package contract exposes the minimal structured error interface used by other packages.
//
// Implementations must expose their cause through Unwrap so the standard
// errors.Is / errors.As helpers can walk the chain.
package contract

import "time"

// Error is the capability set shared by every structured error.
//
// Implementations must:
//   - Respect Go initialisms (ID).
//   - Return the attached detail map itself from Detail, not a copy.
//   - Support errors.Unwrap via Unwrap().
type Error interface {
	error
	ID() string
	Time() time.Time
	Code() string
	Name() string
	Message() string
	Detail() map[string]any
	Retryable() bool
	Unwrap() error
}
