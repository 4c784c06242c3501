// Package error provides a structured error type and helpers to snapshot, classify and
// format any error-like value.
//
// It exposes a single concrete type Error that implements contract.Error and integrates
// with the standard library's errors helpers (Is/As) via Unwrap.
//
// Key characteristics:
//   - Optional ID and Code, construction Time, type-distinguishing Name
//   - Detail map attached by reference (no defensive copies)
//   - Advisory Retryable flag, false by default
//   - Call stack captured at construction
//   - Snapshot, the serializable form used by MarshalJSON and zerolog
//
// ToSnapshot and ExtractDetail accept any value: *Error, *Snapshot, map[string]any or a
// foreign error, whose optional Name, Message, Detail, Stack, ID, Code, Time and Retryable
// methods are honoured. IsErrorType checks runtime types, including types embedding
// *Error. BuildFormattedError and FormatMessage compose "message. k=v, ..." texts.
//
// Construction options are available via With* helpers, Kind templates name families of
// errors, and Wrap/Ensure adapt arbitrary errors.
package error
