package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const (
	// TimeLayout is the ISO-8601 layout of Snapshot.Time, always rendered in UTC.
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"

	// MaxCauseDepth bounds how many nested causes ToSnapshot follows.
	// Deeper causes, including those of a cyclic chain, are left out.
	MaxCauseDepth = 32
)

// Snapshot is the serializable copy of an error's state. Its JSON form is the wire
// contract for errors crossing a process boundary.
type Snapshot struct {
	ID        string         `json:"id,omitempty"`
	Time      string         `json:"time"`
	Cause     *Snapshot      `json:"cause,omitempty"`
	Code      string         `json:"code,omitempty"`
	Name      string         `json:"name"`
	Message   string         `json:"message"`
	Stack     []string       `json:"stack"`
	Detail    map[string]any `json:"detail,omitempty"`
	Retryable bool           `json:"retryable"`
}

// Snapshot returns the current state of the error. Every call builds a fresh copy,
// except for Detail which is the map attached to the error.
func (e *Error) Snapshot() *Snapshot { return ToSnapshot(e) }

// MarshalJSON encodes the error as its Snapshot so detail, cause and retryable
// survive generic serialization.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToSnapshot(e))
}

// Error lets a decoded snapshot travel as a regular error value.
func (s *Snapshot) Error() string {
	if s == nil {
		return "<nil>"
	}

	switch {
	case s.Name == "":
		return s.Message
	case s.Message == "":
		return s.Name
	default:
		return s.Name + ": " + s.Message
	}
}

func (s *Snapshot) Unwrap() error {
	if s == nil || s.Cause == nil {
		return nil
	}

	return s.Cause
}

// ParseTime parses the Time field.
func (s *Snapshot) ParseTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot time %q: %w", s.Time, err)
	}

	return t, nil
}

// FromJSON decodes a Snapshot produced by MarshalJSON or ToSnapshot.
func FromJSON(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal error snapshot: %w", err)
	}

	if s.Stack == nil {
		s.Stack = []string{}
	}

	return &s, nil
}

// ExtractDetail returns the auxiliary key/value information of value, or nil when there
// is none.
//
// Behavior:
//   - nil => nil
//   - *Error => its detail map, same reference
//   - map[string]any => every key except name, message and stack
//   - *Snapshot => its Detail
//   - other errors => Detail() map[string]any when implemented
func ExtractDetail(value any) map[string]any {
	if isNil(value) {
		return nil
	}

	switch v := value.(type) {
	case *Error:
		return v.detail
	case *Snapshot:
		return v.Detail
	case map[string]any:
		var detail map[string]any

		for k, val := range v {
			if k == "name" || k == "message" || k == "stack" {
				continue
			}

			if detail == nil {
				detail = map[string]any{}
			}

			detail[k] = val
		}

		return detail
	case detailer:
		return v.Detail()
	}

	return nil
}

// ToSnapshot converts any error-like value into a Snapshot. It never fails: missing
// fields default to empty values, time defaults to now and retryable defaults to true
// for anything that is not an *Error.
func ToSnapshot(value any) *Snapshot {
	return toSnapshot(value, 0)
}

func toSnapshot(value any, depth int) *Snapshot {
	s := &Snapshot{Stack: []string{}, Retryable: true}

	switch v := value.(type) {
	case *Error:
		if v == nil {
			break
		}

		s.ID = v.id
		s.Code = v.code
		s.Name = v.name
		s.Message = v.message
		s.Stack = formatStack(v.stack)
		s.Detail = v.detail
		s.Retryable = v.retryable
		s.Time = formatTime(v.time)
		s.Cause = causeSnapshot(v.cause, depth)
	case *Snapshot:
		if v == nil {
			break
		}

		*s = *v
		s.Stack = append([]string{}, v.Stack...)
		s.Cause = causeSnapshot(v.Cause, depth)
	case map[string]any:
		fromMap(s, v, depth)
	case error:
		if isNil(v) {
			break
		}

		fromError(s, v, depth)
	}

	if s.Time == "" {
		s.Time = formatTime(time.Now())
	}

	return s
}

func causeSnapshot(cause any, depth int) *Snapshot {
	if isNil(cause) || depth >= MaxCauseDepth {
		return nil
	}

	return toSnapshot(cause, depth+1)
}

func fromMap(s *Snapshot, m map[string]any, depth int) {
	s.Name, _ = m["name"].(string)
	s.Message, _ = m["message"].(string)
	s.ID, _ = m["id"].(string)
	s.Code, _ = m["code"].(string)

	switch st := m["stack"].(type) {
	case string:
		s.Stack = strings.Split(st, "\n")
	case []string:
		s.Stack = append([]string{}, st...)
	}

	switch t := m["time"].(type) {
	case string:
		s.Time = t
	case time.Time:
		s.Time = formatTime(t)
	}

	s.Detail = ExtractDetail(m)
	s.Cause = causeSnapshot(m["cause"], depth)
}

// Optional methods read off foreign errors.
type (
	namer      interface{ Name() string }
	messenger  interface{ Message() string }
	detailer   interface{ Detail() map[string]any }
	stacker    interface{ Stack() []string }
	identified interface{ ID() string }
	coded      interface{ Code() string }
	timed      interface{ Time() time.Time }
	retrier    interface{ Retryable() bool }
	multiCause interface{ Unwrap() []error }
)

func fromError(s *Snapshot, err error, depth int) {
	if n, ok := err.(namer); ok {
		s.Name = n.Name()
	} else {
		s.Name = fmt.Sprintf("%T", err)
	}

	if m, ok := err.(messenger); ok {
		s.Message = m.Message()
	} else {
		s.Message = err.Error()
	}

	if st, ok := err.(stacker); ok {
		if lines := st.Stack(); lines != nil {
			s.Stack = lines
		}
	}

	if v, ok := err.(identified); ok {
		s.ID = v.ID()
	}

	if v, ok := err.(coded); ok {
		s.Code = v.Code()
	}

	if v, ok := err.(timed); ok && !v.Time().IsZero() {
		s.Time = formatTime(v.Time())
	}

	if v, ok := err.(retrier); ok {
		s.Retryable = v.Retryable()
	}

	s.Detail = ExtractDetail(err)

	cause := errors.Unwrap(err)
	if mc, ok := err.(multiCause); ok && cause == nil {
		// Only the first joined error is kept as cause.
		for _, c := range mc.Unwrap() {
			if c != nil {
				cause = c
				break
			}
		}
	}

	s.Cause = causeSnapshot(cause, depth)
}

func formatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// isNil reports nil interfaces as well as typed nil pointers, maps and slices.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
