package error

import (
	"fmt"
	"slices"
	"strings"
)

// FormattedError is a lightweight named error built by BuildFormattedError.
// It carries no stack, id or code; ToSnapshot treats it as a foreign error.
type FormattedError struct {
	name    string
	message string
	detail  map[string]any
}

// BuildFormattedError returns an error named name whose message is message, followed
// by ". k=v, ..." when detail is not nil. The detail map is attached as is.
func BuildFormattedError(name, message string, detail map[string]any) *FormattedError {
	if detail != nil {
		message += ". " + joinDetail(detail)
	}

	return &FormattedError{name: name, message: message, detail: detail}
}

func (e *FormattedError) Error() string          { return e.message }
func (e *FormattedError) Name() string           { return e.name }
func (e *FormattedError) Message() string        { return e.message }
func (e *FormattedError) Detail() map[string]any { return e.detail }

// FormatMessage joins message parts with single spaces and appends ". k=v, ..." when
// detail is not nil.
//
//	FormatMessage("foo", nil)                                         // "foo"
//	FormatMessage([]string{"foo", "bar"}, map[string]any{"foo": "bar"}) // "foo bar. foo=bar"
func FormatMessage[M string | []string](message M, detail map[string]any) string {
	var text string

	switch m := any(message).(type) {
	case string:
		text = m
	case []string:
		text = strings.Join(m, " ")
	}

	if detail != nil {
		text += ". " + joinDetail(detail)
	}

	return text
}

// joinDetail renders "k=v" pairs separated by ", " in sorted key order.
func joinDetail(detail map[string]any) string {
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", k, detail[k]))
	}

	return strings.Join(fields, ", ")
}
