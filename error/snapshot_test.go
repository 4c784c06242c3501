package error_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiError "github.com/next-trace/scg-xerror/error"
)

func assertParseableTime(t *testing.T, s *apiError.Snapshot) {
	t.Helper()

	_, err := s.ParseTime()
	require.NoError(t, err, "time %q must be ISO-8601", s.Time)
}

func TestExtractDetail_Nil(t *testing.T) {
	t.Parallel()

	var typed *apiError.Error
	var m map[string]any

	assert.Nil(t, apiError.ExtractDetail(nil))
	assert.Nil(t, apiError.ExtractDetail(typed))
	assert.Nil(t, apiError.ExtractDetail(m))
}

func TestExtractDetail_StructuredErrorKeepsReference(t *testing.T) {
	t.Parallel()

	detail := map[string]any{"foo": "bar"}
	e := newNotFound("", nil)
	e.WithDetail(detail)

	got := apiError.ExtractDetail(e)
	assert.Equal(t, reflect.ValueOf(detail).Pointer(), reflect.ValueOf(got).Pointer())

	got = apiError.ExtractDetail(e.Base)
	assert.Equal(t, reflect.ValueOf(detail).Pointer(), reflect.ValueOf(got).Pointer())
}

func TestExtractDetail_Map(t *testing.T) {
	t.Parallel()

	got := apiError.ExtractDetail(map[string]any{
		"name":    "foo",
		"message": "msg",
		"stack":   "a\nb",
		"foo":     "bar",
	})
	assert.Equal(t, map[string]any{"foo": "bar"}, got)

	assert.Nil(t, apiError.ExtractDetail(map[string]any{"name": "only-standard-fields"}))
}

func TestExtractDetail_ForeignError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, apiError.ExtractDetail(errors.New("plain")))
	assert.Nil(t, apiError.ExtractDetail("not an error"))

	detail := map[string]any{"limit": 10}
	assert.Equal(t, detail, apiError.ExtractDetail(&richError{detail: detail}))
}

func TestToSnapshot_PlainMap(t *testing.T) {
	t.Parallel()

	s := apiError.ToSnapshot(map[string]any{
		"name":    "foo",
		"message": "bad input",
		"stack":   "line 1\nline 2",
		"foo":     "bar",
	})

	assert.Equal(t, "foo", s.Name)
	assert.Equal(t, "bad input", s.Message)
	assert.Equal(t, []string{"line 1", "line 2"}, s.Stack)
	assert.Equal(t, map[string]any{"foo": "bar"}, s.Detail)
	assert.True(t, s.Retryable)
	assertParseableTime(t, s)
}

func TestToSnapshot_MapFieldsReadVerbatim(t *testing.T) {
	t.Parallel()

	s := apiError.ToSnapshot(map[string]any{
		"id":    "abc",
		"code":  "E42",
		"time":  "2024-01-02T03:04:05.000Z",
		"stack": []string{"frame"},
		"cause": map[string]any{"name": "inner", "message": "root cause"},
	})

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "E42", s.Code)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", s.Time)
	assert.Equal(t, []string{"frame"}, s.Stack)
	require.NotNil(t, s.Cause)
	assert.Equal(t, "inner", s.Cause.Name)
	assert.Equal(t, "root cause", s.Cause.Message)
}

func TestToSnapshot_BareValues(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]any{
		"nil":       nil,
		"empty map": map[string]any{},
		"opaque":    42,
		"typed nil": (*richError)(nil),
		"zero wrap": &NotFoundError{},
	} {
		t.Run(name, func(t *testing.T) {
			s := apiError.ToSnapshot(value)

			assert.Equal(t, "", s.Name)
			assert.Equal(t, "", s.Message)
			assert.Equal(t, []string{}, s.Stack)
			assert.Nil(t, s.Detail)
			assert.Nil(t, s.Cause)
			assert.Empty(t, s.ID)
			assert.True(t, s.Retryable)
			assertParseableTime(t, s)
		})
	}
}

func TestToSnapshot_ForeignError(t *testing.T) {
	t.Parallel()

	s := apiError.ToSnapshot(errors.New("boom"))

	assert.Equal(t, "*errors.errorString", s.Name)
	assert.Equal(t, "boom", s.Message)
	assert.Equal(t, []string{}, s.Stack)
	assert.Nil(t, s.Detail)
	assert.Nil(t, s.Cause)
	assert.True(t, s.Retryable)
	assertParseableTime(t, s)
}

func TestToSnapshot_ForeignErrorMethods(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s := apiError.ToSnapshot(&richError{
		name: "RateLimited", msg: "slow down", id: "r-1", code: "RATE", at: at,
		stack: []string{"a", "b"}, detail: map[string]any{"limit": 10},
	})

	assert.Equal(t, "RateLimited", s.Name)
	assert.Equal(t, "slow down", s.Message)
	assert.Equal(t, "r-1", s.ID)
	assert.Equal(t, "RATE", s.Code)
	assert.Equal(t, "2024-05-06T07:08:09.000Z", s.Time)
	assert.Equal(t, []string{"a", "b"}, s.Stack)
	assert.Equal(t, map[string]any{"limit": 10}, s.Detail)
	assert.False(t, s.Retryable, "Retryable() of a foreign error is honoured")
}

func TestToSnapshot_CauseChainDepthTwo(t *testing.T) {
	t.Parallel()

	inner := errors.New("bar")
	s := apiError.ToSnapshot(fmt.Errorf("foo: %w", inner))

	require.NotNil(t, s.Cause)
	assert.Equal(t, "*errors.errorString", s.Cause.Name)
	assert.Equal(t, "bar", s.Cause.Message)
	assert.Nil(t, s.Cause.Detail)
	assert.Nil(t, s.Cause.Cause)
	assert.Empty(t, s.Cause.ID)
	assertParseableTime(t, s.Cause)
}

func TestToSnapshot_JoinedErrorsKeepFirstCause(t *testing.T) {
	t.Parallel()

	s := apiError.ToSnapshot(errors.Join(errors.New("first"), errors.New("second")))

	require.NotNil(t, s.Cause)
	assert.Equal(t, "first", s.Cause.Message)
}

func TestToSnapshot_StructuredError(t *testing.T) {
	t.Parallel()

	detail := map[string]any{"foo": "bar"}
	cause := apiError.New("inner", nil, apiError.WithRetryable(true))
	e := apiError.New("outer", detail,
		apiError.WithID("id-1"),
		apiError.WithCode("C1"),
		apiError.WithCause(cause),
	)

	s := e.Snapshot()

	assert.Equal(t, "id-1", s.ID)
	assert.Equal(t, "C1", s.Code)
	assert.Equal(t, "Error", s.Name)
	assert.Equal(t, "outer", s.Message)
	assert.False(t, s.Retryable)
	assert.Equal(t, e.Time().UTC().Format(apiError.TimeLayout), s.Time)
	assert.Equal(t, e.Stack(), s.Stack)
	assert.Equal(t, reflect.ValueOf(detail).Pointer(), reflect.ValueOf(s.Detail).Pointer())

	require.NotNil(t, s.Cause)
	assert.Equal(t, "inner", s.Cause.Message)
	assert.True(t, s.Cause.Retryable)
	assert.Nil(t, s.Cause.Cause)
}

func TestToSnapshot_EmbeddingType(t *testing.T) {
	t.Parallel()

	detail := map[string]any{"user_id": 42}
	e := newNotFound("user 42", detail)
	e.WithRetryable(true).WithCause(errors.New("sql: no rows"))

	s := apiError.ToSnapshot(e)

	assert.Equal(t, "NotFoundError", s.Name)
	assert.Equal(t, "user 42", s.Message)
	assert.True(t, s.Retryable)
	assert.Equal(t, reflect.ValueOf(detail).Pointer(), reflect.ValueOf(s.Detail).Pointer())
	require.NotNil(t, s.Cause)
	assert.Equal(t, "sql: no rows", s.Cause.Message)
}

func TestSnapshot_ReflectsLatestMutations(t *testing.T) {
	t.Parallel()

	e := apiError.New("first", nil)
	s1 := e.Snapshot()

	e.WithMessage("second").WithCode("C2")
	s2 := e.Snapshot()

	assert.Equal(t, "first", s1.Message, "snapshot is independent of later mutation")
	assert.Empty(t, s1.Code)
	assert.Equal(t, "second", s2.Message)
	assert.Equal(t, "C2", s2.Code)
}

func TestToSnapshot_CyclicCauseTerminates(t *testing.T) {
	t.Parallel()

	e := apiError.New("loop", nil)
	e.WithCause(e)

	s := apiError.ToSnapshot(e)

	depth := 0
	for c := s; c != nil; c = c.Cause {
		depth++
	}

	assert.Equal(t, apiError.MaxCauseDepth+1, depth)
}

func TestMarshalJSON_MatchesSnapshot(t *testing.T) {
	t.Parallel()

	e := newNotFound("test error", map[string]any{"foo": "bar"})
	e.WithCode("NF").WithCause(errors.New("inner"))

	viaJSON, err := json.Marshal(e)
	require.NoError(t, err)

	viaSnapshot, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)

	assert.JSONEq(t, string(viaSnapshot), string(viaJSON))

	var data apiError.Snapshot
	require.NoError(t, json.Unmarshal(viaJSON, &data))
	assert.Equal(t, "NotFoundError", data.Name)
	assert.Equal(t, "test error", data.Message)
	assert.NotEmpty(t, data.Stack)
	assert.Equal(t, map[string]any{"foo": "bar"}, data.Detail)
	assert.False(t, data.Retryable)
}

func TestMarshalJSON_FieldPresence(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(apiError.ToSnapshot(map[string]any{}))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, k := range []string{"name", "message", "stack", "time", "retryable"} {
		assert.Contains(t, fields, k)
	}

	for _, k := range []string{"id", "code", "cause", "detail"} {
		assert.NotContains(t, fields, k)
	}

	assert.Equal(t, []any{}, fields["stack"])
}

func TestFromJSON(t *testing.T) {
	t.Parallel()

	e := apiError.Wrap(errors.New("eof"), "read failed", map[string]any{"file": "a.txt"},
		apiError.WithCode("IO"), apiError.WithID("x-1"))

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	s, err := apiError.FromJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "x-1", s.ID)
	assert.Equal(t, "IO", s.Code)
	assert.Equal(t, "Error: read failed", s.Error())
	assert.Equal(t, map[string]any{"file": "a.txt"}, s.Detail)

	at, err := s.ParseTime()
	require.NoError(t, err)
	assert.WithinDuration(t, e.Time(), at, time.Millisecond)

	var cause *apiError.Snapshot
	require.ErrorAs(t, s.Unwrap(), &cause)
	assert.Equal(t, "eof", cause.Message)
	assert.NoError(t, cause.Unwrap())

	_, err = apiError.FromJSON([]byte("{"))
	require.Error(t, err)
}

func TestToSnapshot_SnapshotInput(t *testing.T) {
	t.Parallel()

	src := &apiError.Snapshot{Name: "Remote", Message: "down", Time: "2024-01-01T00:00:00.000Z"}
	s := apiError.ToSnapshot(src)

	assert.NotSame(t, src, s)
	assert.Equal(t, "Remote", s.Name)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", s.Time)
	assert.Equal(t, []string{}, s.Stack)
	assert.False(t, s.Retryable, "a snapshot keeps its own retryable flag")
}

func TestToSnapshot_SnapshotInputIsIndependent(t *testing.T) {
	t.Parallel()

	src := &apiError.Snapshot{
		Name:  "Remote",
		Stack: []string{"frame 0"},
		Cause: &apiError.Snapshot{Name: "Inner", Stack: []string{"inner 0"}},
	}
	s := apiError.ToSnapshot(src)

	s.Stack[0] = "changed"
	s.Cause.Stack[0] = "changed"
	s.Cause.Name = "changed"

	assert.Equal(t, "frame 0", src.Stack[0])
	assert.Equal(t, "inner 0", src.Cause.Stack[0])
	assert.Equal(t, "Inner", src.Cause.Name)
}

func TestToSnapshot_SnapshotInputCycleTerminates(t *testing.T) {
	t.Parallel()

	src := &apiError.Snapshot{Name: "loop"}
	src.Cause = src

	depth := 0
	for c := apiError.ToSnapshot(src); c != nil; c = c.Cause {
		depth++
	}

	assert.Equal(t, apiError.MaxCauseDepth+1, depth)
}
