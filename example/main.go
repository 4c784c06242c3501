// Package main demonstrates usage of the scg-xerror packages.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/next-trace/scg-xerror/error"
)

type NotFoundError struct{ *error.Base }

var errTimeout = error.NewKind("TimeoutError", error.WithCode("TIMEOUT"), error.WithRetryable(true))

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.ErrorMarshalFunc = error.ZerologErrorMarshaler

	// Direct construction
	e := error.New("customer 42 not found", map[string]any{"customer_id": "42"},
		error.WithCode("customer.not_found"), error.WithGeneratedID())
	fmt.Println(e.Error(), e.ID(), e.Code(), e.Retryable(), e.Detail())

	// Wrap a foreign cause and keep adding detail
	cause := errors.New("row not found")
	err := error.Wrap(cause, "customer lookup failed", nil).
		WithDetailKV("customer_id", "42").
		WithDetailKV("table", "customers")
	logger.Error().Err(err).Msg("lookup")

	// Subtype by embedding
	nf := &NotFoundError{error.New("order 7 not found", nil, error.WithTypeName[NotFoundError]())}
	fmt.Println(nf.Name(), error.IsErrorType[*NotFoundError](nf), error.IsErrorType[*error.Error](nf), nf.IsType((*NotFoundError)(nil)))

	// Kinds
	timeout := errTimeout.New("upstream timed out", map[string]any{"after": "5s"})
	data, marshalErr := json.Marshal(timeout)
	if marshalErr != nil {
		logger.Error().Err(marshalErr).Msg("marshal")
		return
	}
	fmt.Println(string(data))

	// Any error converts to a snapshot
	fmt.Println(error.ToSnapshot(fmt.Errorf("wrapped: %w", cause)).Cause.Message)
	fmt.Println(error.FormatMessage([]string{"failed", "to", "sync"}, map[string]any{"attempt": 3}))
	fmt.Println(error.BuildFormattedError("ConfigError", "invalid config", map[string]any{"key": "port"}))
}
