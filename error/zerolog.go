package error

import (
	"github.com/rs/zerolog"
)

// MarshalZerologObject logs the error as its snapshot:
//
//	log.Error().Object("error", err).Msg("request failed")
func (e *Error) MarshalZerologObject(ev *zerolog.Event) {
	ToSnapshot(e).MarshalZerologObject(ev)
}

func (s *Snapshot) MarshalZerologObject(ev *zerolog.Event) {
	if s.ID != "" {
		ev.Str("id", s.ID)
	}

	ev.Str("time", s.Time)

	if s.Code != "" {
		ev.Str("code", s.Code)
	}

	ev.Str("name", s.Name).
		Str("message", s.Message).
		Strs("stack", s.Stack).
		Bool("retryable", s.Retryable)

	if s.Detail != nil {
		ev.Dict("detail", zerolog.Dict().Fields(s.Detail))
	}

	if s.Cause != nil {
		ev.Object("cause", s.Cause)
	}
}

// ZerologErrorMarshaler renders any error as a snapshot object. Install it with
//
//	zerolog.ErrorMarshalFunc = apiError.ZerologErrorMarshaler
func ZerologErrorMarshaler(err error) any {
	if err == nil {
		return nil
	}

	return ToSnapshot(err)
}
