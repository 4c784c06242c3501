package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apiError "github.com/next-trace/scg-xerror/error"
)

// ContentType is the media type of encoded snapshots.
const ContentType = "application/json"

// Write writes err as a snapshot JSON body with the given status code.
func Write(w http.ResponseWriter, status int, err error) error {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(apiError.ToSnapshot(err)); encErr != nil {
		return fmt.Errorf("failed to encode error snapshot: %w", encErr)
	}

	return nil
}

// FromResponse decodes the snapshot carried by resp and closes its body.
//
// A body holds a snapshot when it decodes as one and carries the always-present time
// field. Any other body yields a snapshot named "HTTPError" whose message is the body
// text, retryable for 5xx statuses. Only failing to read the body is an error.
func FromResponse(resp *http.Response) (*apiError.Snapshot, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read error response: %w", err)
	}

	s, err := apiError.FromJSON(body)
	if err == nil && s.Time != "" {
		return s, nil
	}

	s = apiError.ToSnapshot(nil)
	s.Name = "HTTPError"
	s.Message = strings.TrimSpace(string(body))
	s.Code = http.StatusText(resp.StatusCode)
	s.Retryable = resp.StatusCode >= http.StatusInternalServerError

	return s, nil
}
