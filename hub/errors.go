package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for the common Hub API failure modes. They match the
// corresponding *APIError values through errors.Is.
var (
	ErrNotFound     = errors.New("repository not found")
	ErrUnauthorized = errors.New("unauthorized: a valid access token is required")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
)

// Validation errors raised before any request is sent.
var (
	ErrInvalidRepoID = errors.New("repository id is required")
)

// APIError is a non-2xx response from the Hub API.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("hub api: %s (status %d, request id %s)", e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("hub api: %s (status %d)", e.Message, e.StatusCode)
}

// Is maps well-known status codes onto the package sentinels so callers can
// write errors.Is(err, hub.ErrNotFound) without unwrapping by hand.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// newAPIError drains the response body and builds an *APIError from it.
// The Hub reports failures as {"error": "..."}; anything else falls back to
// the standard status text.
func newAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}
