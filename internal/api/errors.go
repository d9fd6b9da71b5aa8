package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for common API error conditions.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrStreamClosed       = errors.New("stream closed")

	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrMissingBaseURL  = errors.New("missing base URL")
)

// APIError is an error reported by the provider, either as a non-2xx status
// or as an error object inside a 200 response. StatusCode is 0 for the latter.
type APIError struct {
	StatusCode int
	Message    string
	Body       string

	// RetryAfter is the server's requested delay, if it sent one.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = strings.TrimSpace(e.Body)
	}
	if e.StatusCode == 0 {
		return "API error: " + detail
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, detail)
}

// Unwrap maps the status code onto a sentinel error.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

// StreamError represents an error that occurred during streaming.
type StreamError struct {
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stream error: %s", e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// newStatusError builds an APIError from a non-2xx response body. The
// OpenAI-style {"error":{"message":...}} envelope is unwrapped when present.
func newStatusError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
	var envelope ChatResponse
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		e.Message = envelope.Error.Message
	}
	return e
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// are ignored.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Describe returns a short, user-facing explanation of err.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "the provider rejected the API key"
	case errors.Is(err, ErrRateLimited):
		return "rate limited by the provider; try again shortly"
	case errors.Is(err, ErrServiceUnavailable):
		return "the provider is unavailable right now"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out waiting for the answer"
	}
	return err.Error()
}
