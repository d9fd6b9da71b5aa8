package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff caps both the computed backoff and any Retry-After delay.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
	}
}

// backoff is the delay before retry number attempt+1.
func (r RetryConfig) backoff(attempt int) time.Duration {
	d := r.InitialBackoff
	for i := 0; i < attempt && d < r.MaxBackoff; i++ {
		d *= 2
	}
	return min(d, r.MaxBackoff)
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// sendFunc issues one HTTP attempt.
type sendFunc func(ctx context.Context) (*http.Response, error)

// decodeFunc consumes a successful response.
type decodeFunc[T any] func(resp *http.Response) (T, error)

// doWithRetry sends until a 2xx arrives, a non-retryable failure occurs, or
// the retry budget is spent. Only the attempt that returns is decoded.
func doWithRetry[T any](ctx context.Context, c *client, send sendFunc, decode decodeFunc[T]) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("context error: %w", err)
		}

		resp, err := send(ctx)
		if err != nil {
			err = fmt.Errorf("sending request: %w", err)
			if ctx.Err() != nil || !c.canRetry(attempt) {
				return zero, err
			}
			if err := c.wait(ctx, attempt, 0, err); err != nil {
				return zero, err
			}
			continue
		}

		if isSuccessStatus(resp.StatusCode) {
			return decode(resp)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		var apiErr *APIError
		if readErr != nil {
			apiErr = &APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("failed to read error body: %v", readErr),
			}
		} else {
			apiErr = newStatusError(resp, body)
		}

		if !isRetryableStatus(resp.StatusCode) || !c.canRetry(attempt) {
			return zero, apiErr
		}
		if err := c.wait(ctx, attempt, apiErr.RetryAfter, apiErr); err != nil {
			return zero, err
		}
	}
}

func (c *client) canRetry(attempt int) bool {
	return c.retry != nil && attempt < c.retry.MaxRetries
}

// wait sleeps before the next attempt. A server-requested delay wins over
// the computed backoff but is still capped by MaxBackoff.
func (c *client) wait(ctx context.Context, attempt int, requested time.Duration, cause error) error {
	d := c.retry.backoff(attempt)
	if requested > 0 {
		d = min(requested, c.retry.MaxBackoff)
	}

	c.log.WithFields(logrus.Fields{
		"attempt": attempt + 1,
		"delay":   d.String(),
	}).WithError(cause).Debug("retrying request")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
