package fetch

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates a timeout while issuing a request.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrForbidden indicates a forbidden response (HTTP 403).
type ErrForbidden struct {
	URL string
}

func (e ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.URL)
}

// ErrNotFound indicates a missing page (HTTP 404).
type ErrNotFound struct {
	URL string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("not_found: %s", e.URL)
}

// ErrRateLimited indicates the server rate-limited the request (HTTP 429).
type ErrRateLimited struct {
	URL string
}

func (e ErrRateLimited) Error() string {
	return fmt.Sprintf("rate_limited: %s", e.URL)
}

// ErrStatus is any other unsuccessful HTTP status.
type ErrStatus struct {
	URL  string
	Code int
}

func (e ErrStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.URL)
}

// ErrorType returns a short label for err, for logs and metrics.
func ErrorType(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var forbidden ErrForbidden
	if errors.As(err, &forbidden) {
		return "forbidden"
	}
	var notFound ErrNotFound
	if errors.As(err, &notFound) {
		return "not_found"
	}
	var rateLimited ErrRateLimited
	if errors.As(err, &rateLimited) {
		return "rate_limited"
	}
	var status ErrStatus
	if errors.As(err, &status) {
		return "status"
	}
	return "other"
}
