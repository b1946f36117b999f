package api

import (
	"errors"
	"fmt"
)

// APIError is a structured error returned by the backend with a non-2xx
// status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// TransportError wraps a failure to reach the backend at all (connection
// refused, timeout, malformed response body).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsBackend reports whether err carries a structured backend error.
func IsBackend(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
