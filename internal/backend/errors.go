package backend

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Endpoint string
	Status   int
	Message  string // message or error field of the body, when present
	Cause    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Endpoint, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Unauthorized reports whether the backend rejected the credentials or token.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// SchemaError is a 2xx response whose body does not match the documented schema.
type SchemaError struct {
	Endpoint string
	Cause    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Endpoint, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// TransportError is a failure to reach the backend at all.
type TransportError struct {
	Endpoint string
	Cause    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
