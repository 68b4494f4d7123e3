package devbackend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates a wrong email or password.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid email or password"
}

// ErrUnknownUpload indicates a resume reference that was never uploaded.
type ErrUnknownUpload struct {
	Reference string
}

func (e *ErrUnknownUpload) Error() string {
	return fmt.Sprintf("unknown resume: %s", e.Reference)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid bearer token.
var ErrUnauthorized = errors.New("invalid or expired token")

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		exists  *ErrEmailAlreadyExists
		creds   *ErrInvalidCredentials
		unknown *ErrUnknownUpload
		invalid *ErrValidation
	)
	switch {
	case errors.As(err, &exists):
		return http.StatusConflict
	case errors.As(err, &creds), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
