package api

import (
	"errors"
	"fmt"
)

// Common API errors.
var (
	ErrUnauthorized = errors.New("not signed in or session rejected")
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrServerError  = errors.New("server error")
	ErrNoSession    = errors.New("no bearer token configured")
)

// APIError is a non-2xx response from the retrend backend.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements error matching for APIError.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 400, 422:
		return target == ErrBadRequest
	}
	if e.StatusCode >= 500 {
		return target == ErrServerError
	}
	return false
}

// NewAPIError creates an APIError from an HTTP status code.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}
