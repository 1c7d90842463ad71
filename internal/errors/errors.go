package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeMissingInput ErrorType = "missing_input"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeRateLimited  ErrorType = "rate_limited"
	ErrorTypeTooLarge     ErrorType = "too_large"
)

// Client-facing messages.
const (
	MessageMissingInput = "No text provided for analysis"
	MessageRateLimited  = "Too many requests"
	MessageTooLarge     = "Request body too large"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewMissingInputError reports a request without usable text.
func NewMissingInputError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingInput,
		Message:    MessageMissingInput,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewInternalError wraps an unexpected failure. The client message carries
// the failure description.
func NewInternalError(cause error) *AppError {
	details := "unknown error"
	if cause != nil {
		details = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    "An unexpected error occurred: " + details,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewRateLimitedError creates a new rate limit error
func NewRateLimitedError() *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimited,
		Message:    MessageRateLimited,
		StatusCode: http.StatusTooManyRequests,
	}
}

// NewTooLargeError creates a new body size error
func NewTooLargeError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Message:    MessageTooLarge,
		StatusCode: http.StatusRequestEntityTooLarge,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show to clients.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return NewInternalError(err).Message
}
