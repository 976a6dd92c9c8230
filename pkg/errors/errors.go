// Package errors provides structured error types for the GitRefiny application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages with actionable remediation
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure the analyzer or generator can produce carries a code, so
// callers can map it to a specific remediation ("supply a token",
// "repository too large", "retry later") instead of a generic message.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidURL, "invalid GitHub URL: %s", raw)
//	if errors.Is(err, errors.ErrCodeInvalidURL) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidURL   Code = "INVALID_URL"
	ErrCodeMissingField Code = "MISSING_FIELD"
	ErrCodeInvalidTone  Code = "INVALID_TONE"
	ErrCodeInvalidModel Code = "INVALID_MODEL"

	// Resource not found errors
	ErrCodeRepoNotFound     Code = "REPO_NOT_FOUND"
	ErrCodeAnalysisNotFound Code = "ANALYSIS_NOT_FOUND"

	// GitHub API errors
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeAuthRequired Code = "AUTH_REQUIRED"
	ErrCodeInvalidToken Code = "INVALID_TOKEN"
	ErrCodeRepoTooLarge Code = "REPO_TOO_LARGE"
	ErrCodeAPIError     Code = "API_ERROR"

	// Transport errors
	ErrCodeTimeout Code = "TIMEOUT"
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Generation errors
	ErrCodeGeneration Code = "GENERATION_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the HTTP status the API surface returns.
// Unknown codes (and non-Error values) map to 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidURL, ErrCodeMissingField, ErrCodeInvalidTone, ErrCodeInvalidModel:
		return http.StatusBadRequest
	case ErrCodeRepoNotFound, ErrCodeAnalysisNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeAuthRequired:
		return http.StatusForbidden
	case ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case ErrCodeRepoTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork, ErrCodeAPIError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RateLimitError carries GitHub rate-limit details so callers can tell the
// user when to retry or to supply a token for higher limits.
type RateLimitError struct {
	Remaining int       // Requests left in the current window
	Reset     time.Time // When the window resets (zero if unknown)
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if !e.Reset.IsZero() {
		return fmt.Sprintf("rate limited: %d requests remaining, resets at %s",
			e.Remaining, e.Reset.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("rate limited: %d requests remaining", e.Remaining)
}
