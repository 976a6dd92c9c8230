package errors

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidURL, "bad locator: %s", "nope")

	if err.Code != ErrCodeInvalidURL {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidURL)
	}

	if err.Message != "bad locator: nope" {
		t.Errorf("Message = %v, want %v", err.Message, "bad locator: nope")
	}

	expected := "INVALID_URL: bad locator: nope"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch metadata")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRepoNotFound, "missing"),
			code:     ErrCodeRepoNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeRepoNotFound, "missing"),
			code:     ErrCodeTimeout,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeTimeout, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeTimeout,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeRepoNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRateLimited, "slow down")); got != ErrCodeRateLimited {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeRateLimited)
	}
	if got := GetCode(errors.New("plain")); got != Code("") {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeRepoTooLarge, "repository too large for analysis")
	if got := UserMessage(err); got != "repository too large for analysis" {
		t.Errorf("UserMessage() = %v", got)
	}
	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidURL, http.StatusBadRequest},
		{ErrCodeRepoNotFound, http.StatusNotFound},
		{ErrCodeAnalysisNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeAuthRequired, http.StatusForbidden},
		{ErrCodeInvalidToken, http.StatusUnauthorized},
		{ErrCodeRepoTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeNetwork, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(New(tt.code, "x")); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}

	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d, want 500", got)
	}
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{Remaining: 0, Reset: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	want := "rate limited: 0 requests remaining, resets at 2025-06-01T12:00:00Z"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noReset := &RateLimitError{Remaining: 3}
	if noReset.Error() != "rate limited: 3 requests remaining" {
		t.Errorf("Error() = %q", noReset.Error())
	}
}
