package api

import (
	"fmt"
	"net/http"
)

// Error is the single error shape of the API. Only Message reaches the caller;
// Log carries the underlying cause for server-side logging.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Log     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Log != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Status, e.Message, e.Log)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Log
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationError is returned when required fields are missing (400).
func ValidationError(msg string, cause error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg, Log: cause}
}

// NotFoundError creates a standard 404 error.
func NotFoundError(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// StoreError wraps a store failure. The cause is logged, never exposed.
func StoreError(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, Log: err}
}

// InternalError is the catch-all for failures with no resource-specific message.
func InternalError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal Server Error", Log: err}
}

// RateLimitError creates standard 429 rate limit error
func RateLimitError() *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: "rate limit exceeded"}
}
