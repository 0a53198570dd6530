package models

import "fmt"

// Error codes surfaced to the panel for the guest-list fetch.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeNetwork      = "NETWORK_ERROR"
	ErrCodeUnknown      = "UNKNOWN"
)

// FetchError is a user-presentable upstream failure. Message is already the
// fixed text the panel shows; Code lets the frontend pick retry behavior.
type FetchError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFetchError(code, message string) *FetchError {
	return &FetchError{Code: code, Message: message}
}
