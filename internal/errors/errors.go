package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthExchangeFailed ErrorCode = "AUTH-001"
	ErrCodeAuthUnauthorized   ErrorCode = "AUTH-002"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-003"
	ErrCodeAuthForbidden      ErrorCode = "AUTH-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequestFailed ErrorCode = "API-001"
	ErrCodeAPIStatus        ErrorCode = "API-002"
	ErrCodeAPIMalformedBody ErrorCode = "API-003"
	ErrCodeAPINotFound      ErrorCode = "API-004"

	// Store errors (STORE-001 to STORE-099)
	ErrCodeStoreWriteFailed ErrorCode = "STORE-001"
	ErrCodeStoreClearFailed ErrorCode = "STORE-002"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFail ErrorCode = "CONFIG-003"
)

// DashError represents an enhanced error with code, suggestions, and documentation
type DashError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *DashError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *DashError) Unwrap() error {
	return e.Cause
}

// New creates a new DashError
func New(code ErrorCode, message string) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new DashError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *DashError {
	return &DashError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *DashError) WithSuggestion(suggestion string) *DashError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *DashError) WithSuggestions(suggestions ...string) *DashError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *DashError) WithDocs(url string) *DashError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a missing-credentials error
func NewNotLoggedInError() *DashError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'crmdash auth login' to authenticate").
		WithSuggestion("Check that ~/.crmdash contains your saved credentials")
}

// NewUnauthorizedError creates an error for a rejected credential.
// The stored session has already been torn down when this is returned.
func NewUnauthorizedError() *DashError {
	return New(ErrCodeAuthUnauthorized, "session expired or invalid").
		WithSuggestion("Run 'crmdash auth login' to re-authenticate")
}

// NewAPIStatusError creates a status-coded transport error
func NewAPIStatusError(status int, detail string) *DashError {
	msg := fmt.Sprintf("request failed with status %d", status)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}

	return New(ErrCodeAPIStatus, msg).
		WithSuggestion("Check that the CRM backend is reachable").
		WithSuggestion("Run 'crmdash config view' to verify the API base URL")
}

// NewMalformedBodyError creates an error for a response that failed schema validation
func NewMalformedBodyError(cause error) *DashError {
	return Wrap(ErrCodeAPIMalformedBody, "backend returned a malformed response", cause).
		WithSuggestion("Check that the API base URL points at a CRM backend").
		WithSuggestion("Run 'crmdash config view' to verify the API base URL")
}

// NewConfigInvalidError creates a config parse error
func NewConfigInvalidError(path string, cause error) *DashError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration file: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the file").
		WithSuggestion("Delete the file to fall back to defaults")
}
