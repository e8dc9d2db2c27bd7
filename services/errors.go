package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeUnknownProvider ErrorType = "unknown_provider"
	ErrorTypeUpstream        ErrorType = "upstream"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeAuth            ErrorType = "auth"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeInternal        ErrorType = "internal"
)

// Detail keys shared by every dispatch error
const (
	DetailKind     = "kind"
	DetailProvider = "provider"
	DetailStatus   = "status"
	DetailBody     = "body"
)

// maxBodyDetail bounds how much of an upstream body is echoed back to callers
const maxBodyDetail = 2048

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: map[string]interface{}{DetailKind: string(errType)},
	}
}

// Sentinels for errors.Is comparisons; never mutate them.
var (
	ErrConfig          = &DomainError{Type: ErrorTypeConfig, Message: "invalid configuration"}
	ErrUnknownProvider = &DomainError{Type: ErrorTypeUnknownProvider, Message: "unknown provider"}
	ErrUpstream        = &DomainError{Type: ErrorTypeUpstream, Message: "upstream error"}
	ErrTimeout         = &DomainError{Type: ErrorTypeTimeout, Message: "upstream timeout"}
	ErrAuth            = &DomainError{Type: ErrorTypeAuth, Message: "backend authentication failed"}
	ErrInvalidInput    = &DomainError{Type: ErrorTypeValidation, Message: "invalid input"}
	ErrInternal        = &DomainError{Type: ErrorTypeInternal, Message: "internal server error"}
)

// NewConfigError reports registry or configuration problems found at startup
func NewConfigError(message string, err error) *DomainError {
	return NewDomainError(ErrorTypeConfig, message, err)
}

// NewUnknownProviderError reports a decision that names an unregistered provider
func NewUnknownProviderError(provider string) *DomainError {
	return NewDomainError(ErrorTypeUnknownProvider, fmt.Sprintf("provider %q is not registered", provider), nil).
		WithDetail(DetailProvider, provider)
}

// NewUpstreamError reports a non-2xx backend answer, or a transport failure when status is 0
func NewUpstreamError(provider string, status int, body []byte, cause error) *DomainError {
	msg := fmt.Sprintf("provider %q returned status %d", provider, status)
	if status == 0 {
		msg = fmt.Sprintf("provider %q transport failure", provider)
	}
	e := NewDomainError(ErrorTypeUpstream, msg, cause).
		WithDetail(DetailProvider, provider).
		WithDetail(DetailStatus, status)
	if len(body) > 0 {
		e.WithDetail(DetailBody, truncate(string(body), maxBodyDetail))
	}
	return e
}

// NewTimeoutError reports that the bounded wait for a backend was exceeded
func NewTimeoutError(provider string, cause error) *DomainError {
	return NewDomainError(ErrorTypeTimeout, fmt.Sprintf("provider %q did not answer in time", provider), cause).
		WithDetail(DetailProvider, provider)
}

// NewAuthError reports a missing or rejected backend credential
func NewAuthError(provider, message string) *DomainError {
	return NewDomainError(ErrorTypeAuth, message, nil).
		WithDetail(DetailProvider, provider)
}

// NewValidationError reports malformed caller input
func NewValidationError(message string, err error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Error type checking helper functions

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool { return hasType(err, ErrorTypeConfig) }

// IsUnknownProviderError checks if an error names an unregistered provider
func IsUnknownProviderError(err error) bool { return hasType(err, ErrorTypeUnknownProvider) }

// IsUpstreamError checks if an error is a backend error
func IsUpstreamError(err error) bool { return hasType(err, ErrorTypeUpstream) }

// IsTimeoutError checks if an error is a backend timeout
func IsTimeoutError(err error) bool { return hasType(err, ErrorTypeTimeout) }

// IsAuthError checks if an error is a backend credential error
func IsAuthError(err error) bool { return hasType(err, ErrorTypeAuth) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return hasType(err, ErrorTypeValidation) }

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool { return hasType(err, ErrorTypeInternal) }

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
