package errors

import (
	"fmt"
)

// Error is the structured error type for catsearch.
// It provides rich context for error handling, logging, and API responses.
type Error struct {
	// Code is the unique error code (e.g., "ERR_301_SOURCE_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Storage, Source, ...).
	Category Category

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with Error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
// Category and retryable flag are derived from the code.
func New(code string, message string, cause error) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates an Error from an existing error.
// The error's message becomes the Error message.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinel errors for errors.Is comparison across package boundaries.
var (
	// ErrSourceUnavailable signals that the backing store could not serve
	// the bulk read and no cached index snapshot was available.
	ErrSourceUnavailable = New(ErrCodeSourceUnavailable, "search index source unavailable", nil)

	// ErrInvalidQuery signals malformed search parameters.
	ErrInvalidQuery = New(ErrCodeInvalidQuery, "invalid search query", nil)
)

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *Error {
	return New(ErrCodeConfigInvalid, message, cause)
}

// StorageError creates a backing-store error.
func StorageError(message string, cause error) *Error {
	return New(ErrCodeStorageQuery, message, cause)
}

// SourceError creates a bulk-read error. Source errors are retryable.
func SourceError(message string, cause error) *Error {
	return New(ErrCodeSourceUnavailable, message, cause)
}

// QueryError creates a query validation error.
func QueryError(message string) *Error {
	return New(ErrCodeInvalidQuery, message, nil)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *Error {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is an Error with the Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(*Error); ok {
		return ce.Retryable
	}
	return false
}

// GetCode extracts the error code from an Error.
// Returns empty string if not an Error.
func GetCode(err error) string {
	if ce, ok := err.(*Error); ok {
		return ce.Code
	}
	return ""
}
