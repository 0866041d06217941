package errors

import (
	stderrors "errors"
	"fmt"
)

// IndexError is the structured error type for sentindex.
// It provides rich context for error handling, logging, and user presentation.
type IndexError struct {
	// Code is the unique error code (e.g., "ERR_201_FILE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, State, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Sentinels for errors.Is matching. Matching is by code, so any IndexError
// carrying the same code matches regardless of message.
var (
	ErrNotFound        = New(ErrCodeFileNotFound, "not found", nil)
	ErrAlreadyIndexed  = New(ErrCodeAlreadyIndexed, "already indexed", nil)
	ErrNotInitialized  = New(ErrCodeNotInitialized, "store not initialized", nil)
	ErrInvalidArgument = New(ErrCodeInvalidArgument, "invalid argument", nil)
	ErrStorageCorrupt  = New(ErrCodeStorageCorrupt, "storage corrupt", nil)
	ErrStorageFailed   = New(ErrCodeStorageFailed, "storage failed", nil)
	ErrStoreBusy       = New(ErrCodeStoreBusy, "store busy", nil)
	ErrStoreLocked     = New(ErrCodeStoreLocked, "store locked", nil)
)

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *IndexError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with IndexError.
func (e *IndexError) Is(target error) bool {
	if t, ok := target.(*IndexError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *IndexError) WithDetail(key, value string) *IndexError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *IndexError) WithSuggestion(suggestion string) *IndexError {
	e.Suggestion = suggestion
	return e
}

// New creates a new IndexError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *IndexError {
	return &IndexError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates an IndexError from an existing error.
// The error's message becomes the IndexError message.
func Wrap(code string, err error) *IndexError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *IndexError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// NotFoundError reports a path that does not resolve to a readable file.
func NotFoundError(path string, cause error) *IndexError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file %s not found", path), cause).
		WithDetail("path", path)
}

// NotInitializedError reports an operation attempted before any store exists.
func NotInitializedError() *IndexError {
	return New(ErrCodeNotInitialized, "no data in the system", nil).
		WithSuggestion("Run 'sentindex init' or add documents first")
}

// InvalidArgumentError creates a validation-related error.
func InvalidArgumentError(message string, cause error) *IndexError {
	return New(ErrCodeInvalidArgument, message, cause)
}

// StorageError wraps a failure of the backing store.
func StorageError(message string, cause error) *IndexError {
	return New(ErrCodeStorageFailed, message, cause)
}

// CorruptError reports unreadable persisted state.
func CorruptError(message string, cause error) *IndexError {
	return New(ErrCodeStorageCorrupt, message, cause).
		WithSuggestion("Run 'sentindex check' for details, or 'sentindex clean' and re-ingest")
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *IndexError {
	return New(ErrCodeInternal, message, cause)
}

// As returns the first IndexError in err's chain.
func As(err error) (*IndexError, bool) {
	var ie *IndexError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsRetryable checks if an error is retryable.
// Returns true if the chain holds an IndexError with Retryable flag set.
func IsRetryable(err error) bool {
	if ie, ok := As(err); ok {
		return ie.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if ie, ok := As(err); ok {
		return ie.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from an IndexError.
// Returns empty string if not an IndexError.
func GetCode(err error) string {
	if ie, ok := As(err); ok {
		return ie.Code
	}
	return ""
}

// GetCategory extracts the category from an IndexError.
// Returns empty string if not an IndexError.
func GetCategory(err error) Category {
	if ie, ok := As(err); ok {
		return ie.Category
	}
	return ""
}
