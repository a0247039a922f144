package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

// Error types for different categories of failures
const (
	// Input/File errors
	ErrInputRead    = "INPUT_READ_ERROR"
	ErrFileNotFound = "FILE_NOT_FOUND"

	// Lexing errors
	ErrLex = "LEX_ERROR"

	// Usage errors
	ErrUsage       = "USAGE_ERROR"
	ErrUnknownKind = "UNKNOWN_TOKEN_KIND"

	// Output errors
	ErrEncode = "ENCODE_ERROR"

	// System errors
	ErrWatch = "WATCH_ERROR"
)

// CLIError represents a structured error with type and context
type CLIError struct {
	Type    string
	Message string
	Hint    string // How to fix it
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError
func New(errorType, message string) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a new CLIError wrapping an existing error
func Wrap(errorType, message string, cause error) *CLIError {
	e := New(errorType, message)
	e.Cause = cause
	return e
}

// WithContext adds context information to the error
func (e *CLIError) WithContext(key string, value any) *CLIError {
	e.Context[key] = value
	return e
}

// WithHint attaches a suggestion for fixing the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// GetContext returns context value by key
func (e *CLIError) GetContext(key string) (any, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// Helper functions for common error scenarios

// NewInputError creates an error for a source file that could not be read.
// Missing files get ErrFileNotFound.
func NewInputError(path string, cause error) *CLIError {
	if stderrors.Is(cause, fs.ErrNotExist) {
		return Wrap(ErrFileNotFound, fmt.Sprintf("File '%s' not found", path), cause).
			WithContext("path", path)
	}
	return Wrap(ErrInputRead, fmt.Sprintf("Failed to read '%s'", path), cause).
		WithContext("path", path)
}

// NewLexError creates an error for a file that failed to lex
func NewLexError(path string, cause error) *CLIError {
	return Wrap(ErrLex, fmt.Sprintf("Failed to lex '%s'", path), cause).
		WithContext("path", path)
}

// NewUsageError creates an error for invalid flags or arguments
func NewUsageError(message, hint string) *CLIError {
	return New(ErrUsage, message).WithHint(hint)
}

// NewUnknownKindError creates an error for a token kind filter that names
// no kind, suggesting close matches
func NewUnknownKindError(kind string, suggestions []string) *CLIError {
	e := New(ErrUnknownKind, fmt.Sprintf("Unknown token kind '%s'", kind)).
		WithContext("kind", kind).
		WithContext("suggestions", suggestions)
	if len(suggestions) > 0 {
		e.Hint = "Did you mean " + strings.Join(suggestions, ", ") + "?"
	} else {
		e.Hint = "Run 'frontc kinds' to list token kinds"
	}
	return e
}

// NewEncodeError creates an error for output that could not be encoded
func NewEncodeError(format string, cause error) *CLIError {
	return Wrap(ErrEncode, fmt.Sprintf("Failed to encode %s output", format), cause).
		WithContext("format", format)
}

// NewWatchError creates an error for a failed file watch
func NewWatchError(path string, cause error) *CLIError {
	return Wrap(ErrWatch, fmt.Sprintf("Failed to watch '%s'", path), cause).
		WithContext("path", path)
}

// IsErrorType checks if err, or any error it wraps, is a CLIError of the
// given type
func IsErrorType(err error, errorType string) bool {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr.Type == errorType
	}
	return false
}
