package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrUnknownLibrary ErrorCode = "UNKNOWN_LIBRARY"

	// Document errors
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"

	// Archive errors
	ErrArchiveOpen    ErrorCode = "ARCHIVE_OPEN"
	ErrArchiveExtract ErrorCode = "ARCHIVE_EXTRACT"
	ErrArchiveEmpty   ErrorCode = "ARCHIVE_EMPTY"

	// Interaction errors
	ErrPromptCancelled ErrorCode = "PROMPT_CANCELLED"

	// Version control errors
	ErrVCSUnavailable ErrorCode = "VCS_UNAVAILABLE"
	ErrVCSCommit      ErrorCode = "VCS_COMMIT"
	ErrVCSPush        ErrorCode = "VCS_PUSH"
)

// KicadlibError represents a structured error with code and details
type KicadlibError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KicadlibError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KicadlibError) Unwrap() error {
	return e.Wrapped
}

// Is matches any KicadlibError carrying the same code
func (e *KicadlibError) Is(target error) bool {
	t, ok := coded(target)
	return ok && t.Code == e.Code
}

func build(code ErrorCode, message string, wrapped error) *KicadlibError {
	return &KicadlibError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a KicadlibError with the given code and message
func New(code ErrorCode, message string) *KicadlibError {
	return build(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KicadlibError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *KicadlibError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KicadlibError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail adds a detail to the error
func (e *KicadlibError) WithDetail(key string, value interface{}) *KicadlibError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *KicadlibError) WithDetails(details map[string]interface{}) *KicadlibError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// coded finds the outermost KicadlibError in the chain of err
func coded(err error) (*KicadlibError, bool) {
	var libErr *KicadlibError
	ok := errors.As(err, &libErr)
	return libErr, ok
}

// IsErrorCode reports whether the outermost coded error in err has code
func IsErrorCode(err error, code ErrorCode) bool {
	libErr, ok := coded(err)
	return ok && libErr.Code == code
}

// GetErrorCode returns the code of err, or ErrUnknown for uncoded errors
func GetErrorCode(err error) ErrorCode {
	if libErr, ok := coded(err); ok {
		return libErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of err, or nil for uncoded errors
func GetErrorDetails(err error) map[string]interface{} {
	if libErr, ok := coded(err); ok {
		return libErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err must abort a whole run before any
// library file is touched.
func IsConfigurationError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrUnknownLibrary,
		ErrArchiveOpen, ErrArchiveExtract:
		return true
	}
	return false
}
