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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Control path errors
	ErrBadPath     ErrorCode = "BAD_PATH"
	ErrUnknownPath ErrorCode = "UNKNOWN_PATH"

	// Dispatch errors
	ErrTypeMismatch ErrorCode = "TYPE_MISMATCH"
	ErrEnumInvalid  ErrorCode = "ENUM_INVALID"
	ErrNotImage     ErrorCode = "NOT_IMAGE"

	// Runtime capability errors
	ErrUnsupported ErrorCode = "UNSUPPORTED"

	// Image substitution errors
	ErrFetchFailed  ErrorCode = "FETCH_FAILED"
	ErrDecodeFailed ErrorCode = "DECODE_FAILED"

	// Loading errors
	ErrSceneLoad    ErrorCode = "SCENE_LOAD"
	ErrSnapshotLoad ErrorCode = "SNAPSHOT_LOAD"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
)

// MarionetteError represents a structured error with code and details
type MarionetteError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MarionetteError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MarionetteError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MarionetteError) Is(target error) bool {
	var targetErr *MarionetteError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MarionetteError with the given code and message
func New(code ErrorCode, message string) *MarionetteError {
	return &MarionetteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MarionetteError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MarionetteError {
	return &MarionetteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MarionetteError
func Wrap(err error, code ErrorCode, message string) *MarionetteError {
	if err == nil {
		return nil
	}
	return &MarionetteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MarionetteError {
	if err == nil {
		return nil
	}
	return &MarionetteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MarionetteError) WithDetail(key string, value interface{}) *MarionetteError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var merr *MarionetteError
	if errors.As(err, &merr) {
		return merr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MarionetteError
func GetErrorCode(err error) ErrorCode {
	var merr *MarionetteError
	if errors.As(err, &merr) {
		return merr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MarionetteError
func GetErrorDetails(err error) map[string]interface{} {
	var merr *MarionetteError
	if errors.As(err, &merr) {
		return merr.Details
	}
	return nil
}
