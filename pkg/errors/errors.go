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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Manifest configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Environment errors
	ErrHomeResolve  ErrorCode = "HOME_RESOLVE"
	ErrPkgMgrDetect ErrorCode = "PKGMGR_DETECT"

	// Link expansion errors
	ErrLinkWalk   ErrorCode = "LINK_WALK"
	ErrLinkSource ErrorCode = "LINK_SOURCE"
)

// ManifestError represents a structured error with code and details
type ManifestError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ManifestError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ManifestError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ManifestError) Is(target error) bool {
	var targetErr *ManifestError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ManifestError with the given code and message
func New(code ErrorCode, message string) *ManifestError {
	return &ManifestError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ManifestError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ManifestError {
	return &ManifestError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ManifestError
func Wrap(err error, code ErrorCode, message string) *ManifestError {
	if err == nil {
		return nil
	}
	return &ManifestError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ManifestError {
	if err == nil {
		return nil
	}
	return &ManifestError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ManifestError) WithDetail(key string, value interface{}) *ManifestError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var merr *ManifestError
	if errors.As(err, &merr) {
		return merr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ManifestError
func GetErrorCode(err error) ErrorCode {
	var merr *ManifestError
	if errors.As(err, &merr) {
		return merr.Code
	}
	return ErrUnknown
}
