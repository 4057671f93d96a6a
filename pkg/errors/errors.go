package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the configuration generation pipeline
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrScriptArgument ErrorCode = "SCRIPT_ARGUMENT"
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"

	// Location errors
	ErrLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrLocationCreation ErrorCode = "LOCATION_CREATION"
	ErrLocationRemoval  ErrorCode = "LOCATION_REMOVAL"

	// Asset errors
	ErrAssetCreation      ErrorCode = "ASSET_CREATION"
	ErrAssetLocationTaken ErrorCode = "ASSET_LOCATION_TAKEN"

	// Naming errors
	ErrInvalidName ErrorCode = "INVALID_NAME"

	// Registry errors
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Pipeline errors
	ErrSettingsParsing ErrorCode = "SETTINGS_PARSING"
	ErrTemplateRender  ErrorCode = "TEMPLATE_RENDER"
)

// ConfigMeError is the single domain error kind. The Code tells the subkinds
// apart; Message is the exact human readable text shown to users.
type ConfigMeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface. Constructors embed the cause into
// Message where users need to see it, so Wrapped is not repeated here.
func (e *ConfigMeError) Error() string {
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *ConfigMeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ConfigMeError) Is(target error) bool {
	var targetErr *ConfigMeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ConfigMeError with the given code and message
func New(code ErrorCode, message string) *ConfigMeError {
	return &ConfigMeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ConfigMeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ConfigMeError {
	return &ConfigMeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ConfigMeError
func Wrap(err error, code ErrorCode, message string) *ConfigMeError {
	if err == nil {
		return nil
	}
	return &ConfigMeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ConfigMeError {
	if err == nil {
		return nil
	}
	return &ConfigMeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapOS wraps a filesystem failure, producing the
// "[Errno <code>] <reason>: '<path>'" message. The path reported is the one
// carried by the OS error when present, otherwise the given path.
func WrapOS(err error, code ErrorCode, path string) *ConfigMeError {
	if err == nil {
		return nil
	}

	errno, reason, offending := describeOS(err, path)

	return Wrapf(err, code, "[Errno %d] %s: '%s'", errno, reason, offending).
		WithDetail("errno", errno).
		WithDetail("reason", reason).
		WithDetail("path", offending)
}

func describeOS(err error, path string) (int, string, string) {
	reason := err.Error()

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if pathErr.Path != "" {
			path = pathErr.Path
		}
		reason = pathErr.Err.Error()
	}

	errno := 0
	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		errno = int(sysErr)
	}

	return errno, reason, path
}

// WithDetail adds a detail to the error
func (e *ConfigMeError) WithDetail(key string, value interface{}) *ConfigMeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ConfigMeError) WithDetails(details map[string]interface{}) *ConfigMeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsDomainError reports whether err is, or wraps, a ConfigMeError
func IsDomainError(err error) bool {
	var cmErr *ConfigMeError
	return errors.As(err, &cmErr)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cmErr *ConfigMeError
	if errors.As(err, &cmErr) {
		return cmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ConfigMeError
func GetErrorCode(err error) ErrorCode {
	var cmErr *ConfigMeError
	if errors.As(err, &cmErr) {
		return cmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ConfigMeError
func GetErrorDetails(err error) map[string]interface{} {
	var cmErr *ConfigMeError
	if errors.As(err, &cmErr) {
		return cmErr.Details
	}
	return nil
}
