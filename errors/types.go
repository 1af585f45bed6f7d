package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Content errors
	ErrCodeContentParse   ErrorCode = "CONTENT_PARSE"
	ErrCodePageNotFound   ErrorCode = "PAGE_NOT_FOUND"
	ErrCodeDuplicatePage  ErrorCode = "DUPLICATE_PAGE"
	ErrCodeContentMissing ErrorCode = "CONTENT_MISSING"

	// Layout and render errors
	ErrCodeLayoutNotFound ErrorCode = "LAYOUT_NOT_FOUND"
	ErrCodeTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrCodeTemplateExec   ErrorCode = "TEMPLATE_EXEC"
	ErrCodeMarkdownRender ErrorCode = "MARKDOWN_RENDER"

	// Build errors
	ErrCodeOutputWrite ErrorCode = "OUTPUT_WRITE"
	ErrCodeStaticCopy  ErrorCode = "STATIC_COPY"
	ErrCodeBuildFailed ErrorCode = "BUILD_FAILED"

	// Server errors
	ErrCodeServerStart ErrorCode = "SERVER_START"
	ErrCodeWatchFailed ErrorCode = "WATCH_FAILED"

	// Scaffold and import errors
	ErrCodeProjectExists ErrorCode = "PROJECT_EXISTS"
	ErrCodeImportFailed  ErrorCode = "IMPORT_FAILED"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// LecternError represents a structured error with context
type LecternError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LecternError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LecternError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LecternError) WithDetail(key string, value interface{}) *LecternError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LecternError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LecternError
func New(code ErrorCode, message string) *LecternError {
	return &LecternError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LecternError
func Wrap(err error, code ErrorCode, message string) *LecternError {
	return &LecternError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific LecternError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	lecternErr, ok := err.(*LecternError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return lecternErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	lecternErr, ok := err.(*LecternError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return lecternErr.Code
}
