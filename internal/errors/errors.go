package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an
// AppError anywhere in the chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode replaces the code of err, wrapping plain errors. The plain
// error's text is kept once, as the cause.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:  code,
		Cause: err,
	}
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN".
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsDataLoadError reports whether err carries CodeDataLoad.
func IsDataLoadError(err error) bool {
	return GetCode(err) == CodeDataLoad
}

// Predefined error codes
const (
	CodeDataLoad      = "DATA_LOAD_ERROR"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeOutput        = "OUTPUT_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// DataLoadErrorf reports an input file that is missing or does not match
// the passenger schema. It is fatal for a run.
func DataLoadErrorf(format string, args ...interface{}) *AppError {
	return New(CodeDataLoad, fmt.Sprintf(format, args...))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// OutputError wraps a failure to write an artifact.
func OutputError(artifact string, cause error) *AppError {
	return &AppError{
		Code:    CodeOutput,
		Message: fmt.Sprintf("failed to write %s", artifact),
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
