package apperrors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies an AppError for clients and logs.
type ErrorCode string

// AppError is the application error carried from services to the HTTP
// boundary. HTTPCode and Err are never serialized.
type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Fields   []string  `json:"errors,omitempty"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a fresh AppError.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches a cause to a new AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithFields returns a copy carrying field-scoped error messages. Copying
// keeps the predeclared errors immutable.
func (e *AppError) WithFields(fields []string) *AppError {
	clone := *e
	clone.Fields = fields
	return &clone
}

// WithMessage returns a copy with a different user-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
