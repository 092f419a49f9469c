package domain

import "errors"

// ErrNotFound signals a lookup miss; repository implementations translate
// their driver's no-rows sentinel into this.
var ErrNotFound = errors.New("not found")

// Stable machine codes carried by AppError. These end up in error logs and
// API bodies, so values never change once released.
const (
	CodeAppError        = "app_error"
	CodeValidationError = "validation_error"
	CodeProviderError   = "provider_error"
)

// AppError carries a stable code plus a technical message. The message is
// safe for logs, not for end users: provider errors go through the
// user-facing mapping in the HTTP layer before leaving the service.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError wraps a message describing bad caller input. Validation
// detail is shown to callers verbatim since it describes their own request.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidationError, Message: message}
}

// NewProviderError wraps a text-generation provider or transport failure.
func NewProviderError(message string) *AppError {
	return &AppError{Code: CodeProviderError, Message: message}
}

// AsAppError unwraps err into an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
