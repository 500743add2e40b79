// Package apperror defines the domain error taxonomy. Services return these
// errors; the HTTP layer maps them to status codes with errors.Is/As.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// AppError carries a sentinel kind plus a human-readable message.
type AppError struct {
	Err     error  // sentinel kind, reachable via errors.Is
	Message string // human-readable description
	Field   string // optional: request field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a resource does not exist.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports a malformed request field. Handlers map it to
// 400 before any work area is opened.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
