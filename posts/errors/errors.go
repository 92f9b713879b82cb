package errors

import (
	"errors"
	"fmt"
)

// Post resolver specific errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidSlug  = errors.New("invalid slug")
	ErrSystemError  = errors.New("system error occurred")
)

// PostError represents a post resolver error with additional context
type PostError struct {
	Code    string
	Message string
	Cause   error
}

func (e *PostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PostError) Unwrap() error {
	return e.Cause
}

// NewPostError creates a new PostError
func NewPostError(code, message string, cause error) *PostError {
	return &PostError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes
const (
	CodePostNotFound = "POST_NOT_FOUND"
	CodeInvalidSlug  = "INVALID_SLUG"
	CodeSystemError  = "SYSTEM_ERROR"
)

// IsNotFound reports whether err represents a missing post. Handlers use it
// to pick the not-found page over the generic error page.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrInvalidSlug)
}

// WrapSystemError wraps unexpected resolver failures
func WrapSystemError(err error) *PostError {
	return NewPostError(CodeSystemError, "System error occurred", err)
}
