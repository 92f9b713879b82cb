package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// View counter specific errors
var (
	ErrInvalidSlug = errors.New("invalid slug")

	// Store and system errors
	ErrStoreUnavailable = errors.New("view store unavailable")
	ErrStoreOperation   = errors.New("view store operation failed")
	ErrSystemError      = errors.New("system error occurred")
)

// ViewError represents a view counter error with additional context
type ViewError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ViewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ViewError) Unwrap() error {
	return e.Cause
}

// NewViewError creates a new ViewError
func NewViewError(code, message string, cause error) *ViewError {
	return &ViewError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes
const (
	CodeInvalidSlug      = "INVALID_SLUG"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeStoreOperation   = "STORE_OPERATION_FAILED"
	CodeSystemError      = "SYSTEM_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidSlug):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidSlug,
			Message: "Invalid slug",
			Details: err.Error(),
		})
	case errors.Is(err, ErrStoreUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeStoreUnavailable,
			Message: "View store unavailable",
			Details: err.Error(),
		})
	case errors.Is(err, ErrStoreOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeStoreOperation,
			Message: "View store operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeSystemError,
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleInvalidSlugError handles slug validation errors with 400 Bad Request
func HandleInvalidSlugError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidSlug,
		Message: message,
		Details: message,
	})
}

// WrapStoreError wraps store errors
func WrapStoreError(err error) *ViewError {
	return NewViewError(CodeStoreOperation, "View store operation failed", err)
}

// WrapSystemError wraps system errors
func WrapSystemError(err error) *ViewError {
	return NewViewError(CodeSystemError, "System error occurred", err)
}
