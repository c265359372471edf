// Package error defines domain-specific errors for the Reading Tracker application.
package error

import "errors"

// Book domain errors.
var (
	// ErrBookNotFound is returned when a book is not found in the system.
	ErrBookNotFound = errors.New("book not found")

	// ErrMissingBookTitle is returned when a book is created without a title.
	ErrMissingBookTitle = errors.New("book title is required")

	// ErrInvalidPageCount is returned when the page count is negative.
	ErrInvalidPageCount = errors.New("invalid page count")

	// ErrBookSearchFailed is returned when the external book search is unavailable.
	ErrBookSearchFailed = errors.New("book search failed")
)

// BookErrorCode defines error codes for book errors.
// Format: BOK-XXYYYY where XX is category and YYYY is specific error.
type BookErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBookNotFound     BookErrorCode = "BOK-010001"
	ErrCodeMissingBookTitle BookErrorCode = "BOK-010002"
	ErrCodeInvalidPageCount BookErrorCode = "BOK-010003"

	// Integration errors (02XXXX)
	ErrCodeBookSearchFailed BookErrorCode = "BOK-020001"
)

// BookError represents a book error with code and message.
type BookError struct {
	Code    BookErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BookError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BookError) Unwrap() error {
	return e.Err
}

// NewBookError creates a new BookError with the given code and message.
func NewBookError(code BookErrorCode, message string, err error) *BookError {
	return &BookError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
