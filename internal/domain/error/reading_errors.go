// Package error defines domain-specific errors for the Reading Tracker application.
package error

import "errors"

// Reading entry domain errors.
var (
	// ErrReadingEntryNotFound is returned when a reading entry is not found.
	ErrReadingEntryNotFound = errors.New("reading entry not found")

	// ErrUnauthorizedEntryAccess is returned when user is not authorized to access an entry.
	ErrUnauthorizedEntryAccess = errors.New("unauthorized access to reading entry")

	// ErrEntryAlreadyExists is returned when the user already has an entry for the book.
	ErrEntryAlreadyExists = errors.New("reading entry already exists for this book")

	// ErrInvalidTransition is returned when a status change violates the transition graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned when the target status is not a known reading status.
	ErrInvalidStatus = errors.New("invalid reading status")

	// ErrInvalidRating is returned when a rating is outside 1-5 or set on a non-finished entry.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidPage is returned when the current page is negative or beyond the book's page count.
	ErrInvalidPage = errors.New("invalid current page")
)

// ReadingErrorCode defines error codes for reading entry errors.
// Format: RDG-XXYYYY where XX is category and YYYY is specific error.
type ReadingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEntryNotFound      ReadingErrorCode = "RDG-010001"
	ErrCodeUnauthorizedEntry  ReadingErrorCode = "RDG-010002"
	ErrCodeEntryAlreadyExists ReadingErrorCode = "RDG-010003"
	ErrCodeInvalidTransition  ReadingErrorCode = "RDG-010004"
	ErrCodeInvalidStatus      ReadingErrorCode = "RDG-010005"
	ErrCodeInvalidRating      ReadingErrorCode = "RDG-010006"
	ErrCodeInvalidPage        ReadingErrorCode = "RDG-010007"
	ErrCodeMissingEntryFields ReadingErrorCode = "RDG-010008"
)

// ReadingError represents a reading entry error with code and message.
type ReadingError struct {
	Code    ReadingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReadingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReadingError) Unwrap() error {
	return e.Err
}

// NewReadingError creates a new ReadingError with the given code and message.
func NewReadingError(code ReadingErrorCode, message string, err error) *ReadingError {
	return &ReadingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
