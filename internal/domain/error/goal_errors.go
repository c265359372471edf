// Package error defines domain-specific errors for the Reading Tracker application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrInvalidTargetCount is returned when the target count is outside [1, 9999].
	ErrInvalidTargetCount = errors.New("invalid target count")

	// ErrInvalidProgressCount is returned when a manual progress value is negative.
	ErrInvalidProgressCount = errors.New("invalid progress count")

	// ErrInvalidDeadline is returned when the deadline is missing or not after the start.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrInvalidTimezone is returned when the deadline timezone is not a known IANA zone.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrGoalConflict is returned when concurrent goal updates exhaust the retry budget.
	ErrGoalConflict = errors.New("goal was modified concurrently")

	// ErrGoalExpired is returned when an operation targets an expired goal.
	ErrGoalExpired = errors.New("goal is expired")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-010001"
	ErrCodeUnauthorizedGoal     GoalErrorCode = "GOL-010002"
	ErrCodeInvalidTargetCount   GoalErrorCode = "GOL-010003"
	ErrCodeInvalidProgressCount GoalErrorCode = "GOL-010004"
	ErrCodeInvalidDeadline      GoalErrorCode = "GOL-010005"
	ErrCodeInvalidTimezone      GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010007"
	ErrCodeGoalExpired          GoalErrorCode = "GOL-010008"

	// Concurrency errors (02XXXX)
	ErrCodeGoalConflict GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
