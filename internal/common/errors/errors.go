// Package errors provides the standardized error type returned by the HTTP API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound    ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeParticipantNotFound ErrorCode = "PARTICIPANT_NOT_FOUND"
	ErrCodeAlreadyRegistered   ErrorCode = "ALREADY_REGISTERED"
	ErrCodeActivityFull        ErrorCode = "ACTIVITY_FULL"
	ErrCodeEmailRequired       ErrorCode = "EMAIL_REQUIRED"
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeRouteNotFound       ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed    ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	// Status overrides the code's default HTTP status when non-zero.
	Status int `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus returns the status code the error is reported with.
func (e *StandardError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return GetHTTPStatus(e.Code)
}

// GetHTTPStatus maps an error code to an HTTP status.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeActivityNotFound, ErrCodeParticipantNotFound, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyRegistered, ErrCodeActivityFull, ErrCodeEmailRequired, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// NewActivityNotFoundError reports an unknown activity name.
func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activity),
		Metadata:  map[string]interface{}{"activity": activity},
		Timestamp: time.Now().UTC(),
	}
}

// NewParticipantNotFoundError reports an unregister for an email that is not on the roster.
func NewParticipantNotFoundError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParticipantNotFound,
		Message:   "Participant not found",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadyRegisteredError reports a duplicate signup.
func NewAlreadyRegisteredError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadyRegistered,
		Message:   "Student is already signed up",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFullError reports a signup against a roster at capacity.
func NewActivityFullError(activity string, maxParticipants int) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityFull,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s, max_participants: %d", activity, maxParticipants),
		Metadata:  map[string]interface{}{"activity": activity, "maxParticipants": maxParticipants},
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailRequiredError reports a missing or blank email query parameter.
func NewEmailRequiredError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailRequired,
		Message:   "Email is required",
		Details:   fmt.Sprintf("activity: %s", activity),
		Metadata:  map[string]interface{}{"activity": activity},
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
