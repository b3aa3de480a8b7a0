package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("already exists")
	// ErrPollTimeout marks a video job abandoned because it exceeded the configured poll timeout.
	ErrPollTimeout = errors.New("video generation timed out")
)

// ValidationError reports caller input that violates a precondition. It is
// never retried and always names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RemoteServiceError carries a non-success response from the generation
// endpoint. Message is the remote diagnostic, unmodified.
type RemoteServiceError struct {
	Status  int
	Message string
}

func (e *RemoteServiceError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("remote status %d: %s", e.Status, e.Message)
}

// NoOutputError is returned when a success response lacks the expected payload.
type NoOutputError struct {
	Reason string
}

func (e *NoOutputError) Error() string {
	return "no output: " + e.Reason
}

// AuthExpiredError signals that the remote credential or session became
// invalid while a job was in flight. Callers should re-authenticate rather
// than retry.
type AuthExpiredError struct {
	Message string
}

func (e *AuthExpiredError) Error() string {
	return "auth expired: " + e.Message
}
