package scheduling

import (
	"fmt"

	"slotwise/models"
)

// ValidationError reports a malformed request. It is returned synchronously
// and has no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// SlotUnavailableError is returned when a requested interval is no longer
// free at commit time. The caller should re-query availability and retry
// with a different slot.
type SlotUnavailableError struct {
	Interval models.TimeInterval
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s is no longer available", e.Interval)
}

// TransitionError is returned when a booking status transition is not
// reachable from the current state. The booking is left unmodified.
type TransitionError struct {
	From   models.BookingStatus
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Action, e.From)
}

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
