package scheduling

import (
	"context"
	"time"

	"slotwise/models"
)

// CreateBookingRequest is a customer's request for a single booking.
type CreateBookingRequest struct {
	ListingID       string    `json:"listing_id"`
	CustomerID      string    `json:"customer_id"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	CustomerNotes   string    `json:"customer_notes,omitempty"`
}

// FailedOccurrence reports one occurrence of a recurring series that could
// not be booked.
type FailedOccurrence struct {
	Interval models.TimeInterval `json:"interval"`
	Reason   string              `json:"reason"`
}

// RecurringResult is the partial-success outcome of a recurring booking
// request.
type RecurringResult struct {
	Created           []models.Booking   `json:"created"`
	FailedOccurrences []FailedOccurrence `json:"failed_occurrences"`
}

// Service is the scheduling engine's exposed surface.
type Service interface {
	GetAvailableSlots(ctx context.Context, listingID string, date time.Time, durationMinutes int) (Availability, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	CreateRecurringBookings(ctx context.Context, req CreateBookingRequest, pattern models.RecurringBookingRequest) (RecurringResult, error)
	TransitionBooking(ctx context.Context, id string, action Action, actor models.Actor, providerNotes string) (*models.Booking, error)
	ListBookings(ctx context.Context, providerID string, window models.TimeInterval, statuses []models.BookingStatus) ([]models.Booking, error)

	CreateBlockedTime(ctx context.Context, block *models.BlockedTime) error
	DeleteBlockedTime(ctx context.Context, providerID, id string) error
	ListBlockedTimes(ctx context.Context, providerID, listingID string, window models.TimeInterval) ([]models.BlockedTime, error)
}

// ExpiryScheduler schedules the follow-up that cancels bookings left pending
// past their confirmation deadline. The asynq-backed implementation lives in
// services/tasks; a no-op suffices in tests.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error
}

// NoopExpiry discards expiry scheduling.
type NoopExpiry struct{}

func (NoopExpiry) ScheduleExpiry(context.Context, string, time.Time) error { return nil }
