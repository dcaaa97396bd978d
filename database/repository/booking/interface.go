package bookingRepo

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

// Sentinel errors surfaced by implementations. The scheduling layer maps
// them onto its user-facing error taxonomy.
var (
	// ErrConflict means the insert would overlap an active booking for the
	// same provider. The storage layer enforces this, not the caller.
	ErrConflict = errors.New("booking interval conflicts with an existing booking")
	// ErrNotFound means no booking exists with the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusMismatch means the booking's current status did not match the
	// expected one during a guarded update; nothing was written.
	ErrStatusMismatch = errors.New("booking status changed concurrently")
)

// Repository persists bookings. Create must guarantee at-most-one active
// booking per overlapping interval per provider, atomically with the
// overlap check.
type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Query(ctx context.Context, providerID string, window models.TimeInterval, statuses []models.BookingStatus) ([]models.Booking, error)
	// UpdateStatus transitions the booking from the expected current status
	// to the new one, stamping the matching lifecycle timestamp and
	// optionally attaching provider notes, as a single guarded write.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time, providerNotes string) (*models.Booking, error)
}
