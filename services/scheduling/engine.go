package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	blockedRepo "slotwise/database/repository/blockedtime"
	bookingRepo "slotwise/database/repository/booking"
	listingRepo "slotwise/database/repository/listing"
	"slotwise/models"
	"slotwise/services/calendarsync"
	"slotwise/services/notification"
)

// Engine is the production scheduling service. All collaborators are
// injected by the composition root; the engine holds no hidden shared state
// and every computation is an independent unit of work.
type Engine struct {
	Listings  listingRepo.Repository
	Bookings  bookingRepo.Repository
	Blocked   blockedRepo.Repository
	Resolver  *Resolver
	Slots     SlotGenerator
	Expander  RecurrenceExpander
	Lifecycle LifecycleManager
	Conflicts ConflictDetector
	Expiry    ExpiryScheduler
	Writeback calendarsync.Writeback
	Notifier  notification.Notifier
	Logger    *zap.Logger

	// PendingTTL is how long a booking may stay pending before the expiry
	// worker cancels it. Zero disables expiry scheduling.
	PendingTTL time.Duration
	// Now is injectable for tests.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// GetAvailableSlots computes the free slots of a listing on the given date.
// durationMinutes of zero falls back to the listing's service duration.
func (e *Engine) GetAvailableSlots(ctx context.Context, listingID string, date time.Time, durationMinutes int) (Availability, error) {
	listing, err := e.loadListing(ctx, listingID)
	if err != nil {
		return Availability{}, err
	}

	if durationMinutes == 0 {
		durationMinutes = listing.DurationMinutes
	}
	if durationMinutes <= 0 {
		return Availability{}, NewValidationError("duration_minutes", "must be positive")
	}

	loc := listing.Location()
	window := listing.Hours().Window(date.In(loc), loc)
	candidates := e.slotGen(listing).Generate(window, time.Duration(durationMinutes)*time.Minute, e.now())

	return e.Resolver.Resolve(ctx, ResolveRequest{
		ProviderID: listing.ProviderID,
		ListingID:  listing.ID,
		UserID:     listing.UserID,
		Window:     window,
		Candidates: candidates,
	})
}

// CreateBooking validates the request, re-checks the slot and commits the
// booking. The storage layer rejects any insert that would overlap an active
// booking, so two concurrent requests for the same interval cannot both
// succeed even if both pass the conflict check.
func (e *Engine) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	listing, interval, err := e.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return e.commitBooking(ctx, listing, req, interval)
}

// CreateRecurringBookings expands the pattern and books each occurrence
// independently. An occurrence that conflicts fails for that occurrence only;
// the rest of the series proceeds and the failures are reported back.
func (e *Engine) CreateRecurringBookings(ctx context.Context, req CreateBookingRequest, pattern models.RecurringBookingRequest) (RecurringResult, error) {
	listing, first, err := e.prepare(ctx, req)
	if err != nil {
		return RecurringResult{}, err
	}

	occurrences, err := e.Expander.ExpandBookingPattern(first, pattern)
	if err != nil {
		return RecurringResult{}, err
	}

	var result RecurringResult
	for _, occ := range occurrences {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		booking, err := e.commitBooking(ctx, listing, req, occ)
		if err != nil {
			result.FailedOccurrences = append(result.FailedOccurrences, FailedOccurrence{
				Interval: occ,
				Reason:   err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *booking)
	}
	return result, nil
}

// prepare validates the request and resolves the listing and requested
// interval without touching storage.
func (e *Engine) prepare(ctx context.Context, req CreateBookingRequest) (*models.Listing, models.TimeInterval, error) {
	if req.ListingID == "" {
		return nil, models.TimeInterval{}, NewValidationError("listing_id", "is required")
	}
	if req.CustomerID == "" {
		return nil, models.TimeInterval{}, NewValidationError("customer_id", "is required")
	}
	if req.Start.IsZero() {
		return nil, models.TimeInterval{}, NewValidationError("start", "is required")
	}

	listing, err := e.loadListing(ctx, req.ListingID)
	if err != nil {
		return nil, models.TimeInterval{}, err
	}

	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = listing.DurationMinutes
	}
	if minutes <= 0 {
		return nil, models.TimeInterval{}, NewValidationError("duration_minutes", "must be positive")
	}

	loc := listing.Location()
	start := req.Start.In(loc)
	interval, err := models.NewInterval(start, start.Add(time.Duration(minutes)*time.Minute), loc.String())
	if err != nil {
		return nil, models.TimeInterval{}, NewValidationError("interval", err.Error())
	}
	return listing, interval, nil
}

// validateBookable rejects intervals the availability surface would never
// offer: starts in the past, or intervals outside the listing's working
// window. A window spanning past midnight belongs to the day it starts on,
// so the previous day's window is checked as well.
func (e *Engine) validateBookable(listing *models.Listing, interval models.TimeInterval) error {
	if interval.Start.Before(e.now()) {
		return NewValidationError("start", "must not be in the past")
	}
	loc := listing.Location()
	hours := listing.Hours()
	day := interval.Start.In(loc)
	if !hours.Window(day, loc).Contains(interval) && !hours.Window(day.AddDate(0, 0, -1), loc).Contains(interval) {
		return &SlotUnavailableError{Interval: interval}
	}
	return nil
}

// commitBooking runs the conflict fast-path, persists the booking and kicks
// off the follow-ups (expiry timer, calendar write-back, notification).
func (e *Engine) commitBooking(ctx context.Context, listing *models.Listing, req CreateBookingRequest, interval models.TimeInterval) (*models.Booking, error) {
	if err := e.validateBookable(listing, interval); err != nil {
		return nil, err
	}
	if err := e.Conflicts.Check(ctx, listing.ProviderID, listing.ID, listing.UserID, interval); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		ListingID:       listing.ID,
		ProviderID:      listing.ProviderID,
		CustomerID:      req.CustomerID,
		Interval:        interval,
		DurationMinutes: int(interval.Duration() / time.Minute),
		ServiceName:     listing.ServiceName,
		Price:           listing.Price,
		Currency:        listing.Currency,
		Status:          models.BookingPending,
		CustomerNotes:   req.CustomerNotes,
		CreatedAt:       e.now(),
	}

	if err := e.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, &SlotUnavailableError{Interval: interval}
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if e.Expiry != nil && e.PendingTTL > 0 {
		if err := e.Expiry.ScheduleExpiry(ctx, booking.ID, booking.CreatedAt.Add(e.PendingTTL)); err != nil {
			e.Logger.Warn("failed to schedule pending-booking expiry",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if e.Writeback != nil {
		go e.pushToCalendar(listing.UserID, *booking)
	}
	if e.Notifier != nil {
		e.Notifier.BookingCreated(ctx, *booking)
	}

	return booking, nil
}

func (e *Engine) pushToCalendar(userID string, booking models.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Writeback.PushBooking(ctx, userID, booking); err != nil {
		e.Logger.Warn("calendar write-back failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// TransitionBooking applies a lifecycle action to a booking. Invalid
// transitions fail with TransitionError and leave the record unmodified.
func (e *Engine) TransitionBooking(ctx context.Context, id string, action Action, actor models.Actor, providerNotes string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Kind: "booking", ID: id}
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	if !e.Lifecycle.Allowed(actor, booking.Status, action) {
		return nil, &TransitionError{From: booking.Status, Action: action}
	}
	next, err := e.Lifecycle.Next(booking.Status, action)
	if err != nil {
		return nil, err
	}

	updated, err := e.Bookings.UpdateStatus(ctx, id, booking.Status, next, e.now(), providerNotes)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusMismatch):
			// Someone else transitioned the booking between our read and
			// write. Report against the fresh state.
			fresh, readErr := e.Bookings.GetByID(ctx, id)
			if readErr != nil {
				return nil, fmt.Errorf("reload booking: %w", readErr)
			}
			return nil, &TransitionError{From: fresh.Status, Action: action}
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, &NotFoundError{Kind: "booking", ID: id}
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if e.Notifier != nil {
		e.Notifier.BookingStatusChanged(ctx, *updated)
	}
	return updated, nil
}

// ListBookings returns the provider's bookings within the window.
func (e *Engine) ListBookings(ctx context.Context, providerID string, window models.TimeInterval, statuses []models.BookingStatus) ([]models.Booking, error) {
	if err := window.Validate(); err != nil {
		return nil, NewValidationError("window", err.Error())
	}
	return e.Bookings.Query(ctx, providerID, window, statuses)
}

// ExpirePendingBooking cancels the booking if it is still pending. Invoked
// by the background worker when a pending booking's confirmation deadline
// passes; a booking that was confirmed or cancelled in the meantime is left
// alone.
func (e *Engine) ExpirePendingBooking(ctx context.Context, id string) error {
	booking, err := e.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil
		}
		return err
	}
	if booking.Status != models.BookingPending {
		return nil
	}

	_, err = e.Bookings.UpdateStatus(ctx, id, models.BookingPending, models.BookingCancelled, e.now(), "expired: not confirmed in time")
	if errors.Is(err, bookingRepo.ErrStatusMismatch) || errors.Is(err, bookingRepo.ErrNotFound) {
		return nil
	}
	return err
}

// CreateBlockedTime validates and stores a provider exclusion interval.
func (e *Engine) CreateBlockedTime(ctx context.Context, block *models.BlockedTime) error {
	if block.ProviderID == "" {
		return NewValidationError("provider_id", "is required")
	}
	if err := block.Interval.Validate(); err != nil {
		return NewValidationError("interval", err.Error())
	}
	switch block.BlockType {
	case models.BlockPersonal, models.BlockHoliday, models.BlockBreak, models.BlockUnavailable:
	default:
		return NewValidationError("block_type", "must be personal, holiday, break or unavailable")
	}
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	block.CreatedAt = e.now()
	return e.Blocked.Create(ctx, block)
}

// DeleteBlockedTime removes a provider's blocked interval. Only the owning
// provider may delete it.
func (e *Engine) DeleteBlockedTime(ctx context.Context, providerID, id string) error {
	block, err := e.Blocked.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrNotFound) {
			return &NotFoundError{Kind: "blocked time", ID: id}
		}
		return err
	}
	if block.ProviderID != providerID {
		return &NotFoundError{Kind: "blocked time", ID: id}
	}
	return e.Blocked.Delete(ctx, id)
}

// ListBlockedTimes returns the provider's blocks relevant to the window,
// including yearly-recurring ones.
func (e *Engine) ListBlockedTimes(ctx context.Context, providerID, listingID string, window models.TimeInterval) ([]models.BlockedTime, error) {
	if err := window.Validate(); err != nil {
		return nil, NewValidationError("window", err.Error())
	}
	return e.Blocked.Query(ctx, providerID, listingID, window)
}

func (e *Engine) loadListing(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := e.Listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			return nil, &NotFoundError{Kind: "listing", ID: id}
		}
		return nil, fmt.Errorf("load listing: %w", err)
	}
	return listing, nil
}

func (e *Engine) slotGen(listing *models.Listing) SlotGenerator {
	if listing.GranularityMinutes > 0 {
		return NewSlotGenerator(time.Duration(listing.GranularityMinutes) * time.Minute)
	}
	if e.Slots.Granularity > 0 {
		return e.Slots
	}
	return NewSlotGenerator(0)
}
