package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	calendarConnRepo "slotwise/database/repository/calendarconn"
	"slotwise/models"
)

// GoogleWriteback mirrors created bookings onto the user's primary Google
// connection. Best-effort: a user without a primary connection is a no-op.
type GoogleWriteback struct {
	Connections calendarConnRepo.Repository
	Adapter     *GoogleAdapter
	Logger      *zap.Logger
}

func (w *GoogleWriteback) PushBooking(ctx context.Context, userID string, booking models.Booking) error {
	conn, err := w.Connections.GetPrimary(ctx, userID)
	if err != nil {
		if errors.Is(err, calendarConnRepo.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup primary connection: %w", err)
	}
	if conn.Provider != models.CalendarGoogle || !conn.SyncEnabled {
		return nil
	}

	svc, err := w.Adapter.service(ctx, *conn)
	if err != nil {
		return &SyncError{ConnectionID: conn.ID, Op: "refresh", Err: err}
	}

	calendarID := conn.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	event := &calendar.Event{
		Summary:     booking.ServiceName,
		Description: fmt.Sprintf("Booking %s", booking.ID),
		Start:       &calendar.EventDateTime{DateTime: booking.Interval.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: booking.Interval.End.Format(time.RFC3339)},
	}
	if _, err := svc.Events.Insert(calendarID, event).Context(ctx).Do(); err != nil {
		return &SyncError{ConnectionID: conn.ID, Op: "writeback", Err: err}
	}
	w.Logger.Debug("booking mirrored to primary calendar",
		zap.String("bookingID", booking.ID),
		zap.String("connectionID", conn.ID))
	return nil
}
