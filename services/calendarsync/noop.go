package calendarsync

import (
	"context"

	"slotwise/models"
)

// NoopAdapter is the capability implementation for platforms without native
// calendar access. It reports no connections, so the resolver computes
// availability from internal sources alone.
type NoopAdapter struct{}

func (NoopAdapter) Name() models.CalendarProviderKind { return models.CalendarInternal }

func (NoopAdapter) ListConnections(context.Context, string) ([]models.CalendarConnection, error) {
	return nil, nil
}

func (NoopAdapter) FetchBusyIntervals(context.Context, models.CalendarConnection, models.TimeInterval) ([]models.ExternalBusyInterval, error) {
	return nil, nil
}

// NoopWriteback discards booking write-backs.
type NoopWriteback struct{}

func (NoopWriteback) PushBooking(context.Context, string, models.Booking) error { return nil }
