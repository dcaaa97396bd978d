package calendarsync

import (
	"context"

	"slotwise/models"
)

// Adapter is the capability interface for one family of external calendars.
// Implementations are pluggable; a platform without calendar access plugs in
// the no-op adapter instead of branching at call sites.
type Adapter interface {
	// Name identifies the adapter family for logging and cache keys.
	Name() models.CalendarProviderKind
	// ListConnections returns the user's connections this adapter can serve.
	// An adapter with nothing to offer returns an empty list, not an error.
	ListConnections(ctx context.Context, userID string) ([]models.CalendarConnection, error)
	// FetchBusyIntervals returns the busy blocks of one connection within
	// the window. Each call is independently time-bounded by the caller.
	FetchBusyIntervals(ctx context.Context, conn models.CalendarConnection, window models.TimeInterval) ([]models.ExternalBusyInterval, error)
}

// FailedConnection records one connection that could not be fetched.
type FailedConnection struct {
	ConnectionID string `json:"connection_id"`
	Primary      bool   `json:"primary"`
	Reason       string `json:"reason"`
}

// Result is the outcome of a best-effort busy-interval fetch across all of a
// user's connections. Failures degrade accuracy but never abort the caller.
type Result struct {
	Intervals []models.TimeInterval
	Failed    []FailedConnection
}

// Degraded reports whether at least one connection failed.
func (r Result) Degraded() bool { return len(r.Failed) > 0 }

// PrimaryFailed reports whether the failed set includes a primary connection.
func (r Result) PrimaryFailed() bool {
	for _, f := range r.Failed {
		if f.Primary {
			return true
		}
	}
	return false
}

// FailedIDs returns the ids of the failed connections.
func (r Result) FailedIDs() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.ConnectionID)
	}
	return out
}

// Source is the narrow view the availability resolver consumes.
type Source interface {
	FetchBusy(ctx context.Context, userID string, window models.TimeInterval) Result
}

// Writeback pushes a created booking to the user's primary calendar.
// Best-effort: errors are logged, never propagated to the booking flow.
type Writeback interface {
	PushBooking(ctx context.Context, userID string, booking models.Booking) error
}
