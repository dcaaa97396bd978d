package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	blockedRepo "slotwise/database/repository/blockedtime"
	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/services/calendarsync"
)

// Availability is the outcome of one availability computation. Slots is a
// point-in-time snapshot; Degraded flags that one or more external calendar
// sources were unreachable and the result may undercount busy time.
type Availability struct {
	Slots               []models.TimeInterval `json:"slots"`
	Degraded            bool                  `json:"degraded"`
	FailedConnectionIDs []string              `json:"failed_connection_ids,omitempty"`
}

// ResolveRequest names the provider context and the candidate grid to filter.
type ResolveRequest struct {
	ProviderID string
	ListingID  string
	UserID     string
	Window     models.TimeInterval
	Candidates []models.TimeInterval
}

// Resolver subtracts the union of busy intervals (active bookings, expanded
// blocked time, external calendar events) from a candidate slot grid.
type Resolver struct {
	Bookings bookingRepo.Repository
	Blocked  blockedRepo.Repository
	External calendarsync.Source
	Expander RecurrenceExpander
	// FailClosed refuses to produce slots when a primary external calendar
	// is unreachable, instead of proceeding with degraded accuracy.
	FailClosed bool
	Logger     *zap.Logger
}

// Resolve gathers busy intervals from all three sources, merges them into a
// minimal disjoint set and filters the candidates. Given identical inputs the
// output is identical regardless of source arrival order: everything is
// merged and sorted before subtraction.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (Availability, error) {
	if err := req.Window.Validate(); err != nil {
		return Availability{}, NewValidationError("window", err.Error())
	}

	bookings, err := r.Bookings.Query(ctx, req.ProviderID, req.Window, models.ActiveBookingStatuses)
	if err != nil {
		return Availability{}, fmt.Errorf("query bookings: %w", err)
	}
	busy := IntervalsOf(bookings)

	blocks, err := r.Blocked.Query(ctx, req.ProviderID, req.ListingID, req.Window)
	if err != nil {
		return Availability{}, fmt.Errorf("query blocked times: %w", err)
	}
	busy = append(busy, r.Expander.ExpandBlockedTimes(blocks, req.Window)...)

	var external calendarsync.Result
	if r.External != nil && req.UserID != "" {
		external = r.External.FetchBusy(ctx, req.UserID, req.Window)
		if external.Degraded() {
			r.Logger.Warn("availability computed with degraded calendar accuracy",
				zap.String("providerID", req.ProviderID),
				zap.Strings("failedConnections", external.FailedIDs()))
			if r.FailClosed && external.PrimaryFailed() {
				for _, f := range external.Failed {
					if f.Primary {
						return Availability{}, fmt.Errorf("primary calendar unreachable: %w",
							&calendarsync.SyncError{ConnectionID: f.ConnectionID, Op: "fetch"})
					}
				}
			}
		}
		busy = append(busy, external.Intervals...)
	}

	merged := MergeIntervals(busy)
	free := SubtractBusy(req.Candidates, merged)

	return Availability{
		Slots:               free,
		Degraded:            external.Degraded(),
		FailedConnectionIDs: external.FailedIDs(),
	}, nil
}
