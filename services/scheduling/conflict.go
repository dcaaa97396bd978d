package scheduling

import (
	"context"

	"slotwise/models"
)

// ConflictDetector re-validates a requested interval against live
// availability immediately before a booking is committed, closing most of
// the race window between slot display and commit. The storage layer's
// transactional insert remains the actual correctness guarantee; this check
// exists to fail fast with a useful error.
type ConflictDetector struct {
	Resolver *Resolver
}

// Check resolves availability restricted to the exact requested interval.
// Returns SlotUnavailableError when the interval is no longer free.
func (cd ConflictDetector) Check(ctx context.Context, providerID, listingID, userID string, interval models.TimeInterval) error {
	result, err := cd.Resolver.Resolve(ctx, ResolveRequest{
		ProviderID: providerID,
		ListingID:  listingID,
		UserID:     userID,
		Window:     interval,
		Candidates: []models.TimeInterval{interval},
	})
	if err != nil {
		return err
	}
	if len(result.Slots) == 0 {
		return &SlotUnavailableError{Interval: interval}
	}
	return nil
}
