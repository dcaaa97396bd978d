package blockedRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

var ErrNotFound = errors.New("blocked time not found")

// Repository persists provider-declared blocked time.
type Repository interface {
	Create(ctx context.Context, block *models.BlockedTime) error
	GetByID(ctx context.Context, id string) (*models.BlockedTime, error)
	// Query returns blocks for the provider that either overlap the window
	// or recur yearly (callers expand those against the window themselves).
	// listingID narrows to one listing when non-empty; listing-agnostic
	// blocks are always included.
	Query(ctx context.Context, providerID, listingID string, window models.TimeInterval) ([]models.BlockedTime, error)
	Delete(ctx context.Context, id string) error
}
