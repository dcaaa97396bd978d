package listingRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

var ErrNotFound = errors.New("listing not found")

// Repository persists provider listings.
type Repository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	QueryByProvider(ctx context.Context, providerID string) ([]models.Listing, error)
}
