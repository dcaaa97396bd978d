package calendarConnRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

var ErrNotFound = errors.New("calendar connection not found")

// Repository persists a user's external calendar connections.
type Repository interface {
	Create(ctx context.Context, conn *models.CalendarConnection) error
	GetByID(ctx context.Context, id string) (*models.CalendarConnection, error)
	QueryByUser(ctx context.Context, userID string) ([]models.CalendarConnection, error)
	// GetPrimary returns the user's primary connection, or ErrNotFound when
	// none is flagged.
	GetPrimary(ctx context.Context, userID string) (*models.CalendarConnection, error)
	UpdateCredentials(ctx context.Context, id, credentials string) error
	Delete(ctx context.Context, id string) error
}
