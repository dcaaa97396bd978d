package notification

import (
	"context"

	"go.uber.org/zap"

	"slotwise/models"
)

// Notifier is the boundary to the push-notification system. Delivery is an
// external collaborator; the scheduling engine only emits events through this
// interface and never depends on how (or whether) they are delivered.
type Notifier interface {
	BookingCreated(ctx context.Context, booking models.Booking)
	BookingStatusChanged(ctx context.Context, booking models.Booking)
}

// LogNotifier records booking events to the log. It stands in for a real
// delivery backend in deployments without one.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) BookingCreated(_ context.Context, booking models.Booking) {
	n.Logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("providerID", booking.ProviderID),
		zap.String("customerID", booking.CustomerID))
}

func (n LogNotifier) BookingStatusChanged(_ context.Context, booking models.Booking) {
	n.Logger.Info("booking status changed",
		zap.String("bookingID", booking.ID),
		zap.String("status", string(booking.Status)))
}
