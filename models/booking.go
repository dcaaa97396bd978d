package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// ActiveBookingStatuses are the statuses whose intervals count as busy time
// and must stay pairwise non-overlapping per provider.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Booking is a customer-initiated reservation of a provider's time.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	ListingID       string        `bson:"listing_id" json:"listing_id"`
	ProviderID      string        `bson:"provider_id" json:"provider_id"`
	CustomerID      string        `bson:"customer_id" json:"customer_id"`
	Interval        TimeInterval  `bson:"interval" json:"interval"`
	DurationMinutes int           `bson:"duration_minutes" json:"duration_minutes"`
	ServiceName     string        `bson:"service_name" json:"service_name"`
	Price           float64       `bson:"price" json:"price"`
	Currency        string        `bson:"currency" json:"currency"`
	Status          BookingStatus `bson:"status" json:"status"`
	CustomerNotes   string        `bson:"customer_notes,omitempty" json:"customer_notes,omitempty"`
	ProviderNotes   string        `bson:"provider_notes,omitempty" json:"provider_notes,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	ConfirmedAt     *time.Time    `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CancelledAt     *time.Time    `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Actor identifies who is requesting a booking mutation.
type Actor string

const (
	ActorProvider Actor = "provider"
	ActorCustomer Actor = "customer"
)
