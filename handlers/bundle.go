package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Bookings     *BookingHandler
	BlockedTimes *BlockedTimeHandler
	Calendars    *CalendarConnectionHandler
	Health       *HealthHandler
}
