package models

import "time"

// RecurrencePattern is the base repetition cadence of a recurring booking.
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

// RecurringBookingRequest bounds a recurring booking series. At least one of
// EndDate or OccurrenceCount must be set; when both are set, EndDate is the
// authoritative bound.
type RecurringBookingRequest struct {
	Pattern         RecurrencePattern `json:"pattern"`
	EndDate         *time.Time        `json:"end_date,omitempty"`
	OccurrenceCount int               `json:"occurrence_count,omitempty"`
}
