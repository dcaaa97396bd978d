package models

import (
	"fmt"
	"time"
)

// WorkingHours is a provider's daily working window in minutes from midnight.
// End may exceed 1440 when a window deliberately spans into the next day.
type WorkingHours struct {
	StartMinute int `bson:"start_minute" json:"start_minute"`
	EndMinute   int `bson:"end_minute" json:"end_minute"`
}

// FullDay is the default window used when a listing has no working hours.
var FullDay = WorkingHours{StartMinute: 0, EndMinute: 24 * 60}

// Window projects the working hours onto a calendar day in loc, producing the
// concrete bookable interval for that day.
func (wh WorkingHours) Window(day time.Time, loc *time.Location) TimeInterval {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return TimeInterval{
		Start:    midnight.Add(time.Duration(wh.StartMinute) * time.Minute),
		End:      midnight.Add(time.Duration(wh.EndMinute) * time.Minute),
		Timezone: loc.String(),
	}
}

// Validate checks the window is non-empty and starts within the day.
func (wh WorkingHours) Validate() error {
	if wh.StartMinute < 0 || wh.StartMinute >= 24*60 {
		return fmt.Errorf("working hours start %d out of range", wh.StartMinute)
	}
	if wh.EndMinute <= wh.StartMinute {
		return fmt.Errorf("working hours end %d must be after start %d", wh.EndMinute, wh.StartMinute)
	}
	return nil
}

// Listing is a provider's offered service with its scheduling characteristics.
type Listing struct {
	ID                 string        `bson:"id" json:"id"`
	ProviderID         string        `bson:"provider_id" json:"provider_id"`
	UserID             string        `bson:"user_id" json:"user_id"` // provider's user account, owns calendar connections
	ServiceName        string        `bson:"service_name" json:"service_name"`
	DurationMinutes    int           `bson:"duration_minutes" json:"duration_minutes"`
	GranularityMinutes int           `bson:"granularity_minutes,omitempty" json:"granularity_minutes,omitempty"`
	Price              float64       `bson:"price" json:"price"`
	Currency           string        `bson:"currency" json:"currency"`
	Timezone           string        `bson:"timezone" json:"timezone"`
	WorkingHours       *WorkingHours `bson:"working_hours,omitempty" json:"working_hours,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
}

// Location resolves the listing's timezone, falling back to UTC.
func (l Listing) Location() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Hours returns the listing's working hours or the full-day default.
func (l Listing) Hours() WorkingHours {
	if l.WorkingHours != nil {
		return *l.WorkingHours
	}
	return FullDay
}
