package models

import "time"

// CalendarProviderKind identifies the external calendar service behind a
// connection.
type CalendarProviderKind string

const (
	CalendarInternal CalendarProviderKind = "internal"
	CalendarGoogle   CalendarProviderKind = "google"
	CalendarOutlook  CalendarProviderKind = "outlook"
	CalendarICloud   CalendarProviderKind = "icloud"
	CalendarApple    CalendarProviderKind = "apple"
	CalendarSamsung  CalendarProviderKind = "samsung"
	CalendarAndroid  CalendarProviderKind = "android"
)

// CalendarConnection links a user to one external calendar. At most one
// connection per user is flagged primary; created bookings are written back
// to the primary connection.
type CalendarConnection struct {
	ID          string               `bson:"id" json:"id"`
	UserID      string               `bson:"user_id" json:"user_id"`
	Provider    CalendarProviderKind `bson:"provider" json:"provider"`
	CalendarID  string               `bson:"calendar_id" json:"calendar_id"`
	IsPrimary   bool                 `bson:"is_primary" json:"is_primary"`
	SyncEnabled bool                 `bson:"sync_enabled" json:"sync_enabled"`
	Credentials string               `bson:"credentials" json:"-"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
}

// ExternalBusyInterval is one busy block fetched from an external calendar.
// It is ephemeral: fetched per query and never persisted by the engine.
type ExternalBusyInterval struct {
	ConnectionID string       `json:"connection_id"`
	Summary      string       `json:"summary,omitempty"`
	Interval     TimeInterval `json:"interval"`
}
