package models

import "time"

// BlockType categorizes provider-declared unavailability.
type BlockType string

const (
	BlockPersonal    BlockType = "personal"
	BlockHoliday     BlockType = "holiday"
	BlockBreak       BlockType = "break"
	BlockUnavailable BlockType = "unavailable"
)

// BlockedTime is a provider-owned exclusion interval. When RecurringYearly is
// set, the interval's month/day/time-of-day repeats every calendar year.
type BlockedTime struct {
	ID              string       `bson:"id" json:"id"`
	ProviderID      string       `bson:"provider_id" json:"provider_id"`
	ListingID       string       `bson:"listing_id,omitempty" json:"listing_id,omitempty"`
	Title           string       `bson:"title" json:"title"`
	Interval        TimeInterval `bson:"interval" json:"interval"`
	IsAllDay        bool         `bson:"is_all_day" json:"is_all_day"`
	BlockType       BlockType    `bson:"block_type" json:"block_type"`
	RecurringYearly bool         `bson:"recurring_yearly" json:"recurring_yearly"`
	CreatedAt       time.Time    `bson:"created_at" json:"created_at"`
}
