package models

import (
	"fmt"
	"time"
)

// TimeInterval is a half-open time range [Start, End) with an associated
// IANA timezone name. Start and End are absolute instants; Timezone records
// the wall-clock context the interval was created in and is used when
// presenting or projecting the interval, not when comparing instants.
type TimeInterval struct {
	Start    time.Time `bson:"start" json:"start"`
	End      time.Time `bson:"end" json:"end"`
	Timezone string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// NewInterval builds a validated interval.
func NewInterval(start, end time.Time, tz string) (TimeInterval, error) {
	iv := TimeInterval{Start: start, End: end, Timezone: tz}
	if err := iv.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return iv, nil
}

// Validate checks the start < end invariant and that the timezone, when set,
// resolves to a known location.
func (iv TimeInterval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return fmt.Errorf("interval start and end are required")
	}
	if !iv.Start.Before(iv.End) {
		return fmt.Errorf("interval start %s must be before end %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	if iv.Timezone != "" {
		if _, err := time.LoadLocation(iv.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", iv.Timezone, err)
		}
	}
	return nil
}

// Location resolves the interval's timezone, falling back to UTC.
func (iv TimeInterval) Location() *time.Location {
	if iv.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(iv.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// In returns the interval with both endpoints rebased to loc. The instants
// are unchanged; only the wall-clock representation moves.
func (iv TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{
		Start:    iv.Start.In(loc),
		End:      iv.End.In(loc),
		Timezone: loc.String(),
	}
}

// Overlaps reports whether two half-open intervals share any instant:
// iv.Start < other.End && other.Start < iv.End.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within iv.
func (iv TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Duration returns End - Start.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}
