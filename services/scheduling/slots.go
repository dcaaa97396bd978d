package scheduling

import (
	"time"

	"slotwise/models"
)

// DefaultGranularity is the slot step used when a listing does not set one.
const DefaultGranularity = 30 * time.Minute

// SlotGenerator produces the raw candidate grid of bookable slots for a
// single day, independent of any exclusions.
type SlotGenerator struct {
	Granularity time.Duration
}

func NewSlotGenerator(granularity time.Duration) SlotGenerator {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	return SlotGenerator{Granularity: granularity}
}

// Generate returns candidate slots of the given duration, stepped by the
// generator's granularity, confined to the window. Slots whose start is
// before now are dropped. Returns nil when the duration does not fit the
// window. Slots never extend past the window end, so they cross midnight
// only when the window itself does.
func (g SlotGenerator) Generate(window models.TimeInterval, duration time.Duration, now time.Time) []models.TimeInterval {
	if duration <= 0 {
		return nil
	}
	if window.Start.Add(duration).After(window.End) {
		return nil
	}

	step := g.Granularity
	if step <= 0 {
		step = DefaultGranularity
	}

	var slots []models.TimeInterval
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, models.TimeInterval{
			Start:    start,
			End:      start.Add(duration),
			Timezone: window.Timezone,
		})
	}
	return slots
}

// GenerateForDay projects the listing's working hours onto the target date
// and generates the candidate grid for it.
func (g SlotGenerator) GenerateForDay(listing models.Listing, date time.Time, duration time.Duration, now time.Time) []models.TimeInterval {
	loc := listing.Location()
	window := listing.Hours().Window(date.In(loc), loc)
	return g.Generate(window, duration, now)
}
