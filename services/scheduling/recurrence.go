package scheduling

import (
	"time"

	"github.com/teambition/rrule-go"

	"slotwise/models"
)

// maxOccurrences caps booking-pattern expansion so an unbounded or distant
// endDate cannot produce a runaway series.
const maxOccurrences = 366

// RecurrenceExpander turns recurring definitions into concrete intervals.
type RecurrenceExpander struct{}

// ExpandYearlyBlock projects a yearly-recurring block's month/day/time-of-day
// onto every calendar year overlapping the query window. The year before the
// window start is included so a projection spanning a year boundary (e.g. a
// Dec 31 block reaching into Jan 1) is not missed.
func (RecurrenceExpander) ExpandYearlyBlock(block models.BlockedTime, window models.TimeInterval) []models.TimeInterval {
	loc := block.Interval.Location()
	base := block.Interval.Start.In(loc)
	duration := block.Interval.Duration()

	var out []models.TimeInterval
	for year := window.Start.In(loc).Year() - 1; year <= window.End.In(loc).Year(); year++ {
		start := projectToYear(base, year, loc)
		iv := models.TimeInterval{Start: start, End: start.Add(duration), Timezone: block.Interval.Timezone}
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out
}

// projectToYear rebuilds the base wall-clock time in the given year. A Feb 29
// anchor is clamped to Feb 28 in non-leap years rather than rolling into
// March.
func projectToYear(base time.Time, year int, loc *time.Location) time.Time {
	t := time.Date(year, base.Month(), base.Day(), base.Hour(), base.Minute(), base.Second(), 0, loc)
	if t.Month() != base.Month() {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// ExpandBlockedTimes produces the concrete exclusion intervals for a set of
// blocks within the window: non-recurring blocks pass through when they
// overlap, yearly blocks are projected. All-day blocks are widened to cover
// their full calendar days in the block's own timezone.
func (e RecurrenceExpander) ExpandBlockedTimes(blocks []models.BlockedTime, window models.TimeInterval) []models.TimeInterval {
	var out []models.TimeInterval
	for _, b := range blocks {
		base := b.Interval
		if b.IsAllDay {
			base = fullDays(base)
		}
		if b.RecurringYearly {
			block := b
			block.Interval = base
			out = append(out, e.ExpandYearlyBlock(block, window)...)
			continue
		}
		if base.Overlaps(window) {
			out = append(out, base)
		}
	}
	return out
}

func fullDays(iv models.TimeInterval) models.TimeInterval {
	loc := iv.Location()
	start := iv.Start.In(loc)
	end := iv.End.In(loc)
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	if dayEnd.Before(end) {
		dayEnd = dayEnd.AddDate(0, 0, 1)
	}
	if !dayEnd.After(dayStart) {
		dayEnd = dayStart.AddDate(0, 0, 1)
	}
	return models.TimeInterval{Start: dayStart, End: dayEnd, Timezone: iv.Timezone}
}

// ExpandBookingPattern generates the occurrence intervals of a recurring
// booking series starting at first. Daily advances one day, weekly seven,
// monthly one calendar month keeping the day-of-month (months without that
// day are skipped, per RRULE semantics). EndDate is the authoritative bound
// when both EndDate and OccurrenceCount are supplied; a request with neither
// is rejected.
func (RecurrenceExpander) ExpandBookingPattern(first models.TimeInterval, req models.RecurringBookingRequest) ([]models.TimeInterval, error) {
	if err := first.Validate(); err != nil {
		return nil, NewValidationError("interval", err.Error())
	}
	if req.EndDate == nil && req.OccurrenceCount <= 0 {
		return nil, NewValidationError("recurrence", "one of end_date or occurrence_count is required")
	}

	var freq rrule.Frequency
	switch req.Pattern {
	case models.RecurDaily:
		freq = rrule.DAILY
	case models.RecurWeekly:
		freq = rrule.WEEKLY
	case models.RecurMonthly:
		freq = rrule.MONTHLY
	default:
		return nil, NewValidationError("pattern", "must be daily, weekly or monthly")
	}

	loc := first.Location()
	opt := rrule.ROption{
		Freq:    freq,
		Dtstart: first.Start.In(loc),
	}
	if req.EndDate != nil {
		opt.Until = req.EndDate.In(loc)
	} else {
		opt.Count = req.OccurrenceCount
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, NewValidationError("recurrence", err.Error())
	}

	duration := first.Duration()
	var out []models.TimeInterval
	for _, start := range rule.All() {
		out = append(out, models.TimeInterval{
			Start:    start,
			End:      start.Add(duration),
			Timezone: first.Timezone,
		})
		if len(out) >= maxOccurrences {
			break
		}
	}
	return out, nil
}
