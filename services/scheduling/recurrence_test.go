package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func TestExpandYearlyBlockProjectsAcrossYears(t *testing.T) {
	var e RecurrenceExpander
	// Christmas Day 2024, all of it, declared once.
	block := models.BlockedTime{
		Interval: models.TimeInterval{
			Start:    time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		RecurringYearly: true,
	}
	window := models.TimeInterval{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out := e.ExpandYearlyBlock(block, window)

	require.Len(t, out, 3)
	for i, year := range []int{2024, 2025, 2026} {
		assert.Equal(t, year, out[i].Start.Year())
		assert.Equal(t, time.December, out[i].Start.Month())
		assert.Equal(t, 25, out[i].Start.Day())
	}
}

func TestExpandYearlyBlockSpanningYearBoundary(t *testing.T) {
	var e RecurrenceExpander
	// New Year's Eve block reaching into Jan 1.
	block := models.BlockedTime{
		Interval: models.TimeInterval{
			Start:    time.Date(2023, 12, 31, 18, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		RecurringYearly: true,
	}
	// Window covering only the first days of 2025: the occurrence anchored
	// in Dec 2024 must still be found.
	window := models.TimeInterval{
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out := e.ExpandYearlyBlock(block, window)

	require.Len(t, out, 1)
	assert.Equal(t, 2024, out[0].Start.Year())
	assert.Equal(t, 2025, out[0].End.Year())
}

func TestExpandYearlyBlockLeapDayClamps(t *testing.T) {
	var e RecurrenceExpander
	block := models.BlockedTime{
		Interval: models.TimeInterval{
			Start:    time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 2, 29, 17, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		RecurringYearly: true,
	}
	window := models.TimeInterval{
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out := e.ExpandYearlyBlock(block, window)

	require.Len(t, out, 1)
	assert.Equal(t, time.February, out[0].Start.Month())
	assert.Equal(t, 28, out[0].Start.Day())
	assert.Equal(t, 9, out[0].Start.Hour())
}

func TestExpandBlockedTimesAllDayWidens(t *testing.T) {
	var e RecurrenceExpander
	blocks := []models.BlockedTime{{
		Interval: models.TimeInterval{
			Start:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
		IsAllDay: true,
	}}
	window := models.TimeInterval{
		Start:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out := e.ExpandBlockedTimes(blocks, window)

	require.Len(t, out, 1)
	assert.Equal(t, window.Start, out[0].Start)
	assert.Equal(t, window.End, out[0].End)
}

func TestExpandBlockedTimesNonOverlappingDropped(t *testing.T) {
	var e RecurrenceExpander
	blocks := []models.BlockedTime{{
		Interval: models.TimeInterval{
			Start:    time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC),
			Timezone: "UTC",
		},
	}}
	window := models.TimeInterval{
		Start:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	assert.Empty(t, e.ExpandBlockedTimes(blocks, window))
}

func TestExpandBookingPatternWeeklyByCount(t *testing.T) {
	var e RecurrenceExpander
	first := models.TimeInterval{
		Start:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out, err := e.ExpandBookingPattern(first, models.RecurringBookingRequest{
		Pattern:         models.RecurWeekly,
		OccurrenceCount: 4,
	})

	require.NoError(t, err)
	require.Len(t, out, 4)
	for i, day := range []int{6, 13, 20, 27} {
		assert.Equal(t, day, out[i].Start.Day())
		assert.Equal(t, 9, out[i].Start.Hour())
		assert.Equal(t, time.Hour, out[i].End.Sub(out[i].Start))
	}
}

func TestExpandBookingPatternEndDateWins(t *testing.T) {
	var e RecurrenceExpander
	first := models.TimeInterval{
		Start:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}
	end := time.Date(2025, 1, 20, 23, 59, 0, 0, time.UTC)

	out, err := e.ExpandBookingPattern(first, models.RecurringBookingRequest{
		Pattern:         models.RecurWeekly,
		EndDate:         &end,
		OccurrenceCount: 10,
	})

	require.NoError(t, err)
	// Jan 6, 13, 20. The occurrence count is ignored when an end date is set.
	require.Len(t, out, 3)
}

func TestExpandBookingPatternMonthlySkipsShortMonths(t *testing.T) {
	var e RecurrenceExpander
	first := models.TimeInterval{
		Start:    time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	out, err := e.ExpandBookingPattern(first, models.RecurringBookingRequest{
		Pattern:         models.RecurMonthly,
		OccurrenceCount: 3,
	})

	require.NoError(t, err)
	require.Len(t, out, 3)
	// February has no 31st: the series runs Jan 31, Mar 31, May 31.
	assert.Equal(t, time.January, out[0].Start.Month())
	assert.Equal(t, time.March, out[1].Start.Month())
	assert.Equal(t, time.May, out[2].Start.Month())
}

func TestExpandBookingPatternRequiresBound(t *testing.T) {
	var e RecurrenceExpander
	first := models.TimeInterval{
		Start:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	_, err := e.ExpandBookingPattern(first, models.RecurringBookingRequest{Pattern: models.RecurDaily})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestExpandBookingPatternUnknownPattern(t *testing.T) {
	var e RecurrenceExpander
	first := models.TimeInterval{
		Start:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}

	_, err := e.ExpandBookingPattern(first, models.RecurringBookingRequest{
		Pattern:         models.RecurrencePattern("hourly"),
		OccurrenceCount: 2,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
