package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func TestGenerateStepsByGranularity(t *testing.T) {
	gen := NewSlotGenerator(30 * time.Minute)
	window := utcInterval(t, 9, 12)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	slots := gen.Generate(window, time.Hour, past)

	// 09:00 through 11:00 inclusive, every 30 minutes.
	require.Len(t, slots, 5)
	assert.Equal(t, window.Start, slots[0].Start)
	assert.Equal(t, window.Start.Add(time.Hour), slots[0].End)
	assert.Equal(t, window.End, slots[len(slots)-1].End)
}

func TestGenerateSlotsNeverExtendPastWindow(t *testing.T) {
	gen := NewSlotGenerator(30 * time.Minute)
	window := utcInterval(t, 9, 10)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	slots := gen.Generate(window, 45*time.Minute, past)

	require.Len(t, slots, 1)
	assert.False(t, slots[0].End.After(window.End))
}

func TestGenerateDurationLongerThanWindow(t *testing.T) {
	gen := NewSlotGenerator(30 * time.Minute)
	window := utcInterval(t, 9, 10)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, gen.Generate(window, 2*time.Hour, past))
}

func TestGenerateFiltersPastSlots(t *testing.T) {
	gen := NewSlotGenerator(30 * time.Minute)
	window := utcInterval(t, 9, 12)
	now := window.Start.Add(75 * time.Minute) // 10:15

	slots := gen.Generate(window, time.Hour, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, window.Start.Add(90*time.Minute), slots[0].Start)
}

func TestGenerateZeroDuration(t *testing.T) {
	gen := NewSlotGenerator(30 * time.Minute)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, gen.Generate(utcInterval(t, 9, 12), 0, past))
}

func TestGenerateDefaultGranularity(t *testing.T) {
	gen := NewSlotGenerator(0)
	assert.Equal(t, DefaultGranularity, gen.Granularity)
}

func TestGenerateForDayUsesWorkingHours(t *testing.T) {
	listing := models.Listing{
		Timezone: "UTC",
		WorkingHours: &models.WorkingHours{
			StartMinute: 9 * 60,
			EndMinute:   17 * 60,
		},
	}
	gen := NewSlotGenerator(time.Hour)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	slots := gen.GenerateForDay(listing, date, time.Hour, past)

	require.Len(t, slots, 8)
	assert.Equal(t, 9, slots[0].Start.Hour())
	assert.Equal(t, 17, slots[len(slots)-1].End.Hour())
}
