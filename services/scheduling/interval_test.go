package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func utcInterval(t *testing.T, startHour, endHour int) models.TimeInterval {
	t.Helper()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	iv, err := models.NewInterval(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour), "UTC")
	require.NoError(t, err)
	return iv
}

func TestMergeIntervalsCoalescesOverlaps(t *testing.T) {
	merged := MergeIntervals([]models.TimeInterval{
		utcInterval(t, 9, 11),
		utcInterval(t, 10, 12),
		utcInterval(t, 14, 15),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, utcInterval(t, 9, 12).Start, merged[0].Start)
	assert.Equal(t, utcInterval(t, 9, 12).End, merged[0].End)
	assert.Equal(t, utcInterval(t, 14, 15).Start, merged[1].Start)
}

func TestMergeIntervalsCoalescesAdjacent(t *testing.T) {
	merged := MergeIntervals([]models.TimeInterval{
		utcInterval(t, 9, 10),
		utcInterval(t, 10, 11),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, utcInterval(t, 9, 11).Start, merged[0].Start)
	assert.Equal(t, utcInterval(t, 9, 11).End, merged[0].End)
}

func TestMergeIntervalsOrderIndependent(t *testing.T) {
	a := []models.TimeInterval{utcInterval(t, 9, 11), utcInterval(t, 10, 12), utcInterval(t, 14, 15)}
	b := []models.TimeInterval{utcInterval(t, 14, 15), utcInterval(t, 10, 12), utcInterval(t, 9, 11)}

	assert.Equal(t, MergeIntervals(a), MergeIntervals(b))
}

func TestMergeIntervalsIdempotent(t *testing.T) {
	once := MergeIntervals([]models.TimeInterval{
		utcInterval(t, 9, 11),
		utcInterval(t, 10, 12),
	})
	twice := MergeIntervals(once)

	assert.Equal(t, once, twice)
}

func TestMergeIntervalsDoesNotMutateInput(t *testing.T) {
	in := []models.TimeInterval{utcInterval(t, 14, 15), utcInterval(t, 9, 10)}
	MergeIntervals(in)

	assert.Equal(t, utcInterval(t, 14, 15).Start, in[0].Start)
}

func TestMergeIntervalsEmpty(t *testing.T) {
	assert.Empty(t, MergeIntervals(nil))
}

func TestSubtractBusyKeepsOnlyDisjointCandidates(t *testing.T) {
	candidates := []models.TimeInterval{
		utcInterval(t, 9, 10),
		utcInterval(t, 10, 11),
		utcInterval(t, 11, 12),
		utcInterval(t, 12, 13),
	}
	busy := MergeIntervals([]models.TimeInterval{utcInterval(t, 10, 12)})

	free := SubtractBusy(candidates, busy)

	require.Len(t, free, 2)
	assert.Equal(t, utcInterval(t, 9, 10).Start, free[0].Start)
	assert.Equal(t, utcInterval(t, 12, 13).Start, free[1].Start)
}

func TestSubtractBusyAdjacentIsNotConflict(t *testing.T) {
	candidates := []models.TimeInterval{utcInterval(t, 10, 11)}
	busy := []models.TimeInterval{utcInterval(t, 9, 10), utcInterval(t, 11, 12)}

	free := SubtractBusy(candidates, busy)

	require.Len(t, free, 1)
}

func TestSubtractBusyPartialOverlapDropsSlot(t *testing.T) {
	candidates := []models.TimeInterval{utcInterval(t, 9, 11)}
	busy := []models.TimeInterval{utcInterval(t, 10, 12)}

	assert.Empty(t, SubtractBusy(candidates, busy))
}

func TestSubtractBusyNoBusy(t *testing.T) {
	candidates := []models.TimeInterval{utcInterval(t, 9, 10)}

	assert.Equal(t, candidates, SubtractBusy(candidates, nil))
}
