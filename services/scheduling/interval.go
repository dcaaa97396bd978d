package scheduling

import (
	"sort"
	"time"

	"slotwise/models"
)

// MergeIntervals collapses a set of possibly-overlapping intervals into the
// minimal disjoint set covering the same instants, sorted by start time.
// Overlapping and adjacent intervals are merged. The input is not modified;
// output is independent of the input order. Merging source-by-source without
// this step undercounts overlaps, so every busy set goes through here before
// subtraction.
func MergeIntervals(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]models.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]models.TimeInterval, 0, len(sorted))
	current := sorted[0].In(time.UTC)
	for _, iv := range sorted[1:] {
		iv = iv.In(time.UTC)
		if !iv.Start.After(current.End) {
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)
	return merged
}

// SubtractBusy filters candidates down to those that do not overlap any
// interval in the merged busy set. Both slices must be sorted by start;
// busy must already be disjoint (output of MergeIntervals).
func SubtractBusy(candidates, busy []models.TimeInterval) []models.TimeInterval {
	if len(busy) == 0 {
		out := make([]models.TimeInterval, len(candidates))
		copy(out, candidates)
		return out
	}

	var free []models.TimeInterval
	i := 0
	for _, slot := range candidates {
		// Busy intervals ending at or before the slot start can never
		// overlap this or any later slot.
		for i < len(busy) && !busy[i].End.After(slot.Start) {
			i++
		}
		if i < len(busy) && slot.Overlaps(busy[i]) {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// IntervalsOf extracts the intervals from a slice of bookings.
func IntervalsOf(bookings []models.Booking) []models.TimeInterval {
	out := make([]models.TimeInterval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Interval)
	}
	return out
}
