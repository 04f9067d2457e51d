// Package heatindex implements the reading-selection core of the monitor:
// mapping irregular station timestamps onto a grid of freshness slots,
// picking the newest usable heat-index reading, and deciding whether it
// warrants an alert.
package heatindex

import "time"

// FloorToSlot truncates t to the start of its slot: the minute is floored to
// the nearest multiple of slotMinutes and seconds are zeroed.
func FloorToSlot(t time.Time, slotMinutes int) time.Time {
	m := (t.Minute() / slotMinutes) * slotMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, 0, 0, t.Location())
}

// BuildSlots returns the acceptable freshness slots, newest first, starting
// at now floored to the grid and stepping back slotMinutes at a time while
// the offset stays within maxAgeMinutes. The current (first) slot is also
// returned. slotMinutes must be positive; values that do not divide 60 give
// uneven boundaries at the top of the hour.
func BuildSlots(now time.Time, slotMinutes, maxAgeMinutes int) ([]time.Time, time.Time) {
	base := FloorToSlot(now, slotMinutes)

	var slots []time.Time
	for mins := 0; mins <= maxAgeMinutes; mins += slotMinutes {
		slots = append(slots, base.Add(-time.Duration(mins)*time.Minute))
	}
	return slots, base
}
