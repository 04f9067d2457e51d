package heatindex

import (
	"time"

	"heatindex-alert/internal/common"
	"heatindex-alert/internal/redmet"
)

// apiTimeFormat is the exact timestamp layout the API emits. Anything else
// is rejected rather than guessed at.
const apiTimeFormat = "2006-01-02 15:04:05"

// Selection is the reading chosen for a run: the raw record it came from,
// its coerced values, and the grid slot it landed on.
type Selection struct {
	Record    redmet.Record
	HeatIndex float64
	// Temperature is informational only; nil means the station did not
	// report a usable value.
	Temperature *float64
	// Timestamp is the record's parsed wall-clock time; RawTime is the
	// original string for display.
	Timestamp time.Time
	RawTime   string
	Slot      time.Time
}

// SelectReading picks the single best usable reading from raw records.
//
// Records with missing or malformed timestamps, or without a numeric heat
// index, are dropped silently. Surviving records are bucketed onto the slot
// grid; when several records share a slot the last one processed wins, so
// callers must supply records in ascending time order for most-recent-wins
// semantics. Slots are then walked newest first and the first occupied one
// is returned. The boolean is false when no record lands on any slot.
func SelectReading(records []redmet.Record, slots []time.Time, slotMinutes int) (Selection, bool) {
	bySlot := make(map[time.Time]Selection)

	for _, rec := range records {
		raw, ok := rec[redmet.FieldTimestamp].(string)
		if !ok {
			continue
		}
		ts, err := time.ParseInLocation(apiTimeFormat, raw, time.Local)
		if err != nil {
			continue
		}

		hi, ok := common.ToFloat(rec[redmet.FieldHeatIndex])
		if !ok {
			continue
		}

		var temp *float64
		if v, ok := common.ToFloat(rec[redmet.FieldTemperature]); ok {
			temp = &v
		}

		slot := FloorToSlot(ts, slotMinutes)
		bySlot[slot] = Selection{
			Record:      rec,
			HeatIndex:   hi,
			Temperature: temp,
			Timestamp:   ts,
			RawTime:     raw,
			Slot:        slot,
		}
	}

	for _, slot := range slots {
		if sel, ok := bySlot[slot]; ok {
			return sel, true
		}
	}
	return Selection{}, false
}
