package redmet

// Station describes a weather-sensing site as returned by the nearest-station
// lookup. Distance is kept as the API's own rendering (kilometres) since it
// is only ever echoed back in notifications.
type Station struct {
	ID       string
	Code     string
	Name     string
	Distance string
}

// Record is one raw reading row. Rows are loosely typed on purpose: fields
// may be missing, null, or numeric strings, and validating them is the
// selector's job, not the client's.
type Record = map[string]any

// Field names used by the REDMET reading rows.
const (
	FieldTimestamp   = "fecha"
	FieldHeatIndex   = "indice_calor"
	FieldTemperature = "temperatura"
)
