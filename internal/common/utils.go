package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToFloat coerces a decoded JSON value into a float64. The REDMET API is
// inconsistent about numeric fields: the same field may arrive as a number,
// a numeric string, or null depending on the station.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToString coerces a decoded JSON value into a string. Identifiers in the
// REDMET payloads may arrive as strings or numbers.
func ToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Identifiers are whole numbers; avoid rendering "1" as "1.000000".
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
