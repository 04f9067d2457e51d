package heatindex

import (
	"fmt"
	"math"
	"strings"
	"time"

	"heatindex-alert/internal/redmet"
)

// Decision is the outcome of applying the staleness and threshold rules to a
// selection.
type Decision struct {
	AgeMinutes            float64
	SuppressedByAge       bool
	SuppressedByThreshold bool
	Notify                bool
}

// Decide applies the alert rules to a selection. The age gate is evaluated
// first and short-circuits: a reading older than suppressOlderThanMin
// minutes never alerts, whatever its value. The threshold comparison is
// strict, so a heat index equal to the threshold does not alert.
func Decide(sel Selection, now time.Time, thresholdC float64, suppressOlderThanMin int) Decision {
	d := Decision{
		AgeMinutes: now.Sub(sel.Timestamp).Minutes(),
	}

	if d.AgeMinutes > float64(suppressOlderThanMin) {
		d.SuppressedByAge = true
		return d
	}
	if sel.HeatIndex <= thresholdC {
		d.SuppressedByThreshold = true
		return d
	}
	d.Notify = true
	return d
}

// FormatMessage renders the Telegram alert body in HTML. The layout matches
// the long-standing operator-facing template, including the REDMET ICC
// attribution line.
func FormatMessage(station redmet.Station, sel Selection, d Decision, thresholdC float64) string {
	tempTxt := "NA"
	if sel.Temperature != nil {
		tempTxt = fmt.Sprintf("%.1f °C", *sel.Temperature)
	}

	var b strings.Builder
	b.WriteString("🚨 <b>ALERTA DE SENSACIÓN TÉRMICA</b>\n\n")
	fmt.Fprintf(&b, "🏭 <b>ESTACIÓN UTILIZADA:</b> %s - %s\n", station.Code, station.Name)
	fmt.Fprintf(&b, "📍 <b>DISTANCIA:</b> %s km\n", station.Distance)
	fmt.Fprintf(&b, "🌡️ <b>TEMPERATURA:</b> %s\n", tempTxt)
	fmt.Fprintf(&b, "🔥 <b>SENSACIÓN TÉRMICA:</b> %.1f °C (umbral &gt; %.1f °C)\n", sel.HeatIndex, thresholdC)
	fmt.Fprintf(&b, "🕒 <b>FECHA API CONSULTA:</b> %s\n", sel.RawTime)
	fmt.Fprintf(&b, "⏱️ <b>RETRASO:</b> %.1f min\n\n", RoundAge(d.AgeMinutes))
	b.WriteString("📡 <b>FUENTE:</b> REDMET ICC")
	return b.String()
}

// RoundAge rounds an age in minutes to one decimal for display.
func RoundAge(minutes float64) float64 {
	return math.Round(minutes*10) / 10
}
