package heatindex

import (
	"strings"
	"testing"
	"time"

	"heatindex-alert/internal/redmet"
)

func selectionAt(ts time.Time, heatIndex float64, temp *float64) Selection {
	return Selection{
		HeatIndex:   heatIndex,
		Temperature: temp,
		Timestamp:   ts,
		RawTime:     ts.Format("2006-01-02 15:04:05"),
		Slot:        FloorToSlot(ts, 15),
	}
}

func TestDecideAgeGateWins(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	sel := selectionAt(now.Add(-91*time.Minute), 40.0, nil)

	d := Decide(sel, now, 10.0, 90)

	if !d.SuppressedByAge {
		t.Error("expected age suppression at 91 minutes")
	}
	if d.SuppressedByThreshold || d.Notify {
		t.Error("age gate must short-circuit the threshold check")
	}
}

func TestDecideThresholdEqualitySuppresses(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	sel := selectionAt(now.Add(-5*time.Minute), 10.0, nil)

	d := Decide(sel, now, 10.0, 90)

	if !d.SuppressedByThreshold {
		t.Error("expected suppression at exactly the threshold")
	}
	if d.Notify {
		t.Error("equality must not alert; comparison is strict")
	}
}

func TestDecideNotifies(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	sel := selectionAt(now.Add(-5*time.Minute), 10.1, nil)

	d := Decide(sel, now, 10.0, 90)

	if !d.Notify {
		t.Fatal("expected a notification decision")
	}
	if d.SuppressedByAge || d.SuppressedByThreshold {
		t.Error("unexpected suppression flags")
	}
	if d.AgeMinutes < 4.9 || d.AgeMinutes > 5.1 {
		t.Errorf("unexpected age %v", d.AgeMinutes)
	}
}

func TestFormatMessage(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	temp := 31.27
	sel := selectionAt(now.Add(-5*time.Minute), 12.34, &temp)
	d := Decide(sel, now, 10.0, 90)

	station := redmet.Station{ID: "7", Code: "STA-07", Name: "El Baúl", Distance: "3.2"}
	msg := FormatMessage(station, sel, d, 10.0)

	for _, want := range []string{
		"ALERTA DE SENSACIÓN TÉRMICA",
		"STA-07 - El Baúl",
		"3.2 km",
		"31.3 °C",
		"12.3 °C (umbral &gt; 10.0 °C)",
		sel.RawTime,
		"5.0 min",
		"REDMET ICC",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatMessageUnknownTemperature(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	sel := selectionAt(now.Add(-5*time.Minute), 12.0, nil)
	d := Decide(sel, now, 10.0, 90)

	msg := FormatMessage(redmet.Station{}, sel, d, 10.0)
	if !strings.Contains(msg, "<b>TEMPERATURA:</b> NA") {
		t.Errorf("expected NA marker for missing temperature:\n%s", msg)
	}
}

func TestRoundAge(t *testing.T) {
	if got := RoundAge(5.24); got != 5.2 {
		t.Errorf("expected 5.2, got %v", got)
	}
	if got := RoundAge(5.26); got != 5.3 {
		t.Errorf("expected 5.3, got %v", got)
	}
}
