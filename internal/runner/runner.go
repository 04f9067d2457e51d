// Package runner sequences one full check: locate stations, pick a reading,
// apply the alert rules, and notify. A check is stateless; every run works
// from fresh API data.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heatindex-alert/internal/config"
	"heatindex-alert/internal/heatindex"
	"heatindex-alert/internal/metrics"
	"heatindex-alert/internal/redmet"
)

// maxStations bounds the fallback: only the closest stations are tried, in
// the order the API ranks them, and the first one with a usable reading
// wins. Readings are never merged across stations.
const maxStations = 3

// WeatherAPI is the slice of the REDMET client the runner needs.
type WeatherAPI interface {
	NearestStations(ctx context.Context, lat, lon string) ([]redmet.Station, error)
	StationRecords(ctx context.Context, stationID string, from, to time.Time) ([]redmet.Record, error)
}

// Notifier delivers one formatted message to one recipient.
type Notifier interface {
	Send(ctx context.Context, chatID, html string) error
}

// Outcome classifies how a check ended. All outcomes are normal
// completions; transport failures are reported as errors instead.
type Outcome string

const (
	OutcomeAlertSent           Outcome = "alert_sent"
	OutcomeNoStations          Outcome = "no_stations"
	OutcomeNoReading           Outcome = "no_reading"
	OutcomeSuppressedAge       Outcome = "suppressed_age"
	OutcomeSuppressedThreshold Outcome = "suppressed_threshold"
)

// Result is the record of one completed check, kept for logging and the
// watch-mode status endpoint.
type Result struct {
	Time       time.Time       `json:"time"`
	Outcome    Outcome         `json:"outcome"`
	Station    *redmet.Station `json:"station,omitempty"`
	HeatIndex  *float64        `json:"heatIndex,omitempty"`
	AgeMinutes *float64        `json:"ageMinutes,omitempty"`
	Recipients int             `json:"recipients,omitempty"`
}

// Runner executes checks against a fixed configuration.
type Runner struct {
	cfg      *config.Config
	api      WeatherAPI
	notifier Notifier
	log      *slog.Logger
	metrics  *metrics.Collector

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Runner. The metrics collector may be nil when no metrics
// surface is exposed (run-once mode).
func New(cfg *config.Config, api WeatherAPI, notifier Notifier, log *slog.Logger, collector *metrics.Collector) *Runner {
	return &Runner{
		cfg:      cfg,
		api:      api,
		notifier: notifier,
		log:      log,
		metrics:  collector,
		now:      time.Now,
	}
}

// Run performs one check. The returned error is always a transport-level
// failure; every data-quality or no-data situation resolves to a normal
// Result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	started := r.now()
	res, err := r.run(ctx, started)
	r.observe(res, err, time.Since(started))
	return res, err
}

func (r *Runner) run(ctx context.Context, now time.Time) (Result, error) {
	cfg := r.cfg
	slots, _ := heatindex.BuildSlots(now, cfg.SlotMinutes, cfg.MaxAgeMinutes)
	from := now.Add(-time.Duration(cfg.LookbackHours) * time.Hour)

	stations, err := r.api.NearestStations(ctx, cfg.Latitude, cfg.Longitude)
	if err != nil {
		return Result{Time: now}, err
	}
	if len(stations) == 0 {
		r.log.Info("no nearest stations returned")
		return Result{Time: now, Outcome: OutcomeNoStations}, nil
	}

	var (
		chosen    redmet.Station
		selection heatindex.Selection
		found     bool
	)

	for i, station := range stations {
		if i >= maxStations {
			break
		}
		if station.ID == "" {
			continue
		}

		records, err := r.api.StationRecords(ctx, station.ID, from, now)
		if err != nil {
			return Result{Time: now}, err
		}
		if len(records) == 0 {
			r.log.Debug("station returned no records", "station", station.Code)
			continue
		}

		sel, ok := heatindex.SelectReading(records, slots, cfg.SlotMinutes)
		if !ok {
			r.log.Debug("no reading aligned to the slot grid", "station", station.Code)
			continue
		}

		chosen, selection, found = station, sel, true
		break
	}

	if !found {
		r.log.Info("no usable heat index in the nearest stations", "tried", min(len(stations), maxStations))
		return Result{Time: now, Outcome: OutcomeNoReading}, nil
	}

	decision := heatindex.Decide(selection, now, cfg.HeatIndexThreshold, cfg.SuppressOlderThanMin)
	age := heatindex.RoundAge(decision.AgeMinutes)

	r.log.Debug("reading selected",
		"station", chosen.Code,
		"distance_km", chosen.Distance,
		"heat_index", selection.HeatIndex,
		"temperature", selection.Temperature,
		"timestamp", selection.RawTime,
		"slot", selection.Slot.Format("2006-01-02 15:04:05"),
		"age_min", age,
	)

	res := Result{
		Time:       now,
		Station:    &chosen,
		HeatIndex:  &selection.HeatIndex,
		AgeMinutes: &age,
	}

	switch {
	case decision.SuppressedByAge:
		r.log.Info("reading too old, skipping alert",
			"age_min", age, "cutoff_min", cfg.SuppressOlderThanMin)
		res.Outcome = OutcomeSuppressedAge
		return res, nil
	case decision.SuppressedByThreshold:
		r.log.Info("no alert, heat index within threshold",
			"heat_index", selection.HeatIndex, "threshold", cfg.HeatIndexThreshold)
		res.Outcome = OutcomeSuppressedThreshold
		return res, nil
	}

	msg := heatindex.FormatMessage(chosen, selection, decision, cfg.HeatIndexThreshold)
	for _, chatID := range cfg.ChatIDs {
		if err := r.notifier.Send(ctx, chatID, msg); err != nil {
			return res, fmt.Errorf("notify: %w", err)
		}
	}

	r.log.Info("alert sent", "recipients", len(cfg.ChatIDs), "heat_index", selection.HeatIndex)
	res.Outcome = OutcomeAlertSent
	res.Recipients = len(cfg.ChatIDs)
	return res, nil
}

func (r *Runner) observe(res Result, err error, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}

	r.metrics.CheckDuration.Observe(elapsed.Seconds())
	r.metrics.LastCheckTimestamp.SetToCurrentTime()

	if err != nil {
		r.metrics.CheckErrors.WithLabelValues(stage(res)).Inc()
		return
	}

	r.metrics.ChecksTotal.WithLabelValues(string(res.Outcome)).Inc()
	if res.HeatIndex != nil {
		r.metrics.LastHeatIndex.Set(*res.HeatIndex)
	}
	if res.Outcome == OutcomeAlertSent {
		r.metrics.AlertsSentTotal.Inc()
	}
}

// stage names the phase a failed check died in, inferred from how far the
// result got.
func stage(res Result) string {
	if res.Station != nil {
		return "notify"
	}
	return "weather_api"
}
