package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is the production REDMET web-service root.
const DefaultBaseURL = "https://redmet.icc.org.gt/ws"

var validate = validator.New()

// Config holds all process configuration, loaded once at startup and passed
// by reference into components. Credentials and thresholds are never read
// from the environment anywhere else.
type Config struct {
	// Notification channel.
	TelegramToken string   `validate:"required"`
	ChatIDs       []string `validate:"required,min=1,dive,required"`

	// REDMET API access.
	RedmetUser string `validate:"required"`
	RedmetPass string `validate:"required"`
	BaseURL    string `validate:"required,url"`

	// Queried coordinate, kept as the raw decimal-degree strings the API
	// expects in its URL path.
	Latitude  string `validate:"required,latitude"`
	Longitude string `validate:"required,longitude"`

	// Alerting rules.
	HeatIndexThreshold float64
	SlotMinutes        int `validate:"gt=0"`
	MaxAgeMinutes      int `validate:"gte=0"`
	LookbackHours      int `validate:"gt=0"`
	// Readings older than this are never alerted on, regardless of value.
	SuppressOlderThanMin int `validate:"gte=0"`

	// Ambient settings.
	HTTPTimeout   time.Duration
	LogLevel      slog.Level
	LogFormat     string // "text" or "json"
	CheckInterval time.Duration
	Port          string
}

// Load reads configuration from the environment. Required keys missing or
// malformed values yield an error; optional keys fall back to the documented
// defaults.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: env("TELEGRAM_TOKEN"),
		RedmetUser:    env("REDMET_USER"),
		RedmetPass:    env("REDMET_PASS"),
		Latitude:      env("LAT"),
		Longitude:     env("LON"),
		BaseURL:       getenvDefault("REDMET_BASE", DefaultBaseURL),
		Port:          getenvDefault("PORT", "8080"),
		LogFormat:     getenvDefault("LOG_FORMAT", "text"),
	}

	cfg.ChatIDs = splitList(env("TELEGRAM_CHAT_IDS"))

	var err error
	if cfg.HeatIndexThreshold, err = getenvFloat("HEAT_INDEX_THRESHOLD", 10.0); err != nil {
		return nil, err
	}
	if cfg.SlotMinutes, err = getenvInt("SLOT_MINUTES", 15); err != nil {
		return nil, err
	}
	if cfg.MaxAgeMinutes, err = getenvInt("MAX_AGE_MIN", 45); err != nil {
		return nil, err
	}
	if cfg.LookbackHours, err = getenvInt("LOOKBACK_HOURS", 6); err != nil {
		return nil, err
	}
	if cfg.SuppressOlderThanMin, err = getenvInt("SUPPRESS_IF_OLDER_THAN_MIN", 90); err != nil {
		return nil, err
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	if cfg.HTTPTimeout, err = time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", timeoutStr, err)
	}

	intervalStr := getenvDefault("CHECK_INTERVAL", "15m")
	if cfg.CheckInterval, err = time.ParseDuration(intervalStr); err != nil {
		return nil, fmt.Errorf("invalid CHECK_INTERVAL %q: %w", intervalStr, err)
	}

	if cfg.LogLevel, err = parseLogLevel(getenvDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, trimming entries and dropping
// empty ones.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvDefault(key, def string) string {
	if v := env(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
