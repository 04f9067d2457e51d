package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"heatindex-alert/internal/config"
)

// New builds the process logger. Text mode uses a tinted console handler for
// interactive runs; JSON mode is meant for scheduled executions whose output
// is collected.
func New(cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == "json" {
		h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})
		return slog.New(h).With("app", "heatalert")
	}

	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h)
}
