package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	httpapi "heatindex-alert/internal/api/http"
	"heatindex-alert/internal/config"
	"heatindex-alert/internal/logging"
	"heatindex-alert/internal/metrics"
	"heatindex-alert/internal/redmet"
	"heatindex-alert/internal/runner"
	"heatindex-alert/internal/scheduler"
	"heatindex-alert/internal/store"
	"heatindex-alert/internal/telegram"
)

// Exit codes: 0 for any normal completion (alert sent, suppressed, or no
// data), 2 for configuration errors, 1 for transport failures.
const (
	exitOK        = 0
	exitTransport = 1
	exitConfig    = 2
)

// checkTimeout bounds one full check in watch mode.
const checkTimeout = 2 * time.Minute

// resultHistorySize is how many check results the watch-mode status
// endpoint can look back on.
const resultHistorySize = 96

func main() {
	os.Exit(run())
}

func run() int {
	watch := flag.Bool("watch", false, "keep running, checking every CHECK_INTERVAL, with a status/metrics HTTP endpoint")
	envFile := flag.String("env-file", "", "path to an env file (default: ./.env if present)")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			os.Stderr.WriteString("ERROR: cannot load env file: " + err.Error() + "\n")
			return exitConfig
		}
	} else {
		// Optional; scheduled executions normally inject real env vars.
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
		return exitConfig
	}

	log := logging.New(cfg)

	// Shared HTTP client for all outbound calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := redmet.NewClient(httpClient, cfg.BaseURL, cfg.RedmetUser, cfg.RedmetPass)
	notifier := telegram.NewClient(httpClient, cfg.TelegramToken)

	if !*watch {
		r := runner.New(cfg, api, notifier, log, nil)
		if _, err := r.Run(context.Background()); err != nil {
			log.Error("check failed", "error", err)
			return exitTransport
		}
		return exitOK
	}

	return runWatch(cfg, api, notifier, log)
}

func runWatch(cfg *config.Config, api *redmet.Client, notifier *telegram.Client, log *slog.Logger) int {
	collector := metrics.NewCollector("heatalert")
	results := store.NewResultStore(resultHistorySize)

	r := runner.New(cfg, api, notifier, log, collector)

	sched := scheduler.New(r, results, cfg.CheckInterval, checkTimeout, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		return exitTransport
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "heatalert",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "heatalert",
		})
	})

	httpapi.RegisterRoutes(app, results)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	log.Info("watch mode started", "interval", cfg.CheckInterval.String(), "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	return exitOK
}
