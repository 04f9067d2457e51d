package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"heatindex-alert/internal/runner"
	"heatindex-alert/internal/store"
)

// Scheduler periodically runs the heat-index check in watch mode.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    *runner.Runner
	results   *store.ResultStore
	interval  time.Duration
	timeout   time.Duration
	log       *slog.Logger
}

// New creates a Scheduler. Each job run is bounded by timeout.
func New(r *runner.Runner, results *store.ResultStore, interval, timeout time.Duration, log *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	// A slow check must not overlap the next tick.
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		runner:    r,
		results:   results,
		interval:  interval,
		timeout:   timeout,
		log:       log,
	}
}

// Start schedules the periodic check and starts the underlying scheduler.
// The first run fires immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		res, err := s.runner.Run(ctx)
		if err != nil {
			// One failed poll must not bring the monitor down; the next
			// tick retries from scratch.
			s.log.Error("check failed", "error", err)
			return
		}
		s.results.Save(res)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
