// Package scheduler triggers the weekly reminder run on a cron
// schedule, standing in for the platform's own timers.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/pkg/logger"
)

// Runner is the slice of the orchestrator the scheduler needs.
type Runner interface {
	WeeklyReminders(ctx context.Context, department string) ([]model.Delivery, error)
}

// Scheduler owns the cron loop for scheduled reminder runs.
type Scheduler struct {
	runner     Runner
	schedule   string
	department string
	location   *time.Location
	cron       *cron.Cron
	logger     logger.Logger
}

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithLocation evaluates the schedule in a specific time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(log logger.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a Scheduler that runs reminders for department on the
// given cron schedule.
func New(runner Runner, schedule, department string, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:     runner,
		schedule:   schedule,
		department: department,
		location:   time.Local,
		logger:     logger.Get().Named("scheduler"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the schedule and begins the cron loop. The ctx is
// carried into each run; cancel it and call Stop to shut down.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.location))

	_, err := s.cron.AddFunc(s.schedule, func() {
		runCtx := ctx
		s.logger.Info(runCtx, "scheduled reminder run starting",
			logger.String("department", s.department),
		)
		deliveries, err := s.runner.WeeklyReminders(runCtx, s.department)
		if err != nil {
			s.logger.Error(runCtx, "scheduled reminder run failed", logger.Error(err))
			return
		}
		s.logger.Info(runCtx, "scheduled reminder run finished",
			logger.Int("deliveries", len(deliveries)),
		)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info(ctx, "reminder schedule armed",
		logger.String("schedule", s.schedule),
		logger.String("department", s.department),
	)
	return nil
}

// Stop halts the cron loop, waiting for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
