// Package app composes the fetchers, evaluator, formatter, and
// dispatcher into the reminder and report workflows exposed to the
// chat-command layer and the weekly scheduler.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bva/billabot/internal/adapters/directory"
	"github.com/bva/billabot/internal/domain/compliance"
	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/internal/domain/report"
	"github.com/bva/billabot/internal/domain/target"
	"github.com/bva/billabot/pkg/logger"
	"github.com/bva/billabot/pkg/metrics"
)

// allDepartments requests every department from the time tracking side.
const allDepartments = "All"

// TotalsFetcher retrieves the current ISO week's totals for one
// department.
type TotalsFetcher interface {
	Totals(ctx context.Context, department string) ([]model.Total, error)
}

// Notifier fans reminders out to offenders, one outcome per recipient.
type Notifier interface {
	Notify(ctx context.Context, offenders []model.Offender, roster []model.Person, targetHours float64) []model.Delivery
}

// runSummary captures the most recent reminder run for monitoring.
type runSummary struct {
	department string
	at         time.Time
	offenders  int
	sent       int
	joinMisses int
	failed     int
}

// Service implements the reminder and report workflows. Every data
// structure is reconstructed from the external services on each call;
// no state persists across invocations beyond the last-run summary.
type Service struct {
	mu sync.RWMutex

	directory  directory.Fetcher
	tracker    TotalsFetcher
	dispatcher Notifier
	now        func() time.Time
	logger     logger.Logger

	lastRun *runSummary
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDirectory sets the roster fetcher.
func WithDirectory(fetcher directory.Fetcher) Option {
	return func(s *Service) {
		if fetcher != nil {
			s.directory = fetcher
		}
	}
}

// WithTotalsFetcher sets the time tracking client.
func WithTotalsFetcher(fetcher TotalsFetcher) Option {
	return func(s *Service) {
		if fetcher != nil {
			s.tracker = fetcher
		}
	}
}

// WithNotifier sets the reminder dispatcher.
func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		if notifier != nil {
			s.dispatcher = notifier
		}
	}
}

// WithClock sets the time source. The supplied func must return a
// timezone-correct local time; target hours are a function of it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service. The directory fetcher, totals fetcher, and
// notifier options are required for the reminder workflow.
func New(opts ...Option) *Service {
	s := &Service{
		now:    time.Now,
		logger: nil, // resolved on first use
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	return s
}

// DepartmentReport fetches this week's totals for department and
// renders the fixed-width table. Network and parse failures from the
// fetch propagate to the caller; report.ErrNoTotals means the week has
// no data yet and should be surfaced as such, not as a failure.
func (s *Service) DepartmentReport(ctx context.Context, department string) (string, error) {
	totals, err := s.tracker.Totals(ctx, department)
	if err != nil {
		return "", fmt.Errorf("department report: %w", err)
	}

	text, err := report.Build(totals)
	if err != nil {
		return "", err
	}

	metrics.RecordReportGenerated()
	return text, nil
}

// UserReport renders a report restricted to the requesting user's own
// totals. The directory and the time tracking service are queried
// concurrently; the user's display name is then used to filter the
// all-departments totals.
func (s *Service) UserReport(ctx context.Context, userID string) (string, error) {
	roster, totals, err := s.fetchBoth(ctx, allDepartments)
	if err != nil {
		return "", fmt.Errorf("user report: %w", err)
	}

	name, found := "", false
	for _, person := range roster {
		if person.ID == userID {
			name, found = person.Name, true
			break
		}
	}
	if !found {
		return "", ErrUnknownUser
	}

	var mine []model.Total
	for _, t := range totals {
		if t.Name == name {
			mine = append(mine, t)
		}
	}

	text, err := report.Build(mine)
	if err != nil {
		return "", err
	}

	metrics.RecordReportGenerated()
	return text, nil
}

// WeeklyReminders evaluates department against the current target and
// sends one reminder per underperformer. The roster fetch and the
// totals fetch run concurrently; the target is sampled once so every
// record is judged against the same threshold. Join misses and send
// failures are captured per recipient and never abort the batch.
func (s *Service) WeeklyReminders(ctx context.Context, department string) ([]model.Delivery, error) {
	roster, totals, err := s.fetchBoth(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("weekly reminders: %w", err)
	}

	targetHours := target.Hours(s.now())
	offenders := compliance.FindOffenders(totals, targetHours)
	metrics.UpdateOffendersFound(len(offenders))

	s.logger.Info(ctx, "evaluated weekly compliance",
		logger.String("department", department),
		logger.Float64("target", targetHours),
		logger.Int("totals", len(totals)),
		logger.Int("offenders", len(offenders)),
	)

	deliveries := s.dispatcher.Notify(ctx, offenders, roster, targetHours)
	metrics.RecordReminderRun()
	s.recordRun(department, len(offenders), deliveries)
	return deliveries, nil
}

// fetchBoth issues the roster and totals fetches concurrently and
// joins the results. Both calls are network-bound and independent, so
// neither waits for the other to start.
func (s *Service) fetchBoth(ctx context.Context, department string) ([]model.Person, []model.Total, error) {
	var (
		roster []model.Person
		totals []model.Total
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.directory.Roster(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.tracker.Totals(gctx, department)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return roster, totals, nil
}

func (s *Service) recordRun(department string, offenders int, deliveries []model.Delivery) {
	summary := &runSummary{
		department: department,
		at:         s.now(),
		offenders:  offenders,
	}
	for _, d := range deliveries {
		switch d.Status {
		case model.DeliverySent:
			summary.sent++
		case model.DeliveryJoinMiss:
			summary.joinMisses++
		case model.DeliveryFailed:
			summary.failed++
		}
	}

	s.mu.Lock()
	s.lastRun = summary
	s.mu.Unlock()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"currentTarget": target.Hours(s.now()),
	}
	if s.lastRun != nil {
		stats["lastRun"] = map[string]interface{}{
			"department": s.lastRun.department,
			"at":         s.lastRun.at,
			"offenders":  s.lastRun.offenders,
			"sent":       s.lastRun.sent,
			"joinMisses": s.lastRun.joinMisses,
			"failed":     s.lastRun.failed,
		}
	}
	return stats
}
