package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/slack-go/slack"

	"github.com/bva/billabot/internal/adapters/chat"
	"github.com/bva/billabot/internal/adapters/directory"
	"github.com/bva/billabot/internal/adapters/dispatch"
	"github.com/bva/billabot/internal/adapters/http/api"
	"github.com/bva/billabot/internal/adapters/timetracking"
	app "github.com/bva/billabot/internal/app"
	"github.com/bva/billabot/internal/config"
	"github.com/bva/billabot/internal/scheduler"
	"github.com/bva/billabot/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Target hours and the cron schedule are evaluated in the
	// organization's local time zone.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loggerInstance.Warn(ctx, "invalid timezone; falling back to system local", logger.String("timezone", cfg.Timezone), logger.Error(err))
		loc = time.Local
	}
	clock := func() time.Time { return time.Now().In(loc) }

	if cfg.SlackToken == "" {
		loggerInstance.Warn(ctx, "slack_token is empty; roster lookups and reminders will fail")
	}
	slackClient := slack.New(cfg.SlackToken)

	roster := directory.NewSlack(slackClient)
	messenger := chat.NewSlack(slackClient)
	tracker := timetracking.New(cfg.TimeTrackingURL,
		timetracking.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		timetracking.WithMaxRetries(uint64(cfg.FetchMaxRetries)),
		timetracking.WithClock(clock),
	)
	pool := dispatch.NewPool(messenger, dispatch.WithSenderCount(cfg.SenderCount))

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithDirectory(roster),
		app.WithTotalsFetcher(tracker),
		app.WithNotifier(pool),
		app.WithClock(clock),
	)

	// Start the weekly reminder cron.
	sched := scheduler.New(svc, cfg.ReminderSchedule, cfg.ReminderDepartment, scheduler.WithLocation(loc))
	if err := sched.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start scheduler: " + err.Error() + "\n")
		return
	}
	defer sched.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc,
		api.WithDepartments(cfg.Departments),
		api.WithWhitelist(cfg.ReportWhitelist),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
