package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bva/billabot/internal/stubtracker"
	"github.com/bva/billabot/pkg/logger"
)

// Default configuration constants.
const (
	defaultAddr     = ":9090"
	defaultTeamSize = 8
)

func main() {
	var (
		addr     = flag.String("addr", defaultAddr, "Listen address for the stub tracker")
		teamSize = flag.Int("team", defaultTeamSize, "Number of people per generated report")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := stubtracker.NewServer(stubtracker.Config{
		Addr:     *addr,
		TeamSize: *teamSize,
		Verbose:  *verbose,
	})
	if err := srv.Run(ctx); err != nil {
		logger.Get().Error(ctx, "stub tracker failed", logger.Error(err))
		os.Exit(1)
	}
}
