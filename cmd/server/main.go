package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchday-service/internal/config"
	"matchday-service/internal/domain/matches"
	"matchday-service/internal/logging"
	"matchday-service/internal/render"
	"matchday-service/internal/server"
	"matchday-service/internal/timeutil"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "matchday-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		renderEmptyState(cfg)
		stop()
		os.Exit(1)
	}
	srv.Run(ctx)
}

// renderEmptyState shows the empty display once so a fatal startup error is
// visible on the scoreboard, not just in the logs.
func renderEmptyState(cfg config.Config) {
	loc := timeutil.ResolveLocation(cfg.ReferenceTZ)
	now := time.Now().In(loc)
	render.NewConsole(os.Stdout, loc).Render(
		matches.NewSnapshot(timeutil.FormatDate(now), nil, now),
	)
}
