package main

import (
	"context"
	"log"

	"livekit-henryk/internal/bootstrap"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/server"

	_ "time/tzdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	logger := observability.NewLogger()
	defer logger.Sync()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	if err := srv.Setup(); err != nil {
		deps.Cleanup()
		logger.Fatal(ctx, "failed to set up server", err)
	}
	if err := srv.Start(ctx); err != nil {
		deps.Cleanup()
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Error(ctx, "shutdown failed", err)
	}
}
