// Command worker retries pending transcript notifications once and exits, or
// resends a single room's transcript when -room is given. It is meant for cron
// jobs and manual recovery next to the long-running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"livekit-henryk/internal/bootstrap"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
)

func main() {
	room := flag.String("room", "", "resend the transcript for this room instead of retrying due deliveries")
	limit := flag.Int("limit", 100, "maximum number of due deliveries to retry")
	flag.Parse()

	// Load environment variables (env.local outside production)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := observability.NewLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	publisher, producer := bootstrap.NewPublisher(cfg, logger)
	if producer != nil {
		defer producer.Close()
	}

	service, err := bootstrap.NewWebhookService(cfg, store, publisher, nil, logger)
	if err != nil {
		log.Fatalf("Failed to initialize webhook service: %v", err)
	}

	if *room != "" {
		ctx = observability.WithFields(ctx, observability.Field{Key: "room_name", Value: *room})
		if err := service.Resend(ctx, *room); err != nil {
			logger.Error(ctx, "resend failed", err)
			os.Exit(1)
		}
		logger.Info(ctx, "transcript delivered")
		return
	}

	delivered, err := service.RetryDueDeliveries(ctx, *limit)
	if err != nil {
		logger.Error(ctx, "retry run failed", err)
		os.Exit(1)
	}
	logger.Info(ctx, fmt.Sprintf("retry run finished, %d deliveries succeeded", delivered))
}
