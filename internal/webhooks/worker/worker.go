package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"livekit-henryk/internal/observability"
)

const batchSize = 100

// Retrier resends due notifications
type Retrier interface {
	RetryDueDeliveries(ctx context.Context, limit int) (int, error)
}

// WebhookWorker periodically retries failed transcript notifications
type WebhookWorker struct {
	retrier  Retrier
	logger   *observability.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	interval time.Duration
}

// New creates a new WebhookWorker
func New(retrier Retrier, logger *observability.Logger, interval time.Duration) *WebhookWorker {
	return &WebhookWorker{
		retrier:  retrier,
		logger:   logger,
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

// Start runs until Stop is called or ctx is cancelled
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info(ctx, "Starting webhook retry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-w.stopChan:
			w.logger.Info(ctx, "Stopping webhook retry worker")
			return
		case <-ctx.Done():
			w.logger.Info(ctx, "Context cancelled, stopping webhook retry worker")
			return
		}
	}
}

// Stop stops the background worker
func (w *WebhookWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

// RunOnce processes one batch of due retries and returns how many were delivered.
func (w *WebhookWorker) RunOnce(ctx context.Context) int {
	delivered, err := w.retrier.RetryDueDeliveries(ctx, batchSize)
	if err != nil {
		w.logger.Error(ctx, "failed to process webhook retries", err)
	}
	if delivered > 0 {
		w.logger.Info(ctx, fmt.Sprintf("delivered %d webhook retries", delivered))
	}
	return delivered
}
