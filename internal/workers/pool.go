package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"livekit-henryk/internal/observability"
)

var (
	// ErrQueueFull is returned by Submit when every queue slot is taken.
	ErrQueueFull = errors.New("worker pool queue is full")
	// ErrPoolClosed is returned by Submit before Start or after Drain/Stop.
	ErrPoolClosed = errors.New("worker pool is not accepting jobs")
)

// Processor handles one job. Implementations must be safe for concurrent use.
type Processor[T any] interface {
	Process(ctx context.Context, job T) error
	// Name returns the processor name for logging and metrics.
	Name() string
}

// WorkerPoolConfig holds configuration for the worker pool.
type WorkerPoolConfig struct {
	// NumWorkers is the number of concurrent workers to run.
	NumWorkers int

	// QueueSize is the size of the job queue buffer. Submit fails once it is full.
	QueueSize int

	// JobTimeout bounds each job. Zero means no limit.
	JobTimeout time.Duration

	// DrainTimeout is the maximum time to wait for queued and in-flight jobs
	// to complete during graceful shutdown.
	DrainTimeout time.Duration
}

// DefaultWorkerPoolConfig returns sensible defaults for a worker pool.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		NumWorkers:   4,
		QueueSize:    100,
		DrainTimeout: 30 * time.Second,
	}
}

// Pool runs jobs on a fixed number of goroutines fed by a bounded queue.
type Pool[T any] struct {
	config    WorkerPoolConfig
	processor Processor[T]
	metrics   *observability.Metrics
	logger    *observability.Logger

	jobs chan T
	wg   sync.WaitGroup

	// mu guards the lifecycle flags and makes closing jobs exclusive with sends.
	mu       sync.RWMutex
	started  bool
	closed   bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a new worker pool. metrics may be nil.
func NewWorkerPool[T any](config WorkerPoolConfig, processor Processor[T], metrics *observability.Metrics, logger *observability.Logger) *Pool[T] {
	defaults := DefaultWorkerPoolConfig()
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	return &Pool[T]{
		config:    config,
		processor: processor,
		metrics:   metrics,
		logger:    logger,
		jobs:      make(chan T, config.QueueSize),
	}
}

// Start launches the workers. Jobs run under ctx, not under the submitter's context.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.closed {
		return fmt.Errorf("worker pool already stopped")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancelFn = cancel
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(workerCtx, i)
	}

	p.logger.Info(ctx, fmt.Sprintf("Started %d workers for %s processor",
		p.config.NumWorkers, p.processor.Name()))

	return nil
}

// Submit queues a job without blocking.
func (p *Pool[T]) Submit(job T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started || p.closed {
		p.metrics.JobDropped()
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		p.metrics.SetQueueDepth(len(p.jobs))
		return nil
	default:
		p.metrics.JobDropped()
		return ErrQueueFull
	}
}

// Drain stops accepting jobs and waits for queued and in-flight jobs to finish.
func (p *Pool[T]) Drain(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return fmt.Errorf("worker pool not started")
	}
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("worker pool already draining")
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.logger.Info(ctx, fmt.Sprintf("Draining worker pool for %s processor, waiting for %d queued jobs",
		p.processor.Name(), len(p.jobs)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-done:
		p.logger.Info(ctx, fmt.Sprintf("Successfully drained worker pool for %s processor",
			p.processor.Name()))
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, fmt.Sprintf("Drain timeout exceeded for %s processor, forcing shutdown",
			p.processor.Name()))
		p.Stop()
		return fmt.Errorf("drain timeout exceeded")
	}
}

// Stop cancels running jobs and stops all workers without waiting.
func (p *Pool[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancelFn != nil {
		p.cancelFn()
	}
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
}

func (p *Pool[T]) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	workerCtx := observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: workerID},
		observability.Field{Key: "processor", Value: p.processor.Name()},
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug(workerCtx, fmt.Sprintf("Worker %d stopping: context cancelled", workerID))
			return

		case job, ok := <-p.jobs:
			if !ok {
				p.logger.Debug(workerCtx, fmt.Sprintf("Worker %d stopping: job queue closed", workerID))
				return
			}
			p.metrics.SetQueueDepth(len(p.jobs))
			p.run(workerCtx, job)
		}
	}
}

// run processes one job, turning a panic into a logged failure so the worker survives.
func (p *Pool[T]) run(ctx context.Context, job T) {
	if p.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.JobTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "job panicked", fmt.Errorf("panic: %v", r))
		}
	}()

	if err := p.processor.Process(ctx, job); err != nil {
		p.logger.Error(ctx, "failed to process job", err)
	}
}
