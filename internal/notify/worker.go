package notify

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	shutdownFlushTimeout = 5 * time.Second
)

// Worker drains a publisher's buffer into a sink. Delivery failures are
// logged and counted; the failed batch is not retried.
type Worker struct {
	publisher *Publisher
	sink      Sink
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
	metrics   *Metrics
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

func WithBatchSize(n int) WorkerOption {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithWorkerMetrics(m *Metrics) WorkerOption {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(publisher *Publisher, sink Sink, opts ...WorkerOption) *Worker {
	w := &Worker{
		publisher: publisher,
		sink:      sink,
		batchSize: defaultBatchSize,
		interval:  defaultFlushInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run delivers until ctx is cancelled, then flushes what remains using a
// short detached deadline.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
			w.Flush(flushCtx)
			cancel()
			return ctx.Err()
		case <-w.publisher.Wake():
			w.Flush(ctx)
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush delivers every buffered event in batches.
func (w *Worker) Flush(ctx context.Context) {
	buffer := w.publisher.Buffer()
	for {
		batch := buffer.DequeueBatch(w.batchSize)
		if len(batch) == 0 {
			return
		}
		if err := w.sink.Deliver(ctx, batch); err != nil {
			if w.metrics != nil {
				w.metrics.AddDeliveryFailures(len(batch))
			}
			if w.logger != nil {
				w.logger.ErrorContext(ctx, "failed to deliver notifications",
					"batch_size", len(batch),
					"error", err,
				)
			}
			continue
		}
		if w.metrics != nil {
			w.metrics.AddDelivered(len(batch))
		}
	}
}
