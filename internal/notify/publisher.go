package notify

import (
	"context"
	"log/slog"
)

// Publisher enqueues events for asynchronous delivery.
type Publisher struct {
	buffer  *RingBuffer
	wake    chan struct{}
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for drop warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher backed by a buffer of the given capacity.
func NewPublisher(capacity int, opts ...Option) *Publisher {
	p := &Publisher{
		buffer: NewRingBuffer(capacity),
		wake:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enqueues event without blocking. It never fails; overflow drops the
// oldest queued event and is reported through logs and metrics.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p.buffer.Enqueue(event) {
		if p.metrics != nil {
			p.metrics.IncDropped()
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "notification buffer full, dropped oldest event",
				"event_type", event.Type,
			)
		}
	}
	if p.metrics != nil {
		p.metrics.IncEmitted(event.Type)
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}

// Buffer exposes the underlying queue to the delivery worker.
func (p *Publisher) Buffer() *RingBuffer {
	return p.buffer
}

// Wake is signalled after each Emit.
func (p *Publisher) Wake() <-chan struct{} {
	return p.wake
}
