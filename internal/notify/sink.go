package notify

import (
	"context"
	"log/slog"
)

//go:generate mockgen -source=sink.go -destination=mocks/mocks.go -package=mocks Sink

// Sink delivers a batch of events. Implementations must be safe to call from
// a single worker goroutine; they are not called concurrently.
type Sink interface {
	Deliver(ctx context.Context, events []Event) error
}

// LogSink writes each event as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, events []Event) error {
	for _, e := range events {
		s.logger.InfoContext(ctx, e.Type,
			"event_id", e.ID.String(),
			"key", e.Key,
			"occurred_at", e.OccurredAt,
			"payload", e.Payload,
			"log_type", "notification",
		)
	}
	return nil
}
