// Package notify delivers state-change notifications to external consumers.
//
// Producers call Publisher.Emit, which never blocks: events land in a bounded
// ring buffer that drops the oldest entry when full. A Worker drains the
// buffer in batches into a Sink (structured log, Kafka).
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Event is one notification. Key groups related events for partitioned sinks.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id.
func NewEvent(eventType, key string, occurredAt time.Time, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        key,
		OccurredAt: occurredAt,
		Payload:    payload,
	}
}
