package memory

import (
	"context"
	"log/slog"

	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EventBus = (*EventBus)(nil)

// EventBus logs published events instead of fanning them out. It stands in
// for the Redis bus when no Redis instance is configured, so the pipeline
// can always publish unconditionally.
type EventBus struct {
	logger *slog.Logger
}

// NewEventBus creates a logging EventBus.
func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{logger: logger}
}

// Publish logs the event at debug level.
func (b *EventBus) Publish(_ context.Context, topic string, payload any) error {
	b.logger.Debug("event published", "topic", topic, "payload", payload)
	return nil
}
