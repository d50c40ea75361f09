package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EventBus = (*EventBus)(nil)

// channelPrefix namespaces event channels per topic.
const channelPrefix = "syllabus:events:"

// EventBus implements driven.EventBus over Redis pub/sub. Delivery is
// fire-and-forget: a topic with no subscribers drops the event, which is
// the semantics the pipeline expects from best-effort notifications.
type EventBus struct {
	client *redis.Client
}

// NewEventBus creates a Redis-backed EventBus.
func NewEventBus(client *redis.Client) *EventBus {
	return &EventBus{client: client}
}

// Publish sends payload to the topic's channel as JSON.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event for %s: %w", topic, err)
	}
	if err := b.client.Publish(ctx, channelPrefix+topic, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
