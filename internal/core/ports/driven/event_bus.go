package driven

import "context"

// EventBus propagates pipeline state changes to observers. Topics and
// payload shapes are defined in the domain package. The pipeline is a pure
// producer: it publishes completion events and subscribes to nothing.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
}
