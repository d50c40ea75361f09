package mocks

import (
	"context"
	"sync"

	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
)

// Ensure MockEventBus implements EventBus
var _ driven.EventBus = (*MockEventBus)(nil)

// PublishedEvent records one Publish call.
type PublishedEvent struct {
	Topic   string
	Payload any
}

// MockEventBus records published events for assertions.
type MockEventBus struct {
	mu     sync.Mutex
	Events []PublishedEvent

	// Err, when set, is returned from Publish.
	Err error
}

// NewMockEventBus creates an empty MockEventBus.
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{}
}

// Publish records the event.
func (m *MockEventBus) Publish(_ context.Context, topic string, payload any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

// ByTopic returns the recorded events for one topic.
func (m *MockEventBus) ByTopic(topic string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PublishedEvent
	for _, e := range m.Events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}
