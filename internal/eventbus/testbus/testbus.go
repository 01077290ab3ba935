// Package testbus provides test utilities for the event bus.
// It wraps a real Bus and records every event published through it.
package testbus

import (
	"sync"
	"testing"

	"loopedit/internal/eventbus"
)

// Bus wraps a real eventbus.Bus with event recording for tests.
type Bus struct {
	*eventbus.Bus

	mu     sync.Mutex
	events []eventbus.DomainEvent
}

// New creates a recording bus.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{Bus: eventbus.New()}
	tb.OnPublish(tb.record)
	return tb
}

func (tb *Bus) record(e eventbus.DomainEvent) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = append(tb.events, e)
}

// Events returns a copy of all recorded events.
func (tb *Bus) Events() []eventbus.DomainEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]eventbus.DomainEvent, len(tb.events))
	copy(out, tb.events)
	return out
}

// Types returns the recorded event types in publish order.
func (tb *Bus) Types() []eventbus.EventType {
	events := tb.Events()
	out := make([]eventbus.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type()
	}
	return out
}

// OfType returns recorded events of the given type in publish order.
func (tb *Bus) OfType(eventType eventbus.EventType) []eventbus.DomainEvent {
	var out []eventbus.DomainEvent
	for _, e := range tb.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event, or nil.
func (tb *Bus) Last() eventbus.DomainEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if len(tb.events) == 0 {
		return nil
	}
	return tb.events[len(tb.events)-1]
}

// Reset clears all recorded events.
func (tb *Bus) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = nil
}

// AssertPublished fails the test if no event of the given type was recorded.
func (tb *Bus) AssertPublished(t *testing.T, eventType eventbus.EventType) {
	t.Helper()
	if len(tb.OfType(eventType)) == 0 {
		t.Errorf("expected event %s to be published, got %v", eventType, tb.Types())
	}
}

// AssertNotPublished fails the test if an event of the given type was recorded.
func (tb *Bus) AssertNotPublished(t *testing.T, eventType eventbus.EventType) {
	t.Helper()
	if n := len(tb.OfType(eventType)); n > 0 {
		t.Errorf("expected event %s not to be published, got %d", eventType, n)
	}
}
