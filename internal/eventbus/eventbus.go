package eventbus

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"loopedit/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventFrameAdded           = domain.EventFrameAdded
	EventFramesDeleted        = domain.EventFramesDeleted
	EventLoopChanged          = domain.EventLoopChanged
	EventSelectionChanged     = domain.EventSelectionChanged
	EventContextMenuRequested = domain.EventContextMenuRequested
	EventClipboardChanged     = domain.EventClipboardChanged
	EventError                = domain.EventError
	EventConfigLoaded         = domain.EventConfigLoaded
	EventConfigSaved          = domain.EventConfigSaved
	EventDocumentLoaded       = domain.EventDocumentLoaded
	EventDocumentSaved        = domain.EventDocumentSaved
	EventSpriteScanCompleted  = domain.EventSpriteScanCompleted
)

// Re-export domain event types
type FrameAddedEvent = domain.FrameAddedEvent
type FramesDeletedEvent = domain.FramesDeletedEvent
type LoopChangedEvent = domain.LoopChangedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type ContextMenuRequestedEvent = domain.ContextMenuRequestedEvent
type ClipboardChangedEvent = domain.ClipboardChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type DocumentLoadedEvent = domain.DocumentLoadedEvent
type DocumentSavedEvent = domain.DocumentSavedEvent
type SpriteScanCompletedEvent = domain.SpriteScanCompletedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus.
//
// Publish delivers the event to every subscriber of its type before it
// returns, in subscription order, on the caller's goroutine. Publishers
// only publish after the state the event describes is fully applied, so a
// subscriber always observes consistent state.
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete implementation of EventBus
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	hookMu    sync.RWMutex
	onPublish []func(DomainEvent)
	onPanic   []func(DomainEvent, any)
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *Bus) Publish(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers may subscribe or unsubscribe while being called
	subsCopy := make([]subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	b.runOnPublish(event)

	for _, s := range subsCopy {
		b.call(s.handler, event)
	}
}

func (b *Bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event", string(event.Type())).
				Str("panic", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Msg("event handler panicked")
			b.runOnPanic(event, r)
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// OnPublish registers a hook that runs before subscribers of any event
func (b *Bus) OnPublish(fn func(DomainEvent)) {
	b.hookMu.Lock()
	b.onPublish = append(b.onPublish, fn)
	b.hookMu.Unlock()
}

// OnPanic registers a hook that runs when a subscriber panics
func (b *Bus) OnPanic(fn func(DomainEvent, any)) {
	b.hookMu.Lock()
	b.onPanic = append(b.onPanic, fn)
	b.hookMu.Unlock()
}

func (b *Bus) runOnPublish(event DomainEvent) {
	b.hookMu.RLock()
	hooks := make([]func(DomainEvent), len(b.onPublish))
	copy(hooks, b.onPublish)
	b.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(event)
	}
}

func (b *Bus) runOnPanic(event DomainEvent, recovered any) {
	b.hookMu.RLock()
	hooks := make([]func(DomainEvent, any), len(b.onPanic))
	copy(hooks, b.onPanic)
	b.hookMu.RUnlock()
	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, recovered)
		}()
	}
}

// RegisterDebugLogger logs every published event at debug level
func RegisterDebugLogger(b *Bus, logger zerolog.Logger) {
	b.OnPublish(func(event DomainEvent) {
		logger.Debug().Str("event", string(event.Type())).Msg("event published")
	})
	b.OnPanic(func(event DomainEvent, recovered any) {
		logger.Error().
			Str("event", string(event.Type())).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() { return func() {} }
