package shared

import "context"

// EventHandler reacts to domain events.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error

	// EventTypes names the event types the handler wants. An empty slice
	// subscribes it to every event.
	EventTypes() []string
}

// EventPublisher pushes domain events to their subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	// Subscribe registers the handler for the given event types, or for
	// all events when none are given.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full pub/sub surface with lifecycle control.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
