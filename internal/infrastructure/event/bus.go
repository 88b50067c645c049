package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// InMemoryEventBus delivers domain events to subscribed handlers within
// the same process. Delivery is synchronous and a failing handler never
// blocks the remaining ones.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	log      *zap.Logger
	running  atomic.Bool
	wg       sync.WaitGroup
}

func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		log:      log,
	}
}

// Publish dispatches each event to every matching handler. Handler
// failures are logged and swallowed so publishers never observe them.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, handler := range b.registry.GetHandlers(ev.EventType()) {
			if err := b.deliver(ctx, handler, ev); err != nil {
				b.log.Error("handler failed to process event",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers the handler. With no explicit event types the
// handler's own EventTypes() declaration is used.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.log.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.log.Debug("handler unsubscribed")
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.log.Info("event bus started")
	return nil
}

// Stop waits for in-flight deliveries before returning.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.wg.Wait()
	b.log.Info("event bus stopped")
	return nil
}

// deliver shields the bus from panicking handlers.
func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, ev)
}
