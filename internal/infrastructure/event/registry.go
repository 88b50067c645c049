package event

import (
	"slices"
	"sync"

	"github.com/marketplace/backend/internal/domain/shared"
)

// HandlerRegistry tracks which handlers receive which event types.
// Handlers registered without any event type receive every event.
type HandlerRegistry struct {
	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
	global []shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		byType: make(map[string][]shared.EventHandler),
	}
}

// Register subscribes the handler to the given event types, or to all
// events when none are given.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.global = append(r.global, handler)
		return
	}
	for _, eventType := range eventTypes {
		r.byType[eventType] = append(r.byType[eventType], handler)
	}
}

// Unregister removes the handler from every subscription.
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.global = slices.DeleteFunc(slices.Clone(r.global), func(h shared.EventHandler) bool {
		return h == handler
	})

	for eventType, handlers := range r.byType {
		remaining := slices.DeleteFunc(slices.Clone(handlers), func(h shared.EventHandler) bool {
			return h == handler
		})
		if len(remaining) == 0 {
			delete(r.byType, eventType)
		} else {
			r.byType[eventType] = remaining
		}
	}
}

// GetHandlers returns the handlers subscribed to eventType, followed by
// the handlers subscribed to all events.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[eventType]
	result := make([]shared.EventHandler, 0, len(typed)+len(r.global))
	result = append(result, typed...)
	return append(result, r.global...)
}

// GetAllHandlers returns every registered handler exactly once.
func (r *HandlerRegistry) GetAllHandlers() []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]bool)
	result := make([]shared.EventHandler, 0, len(r.global))

	appendUnseen := func(handlers []shared.EventHandler) {
		for _, h := range handlers {
			if !seen[h] {
				seen[h] = true
				result = append(result, h)
			}
		}
	}

	appendUnseen(r.global)
	for _, handlers := range r.byType {
		appendUnseen(handlers)
	}
	return result
}
